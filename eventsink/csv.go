package eventsink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/briarwolf/knockbell/detector"
	"github.com/lestrrat-go/strftime"
)

/*------------------------------------------------------------------
 *
 * Purpose:	Save accepted peaks and detections to a daily CSV file,
 *		one row per knock/bell peak fingerprint. The daily file
 *		name is built with lestrrat-go/strftime rather than a
 *		hand-rolled time.Format call.
 *
 *----------------------------------------------------------------*/

const csvHeader = "utime,isotime,kind,sample,height,area,width,filter_hits\n"

// CSVLogger appends one row per accepted peak, knock, or bell event to a
// daily-named file under dir. Zero value with an empty dir is a no-op sink.
type CSVLogger struct {
	dir      string
	pattern  *strftime.Strftime
	fp       *os.File
	openName string
}

// NewCSVLogger builds a logger that writes under dir. dir == "" disables
// the sink entirely.
func NewCSVLogger(dir string) (*CSVLogger, error) {
	if dir == "" {
		return &CSVLogger{}, nil
	}

	pattern, err := strftime.New("%Y-%m-%d.csv")
	if err != nil {
		return nil, fmt.Errorf("eventsink: compile CSV name pattern: %w", err)
	}

	if stat, statErr := os.Stat(dir); statErr != nil {
		if mkErr := os.Mkdir(dir, 0o755); mkErr != nil {
			return nil, fmt.Errorf("eventsink: create CSV log dir %s: %w", dir, mkErr)
		}
	} else if !stat.IsDir() {
		return nil, fmt.Errorf("eventsink: CSV log path %s is not a directory", dir)
	}

	return &CSVLogger{dir: dir, pattern: pattern}, nil
}

func (c *CSVLogger) HandleScan(det detector.Detections, diag detector.Diagnostics) {
	if c.dir == "" {
		return
	}

	for _, ev := range diag.Events {
		if ev.Kind != "knock" && ev.Kind != "bell" && ev.Kind != "accepted" {
			continue
		}
		c.writeRow(ev)
	}
}

func (c *CSVLogger) writeRow(ev detector.PeakEvent) {
	now := time.Now().UTC()
	name := c.pattern.FormatString(now)

	if c.fp != nil && name != c.openName {
		c.fp.Close()
		c.fp = nil
	}

	if c.fp == nil {
		fullPath := filepath.Join(c.dir, name)

		_, statErr := os.Stat(fullPath)
		alreadyThere := statErr == nil

		f, err := os.OpenFile(fullPath, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			return
		}
		c.fp = f
		c.openName = name

		if !alreadyThere {
			c.fp.WriteString(csvHeader)
		}
	}

	w := csv.NewWriter(c.fp)
	w.Write([]string{
		fmt.Sprintf("%d", now.Unix()),
		now.Format("2006-01-02T15:04:05Z"),
		ev.Kind,
		fmt.Sprintf("%d", ev.Peak.Time),
		fmt.Sprintf("%d", ev.Peak.Height),
		fmt.Sprintf("%d", ev.Peak.Area),
		fmt.Sprintf("%d", ev.Peak.Width),
		fmt.Sprintf("%d", ev.Peak.FilterHits),
	})
	w.Flush()
}

func (c *CSVLogger) Close() error {
	if c.fp != nil {
		return c.fp.Close()
	}
	return nil
}
