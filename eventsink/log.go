package eventsink

import (
	"github.com/briarwolf/knockbell/detector"
	"github.com/charmbracelet/log"
)

/*------------------------------------------------------------------
 *
 * Purpose:	Human-facing run output. Detection and peak diagnostics
 *		become structured log lines via charmbracelet/log, which
 *		already handles level-based coloring and timestamps.
 *
 *----------------------------------------------------------------*/

// LogSink writes detections and (when the caller requested them via the
// matching DISP_* flags) diagnostic events to a charmbracelet/log logger.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink wraps logger, or builds a default stderr logger if nil.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) HandleScan(det detector.Detections, diag detector.Diagnostics) {
	if det&detector.Knock != 0 {
		s.logger.Info("KNOCK detected")
	}
	if det&detector.Bell != 0 {
		s.logger.Info("BELL detected")
	}

	for _, ev := range diag.Events {
		switch ev.Kind {
		case "knock", "bell":
			s.logger.Info("event", "kind", ev.Kind, "sample", ev.SampleIndex, "height", ev.Peak.Height)
		case "dropped":
			s.logger.Warn("peak buffer full, dropping smallest incoming peak",
				"sample", ev.SampleIndex, "height", ev.Peak.Height)
		case "evicted":
			s.logger.Debug("peak buffer full, evicted oldest-smallest",
				"sample", ev.SampleIndex, "height", ev.Peak.Height)
		case "accepted":
			s.logger.Debug("peak accepted",
				"sample", ev.SampleIndex, "height", ev.Peak.Height, "width", ev.Peak.Width)
		}
	}

	for _, ts := range diag.Thresholds {
		s.logger.Debug("threshold",
			"sample", ts.SampleIndex, "baseline", ts.PeakThreshold, "gate", ts.EffectiveGate)
	}
}

func (s *LogSink) Close() error { return nil }
