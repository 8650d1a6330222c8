// Command knockbelltest replays a WAV file, or one of a handful of
// synthetic fixtures, through the detector and reports the events it
// raises: a reproducible-conditions harness that runs the same stream
// under controlled conditions instead of waiting on a live microphone,
// deterministically enough to script in CI.
package main

import (
	"fmt"
	"os"

	"github.com/briarwolf/knockbell/audiosource"
	"github.com/briarwolf/knockbell/config"
	"github.com/briarwolf/knockbell/detector"
	"github.com/briarwolf/knockbell/eventsink"
	"github.com/charmbracelet/log"
	"github.com/go-audio/wav"
	"github.com/spf13/pflag"
)

func main() {
	cfg := config.Default()

	wavPath := pflag.String("wav", "", "WAV file to replay instead of a synthetic fixture")
	fixture := pflag.String("fixture", "knock", "synthetic fixture when --wav is unset: knock, bell, or silence")
	batchSize := pflag.Int("batch-size", 4096, "samples per Scan call")
	config.BindFlags(pflag.CommandLine, &cfg)
	pflag.Parse()

	logger := log.New(os.Stderr)
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	source, err := openSource(*wavPath, *fixture, logger)
	if err != nil {
		logger.Fatal("could not open input", "err", err)
	}
	defer source.Close()

	d := detector.New(detector.Config{BellFreqHz: cfg.BellFreqHz, BellQ: cfg.BellQ})

	var flags detector.Flags = detector.DispEvents | detector.DispPeaks | detector.DispThresholds
	if cfg.HighSensitivity {
		flags |= detector.HighSensitivity
	}

	sink := eventsink.NewLogSink(logger)

	var total detector.Detections
	buf := make([]int16, *batchSize)
	for {
		n, readErr := source.Read(buf)
		if n > 0 {
			det, diag := d.Scan(buf[:n], flags)
			sink.HandleScan(det, diag)
			total |= det
		}
		if readErr != nil {
			break
		}
	}

	fmt.Printf("knock=%v bell=%v\n", total&detector.Knock != 0, total&detector.Bell != 0)
}

func openSource(wavPath, fixture string, logger *log.Logger) (audiosource.Source, error) {
	if wavPath != "" {
		return openWAV(wavPath)
	}

	logger.Info("using synthetic fixture", "fixture", fixture)

	switch fixture {
	case "bell":
		return audiosource.NewMemorySource(bellFixture()), nil
	case "silence":
		return audiosource.NewMemorySource(silence(sampleRateHz * 2)), nil
	default:
		return audiosource.NewMemorySource(knockFixture()), nil
	}
}

func openWAV(path string) (audiosource.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid WAV file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}

	return audiosource.NewMemorySource(samples), nil
}
