// Command knockbelld is the live daemon: it opens a microphone via
// PortAudio, feeds the detector continuously, and drives whichever event
// sinks the configuration enables. It parses the config, opens the audio
// device, runs the processing loop, and shuts everything down on signal.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/briarwolf/knockbell/audiosource"
	"github.com/briarwolf/knockbell/config"
	"github.com/briarwolf/knockbell/detector"
	"github.com/briarwolf/knockbell/eventsink"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

func main() {
	// A quick pre-pass just to find --config, tolerating every other flag
	// (they aren't registered yet) so the real parse below can use the
	// file's values as each flag's default.
	var configPath string
	pre := pflag.NewFlagSet("pre", pflag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.StringVar(&configPath, "config", "", "YAML config file")
	pre.Parse(os.Args[1:]) //nolint:errcheck

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	pflag.String("config", configPath, "YAML config file")
	batchSize := pflag.Int("batch-size", 1600, "samples per Scan call (1600 = one analysis tick)")
	config.BindFlags(pflag.CommandLine, &cfg)
	pflag.Parse()

	logger := log.New(os.Stderr)
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	if cfg.AudioDevice == "" {
		cfg.AudioDevice = audiosource.DefaultCaptureDevice()
	}

	source, err := audiosource.OpenPortAudioSource(cfg.AudioDevice, *batchSize)
	if err != nil {
		logger.Fatal("could not open audio source", "err", err)
	}
	defer source.Close()

	sinks := buildSinks(cfg, logger)
	defer sinks.Close()

	d := detector.New(detector.Config{BellFreqHz: cfg.BellFreqHz, BellQ: cfg.BellQ})

	var flags detector.Flags = detector.DispEvents | detector.DispPeaks | detector.DispThresholds
	if cfg.HighSensitivity {
		flags |= detector.HighSensitivity
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go runLoop(d, source, sinks, flags, *batchSize, logger, done)

	<-stop
	logger.Info("shutting down")
	close(done)
}

func runLoop(
	d *detector.Detector,
	source audiosource.Source,
	sink eventsink.Sink,
	flags detector.Flags,
	batchSize int,
	logger *log.Logger,
	done <-chan struct{},
) {
	buf := make([]int16, batchSize)
	for {
		select {
		case <-done:
			return
		default:
		}

		n, err := source.Read(buf)
		if err != nil {
			logger.Error("audio source read failed", "err", err)
			return
		}
		if n == 0 {
			continue
		}

		det, diag := d.Scan(buf[:n], flags)
		sink.HandleScan(det, diag)
	}
}

func buildSinks(cfg config.Config, logger *log.Logger) eventsink.Multi {
	sinks := eventsink.Multi{eventsink.NewLogSink(logger)}

	if csvLogger, err := eventsink.NewCSVLogger(cfg.CSVLogDir); err != nil {
		logger.Error("CSV logger disabled", "err", err)
	} else {
		sinks = append(sinks, csvLogger)
	}

	if cfg.GPIOChip != "" {
		if indicator, err := eventsink.NewGPIOIndicator(cfg.GPIOChip, cfg.GPIOLine); err != nil {
			logger.Warn("GPIO indicator disabled", "err", err)
		} else {
			sinks = append(sinks, indicator)
		}
	}

	if announcer, err := eventsink.NewDNSSDAnnouncer(cfg.DNSSDName, 0, logger); err != nil {
		logger.Warn("DNS-SD announcer disabled", "err", err)
	} else {
		sinks = append(sinks, announcer)
	}

	if cfg.SerialDevice != "" {
		if console, path, err := eventsink.NewSerialConsole(0); err != nil {
			logger.Warn("serial console disabled", "err", err)
		} else {
			logger.Info("serial debug console attached", "path", path)
			sinks = append(sinks, console)
		}
	}

	return sinks
}
