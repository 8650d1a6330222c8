// Package config loads knockbell's run-time configuration: a YAML file on
// disk, with CLI flags layered on top for the handful of settings an
// operator tunes most often. A typed struct with yaml tags stands in for a
// hand-rolled line-oriented parser, and pflag-bound overrides are
// registered by each cmd/ rather than a second config-file dialect for
// command line use.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config is the full set of tunables a deployed unit carries beyond the
// detection core's own fixed constants (window size, peak buffer depth,
// and the like are compiled in and not exposed here - see
// detector/constants.go for why).
type Config struct {
	// Detector tuning.
	BellFreqHz      float64 `yaml:"bell_freq_hz"`
	BellQ           float64 `yaml:"bell_q"`
	HighSensitivity bool    `yaml:"high_sensitivity"`

	// Sample source.
	AudioDevice string `yaml:"audio_device"`

	// Event sinks.
	GPIOChip        string `yaml:"gpio_chip"`
	GPIOLine        int    `yaml:"gpio_line"`
	DNSSDName       string `yaml:"dnssd_name"`
	SerialDevice    string `yaml:"serial_device"`
	CSVLogDir       string `yaml:"csv_log_dir"`
	LogLevel        string `yaml:"log_level"`
}

// Default returns the configuration a unit runs with when no config file is
// present, matching the detection core's own built-in defaults.
func Default() Config {
	return Config{
		BellFreqHz:      770.0,
		BellQ:           100.0,
		HighSensitivity: false,
		AudioDevice:     "",
		GPIOChip:        "/dev/gpiochip0",
		GPIOLine:        17,
		DNSSDName:       "",
		SerialDevice:    "",
		CSVLogDir:       "",
		LogLevel:        "info",
	}
}

// Load reads a YAML config file at path and overlays it onto Default(). An
// empty path is not an error - it just returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// BindFlags registers pflag overrides for the settings an operator tunes
// most often from the command line, layered on top of whatever Load
// produced. Call Load first, then BindFlags(fs, &cfg), then fs.Parse.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.Float64Var(&cfg.BellFreqHz, "bell-freq", cfg.BellFreqHz, "bell fundamental frequency in Hz")
	fs.Float64Var(&cfg.BellQ, "bell-q", cfg.BellQ, "bell bandpass quality factor")
	fs.BoolVar(&cfg.HighSensitivity, "high-sensitivity", cfg.HighSensitivity, "loosen knock/bell acceptance gates")
	fs.StringVar(&cfg.AudioDevice, "audio-device", cfg.AudioDevice, "capture device name, empty for system default")
	fs.StringVar(&cfg.GPIOChip, "gpio-chip", cfg.GPIOChip, "gpiochip device for the status LED")
	fs.IntVar(&cfg.GPIOLine, "gpio-line", cfg.GPIOLine, "GPIO line offset for the status LED")
	fs.StringVar(&cfg.DNSSDName, "dnssd-name", cfg.DNSSDName, "DNS-SD service name, empty to derive from hostname")
	fs.StringVar(&cfg.SerialDevice, "serial-device", cfg.SerialDevice, "any non-empty value enables a fresh PTY debug console (the named device is not opened), empty to disable")
	fs.StringVar(&cfg.CSVLogDir, "csv-log-dir", cfg.CSVLogDir, "directory for daily CSV event logs, empty to disable")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
}
