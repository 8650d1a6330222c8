package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func Test_Load_OverlaysYAMLOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "knockbell.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
bell_freq_hz: 785
high_sensitivity: true
audio_device: hw:1,0
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 785.0, cfg.BellFreqHz)
	assert.True(t, cfg.HighSensitivity)
	assert.Equal(t, "hw:1,0", cfg.AudioDevice)
	// Fields absent from the file keep Default()'s values.
	assert.Equal(t, Default().BellQ, cfg.BellQ)
}

func Test_Load_MissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/knockbell.yaml")
	assert.Error(t, err)
}

func Test_BindFlags_CLIOverridesFileDefault(t *testing.T) {
	cfg := Config{BellFreqHz: 770, BellQ: 100} //nolint:exhaustruct

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs, &cfg)

	require.NoError(t, fs.Parse([]string{"--bell-freq=785"}))

	assert.Equal(t, 785.0, cfg.BellFreqHz)
	assert.Equal(t, 100.0, cfg.BellQ, "flags not passed on the command line keep the loaded value")
}
