//go:build !linux

package audiosource

// DefaultCaptureDevice is unavailable outside Linux; udev enumeration is a
// Linux-specific device-discovery mechanism. Callers fall back to
// PortAudio's own default input device.
func DefaultCaptureDevice() string { return "" }
