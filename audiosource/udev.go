//go:build linux

package audiosource

import (
	"path/filepath"
	"strings"

	"github.com/jochenvg/go-udev"
)

/*------------------------------------------------------------------
 *
 * Purpose:	Device discovery for the PortAudio source above, using
 *		udev to enumerate ALSA sound-card capture devices.
 *
 *------------------------------------------------------------------*/

// ListCaptureDevices returns the udev device names of ALSA sound-card
// capture devices on the system, for a caller to pick from (or log) when no
// device was configured explicitly.
func ListCaptureDevices() ([]string, error) {
	u := &udev.Udev{}
	enum := u.NewEnumerate()

	if err := enum.AddMatchSubsystem("sound"); err != nil {
		return nil, err
	}

	devices, err := enum.Devices()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, d := range devices {
		// ALSA capture PCM nodes are named pcmC<card>D<device>c.
		node := d.Devnode()
		base := filepath.Base(node)
		if strings.HasPrefix(base, "pcm") && strings.HasSuffix(base, "c") {
			names = append(names, node)
		}
	}

	return names, nil
}

// DefaultCaptureDevice returns the first discovered capture device name, or
// "" if none were found (the caller should then fall back to PortAudio's
// own default input device).
func DefaultCaptureDevice() string {
	names, err := ListCaptureDevices()
	if err != nil || len(names) == 0 {
		return ""
	}
	return names[0]
}
