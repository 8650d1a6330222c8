package audiosource

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

/*------------------------------------------------------------------
 *
 * Purpose:	The live sample source: a microphone input stream at
 *		16 kHz mono. PortAudio handles the double-buffering
 *		internally; this package just exposes it as a plain Read,
 *		matching Source.
 *
 *----------------------------------------------------------------*/

const sampleRateHz = 16000

// PortAudioSource reads mono 16 kHz PCM from a capture device via PortAudio.
type PortAudioSource struct {
	stream *portaudio.Stream
	buf    []int16
	pos    int
	filled int
}

// OpenPortAudioSource opens deviceName (or the system default input device
// when deviceName is empty) for 16 kHz mono capture. framesPerBuffer sizes
// the internal read buffer; callers typically pass a multiple of the
// detector's own batch size.
func OpenPortAudioSource(deviceName string, framesPerBuffer int) (*PortAudioSource, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audiosource: portaudio init: %w", err)
	}

	dev, err := resolveInputDevice(deviceName)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	s := &PortAudioSource{buf: make([]int16, framesPerBuffer)}

	params := portaudio.LowLatencyParameters(dev, nil)
	params.Input.Channels = 1
	params.SampleRate = sampleRateHz
	params.FramesPerBuffer = framesPerBuffer

	stream, err := portaudio.OpenStream(params, s.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audiosource: open stream on %q: %w", deviceName, err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("audiosource: start stream: %w", err)
	}

	s.stream = stream
	return s, nil
}

func resolveInputDevice(name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		return portaudio.DefaultInputDevice()
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("audiosource: enumerate devices: %w", err)
	}

	for _, d := range devices {
		if d.Name == name && d.MaxInputChannels > 0 {
			return d, nil
		}
	}

	return nil, fmt.Errorf("audiosource: no input device named %q", name)
}

// Read fills buf with the next available samples, pulling a fresh buffer
// from the stream whenever the previous one has been drained.
func (s *PortAudioSource) Read(buf []int16) (int, error) {
	n := 0
	for n < len(buf) {
		if s.pos >= s.filled {
			if err := s.stream.Read(); err != nil {
				return n, fmt.Errorf("audiosource: stream read: %w", err)
			}
			s.pos = 0
			s.filled = len(s.buf)
		}

		copied := copy(buf[n:], s.buf[s.pos:s.filled])
		s.pos += copied
		n += copied
	}
	return n, nil
}

func (s *PortAudioSource) Close() error {
	if s.stream == nil {
		return nil
	}
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}
