// Package detector implements the streaming acoustic event core: a
// decorrelator, level tracker, normalizer, sliding-window transient
// extractor, peak bookkeeping, knock-pattern matcher, and bell-fundamental
// filter, run single-threaded over batches of 16 kHz signed 16-bit samples.
package detector

// Flags selects optional behavior for a Scan call: sensitivity mode plus
// which diagnostic taps to populate.
type Flags uint32

const (
	// HighSensitivity loosens the knock-pattern and acceptance gates.
	HighSensitivity Flags = 0x01
	// DispThresholds requests a threshold sample every 10s of audio time.
	DispThresholds Flags = 0x02
	// DispEvents requests accepted-detection and buffer-eviction events.
	DispEvents Flags = 0x04
	// DispPeaks requests an event for every accepted peak.
	DispPeaks Flags = 0x08

	OutpDecorrAudio Flags = 0x10
	OutpDecorrLevel Flags = 0x20
	OutpNormalAudio Flags = 0x40
	OutpWindowLevel Flags = 0x80
	OutpFilterAudio Flags = 0x100
	OutpFilterLevel Flags = 0x200
)

// Detections is the bitmask Scan returns: the OR of every event kind raised
// during that call.
type Detections uint32

const (
	Knock Detections = 0x1
	Bell  Detections = 0x2
)

// Peak is the in-memory fingerprint of one closed transient.
type Peak struct {
	Time                 int64
	Height               int32
	Area                 int64
	Width                int32
	FilteredLevelAtStart float64
	FilterHits           int
}

// PeakEvent is a DispPeaks/DispEvents diagnostic record.
type PeakEvent struct {
	SampleIndex int64
	Kind        string // "accepted", "evicted", "dropped", "knock", "bell"
	Peak        Peak
}

// ThresholdSample is a DispThresholds diagnostic record.
type ThresholdSample struct {
	SampleIndex    int64
	PeakThreshold  float64
	EffectiveGate  float64
}

// Diagnostics carries everything a Scan call produced beyond the detections
// bitmask: one slice per enabled OUTP_* tap (each exactly len(in) long, in
// the tap-declared order below) plus any DISP_* event/threshold records.
//
// The audio-path core itself never blocks on I/O; Diagnostics is a plain
// value for a caller (see package eventsink) to route to logging, CSV,
// or a debug console at its own pace.
type Diagnostics struct {
	DecorrAudio  []int16
	DecorrLevel  []int16
	NormalAudio  []int16
	WindowLevel  []int16
	FilterAudio  []int16
	FilterLevel  []int16
	Thresholds   []ThresholdSample
	Events       []PeakEvent
}

// Flatten concatenates the enabled OUTP_* taps in declared order, matching
// the legacy "single out[] array" contract: k taps enabled over a batch of
// n samples yields k*n samples.
func (d *Diagnostics) Flatten() []int16 {
	var out []int16
	for _, tap := range [][]int16{
		d.DecorrAudio,
		d.DecorrLevel,
		d.NormalAudio,
		d.WindowLevel,
		d.FilterAudio,
		d.FilterLevel,
	} {
		out = append(out, tap...)
	}
	return out
}
