package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// Universal invariants, expressed as properties checked against randomly
// generated sample streams.

func Test_WindowSumInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := New(Config{})
		samples := rapid.SliceOfN(rapid.Int16(), 0, 4000).Draw(t, "samples")

		d.Scan(samples, 0)

		assert.Equal(t, d.WindowChecksum(), d.WindowSum(), "window_sum must equal the sum of the ring buffer contents")
	})
}

func Test_NumPeaksBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := New(Config{})
		samples := rapid.SliceOfN(rapid.Int16(), 0, 8000).Draw(t, "samples")

		d.Scan(samples, 0)

		n := d.NumPeaks()
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, maxPeaks)
	})
}

func Test_PeakTimesStrictlyIncreasing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := New(Config{})
		samples := rapid.SliceOfN(rapid.Int16(), 0, 12000).Draw(t, "samples")

		d.Scan(samples, 0)

		for i := 1; i < len(d.peaks.peaks); i++ {
			assert.Greater(t, d.peaks.peaks[i].Time, d.peaks.peaks[i-1].Time)
		}
	})
}

func Test_Silence_NoDetectionsAndThresholdDrifts(t *testing.T) {
	d := New(Config{})
	before := d.PeakThreshold()

	det, _ := d.Scan(silence(sampleRateHz*2), 0)

	assert.Equal(t, Detections(0), det)
	assert.Equal(t, 0, d.NumPeaks())
	assert.Less(t, d.PeakThreshold(), before, "threshold should have decayed downward over 2s of silence")
}

// Idempotence of batching: splitting a stream into different batch sizes
// must not change the sequence of per-analysis-tick detection events.

func Test_BatchingIdempotence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stream := buildKnockStream()
		chunkSize := rapid.IntRange(1, 97).Draw(t, "chunkSize")

		whole, wholeDet := scanAllAtOnce(stream)
		chunked, chunkedDet := scanInChunks(stream, chunkSize)

		assert.Equal(t, wholeDet, chunkedDet, "OR of detection flags must not depend on batch boundaries")
		assert.Equal(t, whole.NumPeaks(), chunked.NumPeaks())
		assert.InDelta(t, whole.PeakThreshold(), chunked.PeakThreshold(), 1e-6)
	})
}

func Test_SingleSampleBatchesEquivalentToOneBigBatch(t *testing.T) {
	stream := buildKnockStream()

	whole, wholeDet := scanAllAtOnce(stream)
	oneAtATime, oneDet := scanInChunks(stream, 1)

	assert.Equal(t, wholeDet, oneDet)
	assert.Equal(t, whole.NumPeaks(), oneAtATime.NumPeaks())
}

// Reset law: Init then feed S == fresh detector fed S.

func Test_ResetLaw(t *testing.T) {
	stream := buildKnockStream()

	a := New(Config{})
	// Perturb state first so Init has something to actually undo.
	a.Scan(whiteNoise(3000, sampleRateHz, 99), 0)
	a.Init()
	gotA, _ := a.Scan(stream, 0)

	b := New(Config{})
	gotB, _ := b.Scan(stream, 0)

	assert.Equal(t, gotB, gotA)
	assert.Equal(t, b.NumPeaks(), a.NumPeaks())
	assert.InDelta(t, b.PeakThreshold(), a.PeakThreshold(), 1e-9)
}

// Peak buffer saturation: 20 equal-height transients within a short span
// should only ever retain maxPeaks entries, honoring the eviction policy.

func Test_PeakBufferSaturation(t *testing.T) {
	d := New(Config{})

	var stream []int16
	stream = append(stream, silence(sampleRateHz)...)
	for i := 0; i < 20; i++ {
		stream = append(stream, pulse(24000, 5)...)
		stream = append(stream, silence(200)...)
	}

	d.Scan(stream, 0)

	assert.Equal(t, maxPeaks, d.NumPeaks(), "equal-height transients should fill the buffer and then tie-drop, never overflow")
}

// --- helpers ---

func buildKnockStream() []int16 {
	return concat(
		silence(sampleRateHz*2),
		pulse(22000, 5),
		silence(2400-int(sampleRateHz*5/1000)),
		pulse(22000, 5),
		silence(2400-int(sampleRateHz*5/1000)),
		pulse(22000, 5),
		silence(sampleRateHz/2),
	)
}

func scanAllAtOnce(stream []int16) (*Detector, Detections) {
	d := New(Config{})
	det, _ := d.Scan(stream, 0)
	return d, det
}

func scanInChunks(stream []int16, chunkSize int) (*Detector, Detections) {
	d := New(Config{})

	var all Detections
	for i := 0; i < len(stream); i += chunkSize {
		end := i + chunkSize
		if end > len(stream) {
			end = len(stream)
		}
		det, _ := d.Scan(stream[i:end], 0)
		all |= det
	}
	return d, all
}
