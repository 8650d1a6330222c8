package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// End-to-end scenarios mirroring the seeded test table: three near-equidistant
// transients in the knocking cadence band raise KNOCK; a transient followed
// by sustained bell-band energy raises BELL; neither fires on noise alone.

const (
	knockPulseAmplitude = 22000
	knockPulseMs        = 5
)

func knockTriple(gapSamples int) []int16 {
	gap := silence(gapSamples - sampleRateHz*knockPulseMs/1000)
	return concat(
		pulse(knockPulseAmplitude, knockPulseMs), gap,
		pulse(knockPulseAmplitude, knockPulseMs), gap,
		pulse(knockPulseAmplitude, knockPulseMs),
	)
}

func Test_Scenario1_EvenlySpacedKnock(t *testing.T) {
	d := New(Config{})
	stream := concat(
		silence(sampleRateHz*2),
		knockTriple(2400), // 0.15s spacing: well inside the cadence band
		silence(sampleRateHz/2),
	)

	det, _ := d.Scan(stream, 0)

	assert.NotZero(t, det&Knock, "three evenly spaced knocks should raise KNOCK")
	assert.Zero(t, det&Bell, "a knock pattern alone must not raise BELL")
}

func Test_Scenario2_UnevenSpacing_NoDetection(t *testing.T) {
	d := New(Config{})
	// Pulses at t=2.00, 2.10, 2.50s: d1=1600 samples, d2=6400 samples,
	// ratio 4.0 - nowhere near the spacing-equality gate.
	stream := concat(
		silence(sampleRateHz*2),
		pulse(knockPulseAmplitude, knockPulseMs),
		silence(1600-sampleRateHz*knockPulseMs/1000),
		pulse(knockPulseAmplitude, knockPulseMs),
		silence(6400-sampleRateHz*knockPulseMs/1000),
		pulse(knockPulseAmplitude, knockPulseMs),
		silence(sampleRateHz/2),
	)

	det, _ := d.Scan(stream, 0)

	assert.Zero(t, det, "wildly uneven knock spacing must not trigger a detection")
}

func Test_Scenario3_RatioOverGate_NoDetectionInNormalMode(t *testing.T) {
	d := New(Config{})
	stream := buildUnevenTriple()

	det, _ := d.Scan(stream, 0)

	assert.Zero(t, det&Knock, "ratio 1.15 exceeds the 1.1 normal-mode gate")
}

func Test_Scenario4_SameStream_DetectsInHighSensitivityMode(t *testing.T) {
	d := New(Config{})
	stream := buildUnevenTriple()

	det, _ := d.Scan(stream, HighSensitivity)

	assert.NotZero(t, det&Knock, "ratio 1.15 clears the 1.2 high-sensitivity gate")
}

// buildUnevenTriple spaces three pulses d1=2400, d2=2760 samples apart
// (ratio 1.15), per the seeded scenario table.
func buildUnevenTriple() []int16 {
	return concat(
		silence(sampleRateHz*2),
		pulse(knockPulseAmplitude, knockPulseMs),
		silence(2400-sampleRateHz*knockPulseMs/1000),
		pulse(knockPulseAmplitude, knockPulseMs),
		silence(2760-sampleRateHz*knockPulseMs/1000),
		pulse(knockPulseAmplitude, knockPulseMs),
		silence(sampleRateHz/2),
	)
}

func Test_Scenario5_PulseThenBellTone_RaisesBell(t *testing.T) {
	d := New(Config{})
	stream := concat(
		silence(sampleRateHz*2),
		pulse(knockPulseAmplitude, knockPulseMs),
		sine(defaultBellFreqHz, 8000, 1000),
	)

	det, _ := d.Scan(stream, 0)

	assert.NotZero(t, det&Bell, "a pulse followed by 1s of the bell fundamental should confirm BELL")
	assert.Zero(t, det&Knock, "a single transient must not read as a knock pattern")
}

func Test_Scenario6_ShortBellTone_NoBell(t *testing.T) {
	d := New(Config{})
	stream := concat(
		silence(sampleRateHz*2),
		pulse(knockPulseAmplitude, knockPulseMs),
		sine(defaultBellFreqHz, 8000, 300),
	)

	det, _ := d.Scan(stream, 0)

	assert.Zero(t, det&Bell, "300ms of bell energy is under the 500ms (5-tick) confirmation floor")
}

func Test_Scenario7_WhiteNoise_LowDetectionRate(t *testing.T) {
	d := New(Config{})
	stream := whiteNoise(2000, sampleRateHz*10, 12345)

	detections := 0
	const chunk = 1600
	for i := 0; i < len(stream); i += chunk {
		end := i + chunk
		if end > len(stream) {
			end = len(stream)
		}
		det, _ := d.Scan(stream[i:end], 0)
		if det != 0 {
			detections++
		}
	}

	// 10s of noise should not read as a steady stream of knock/bell events;
	// the adaptive threshold is specifically designed to chase noise down
	// to roughly one accepted peak per second, not one detection per tick.
	assert.LessOrEqual(t, detections, 10, "white noise should not produce more than ~1 detection per second")
}
