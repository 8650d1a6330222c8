package main

import "math"

/*------------------------------------------------------------------
 *
 * Purpose:	Synthetic fixtures for exercising the detector without a
 *		WAV file: a decaying knuckle-on-door transient and a
 *		steady bell tone, built as plain PCM sample slices.
 *
 *----------------------------------------------------------------*/

const sampleRateHz = 16000

func silence(n int) []int16 {
	return make([]int16, n)
}

func pulse(amplitude int16, durationMs int) []int16 {
	n := sampleRateHz * durationMs / 1000
	out := make([]int16, n)
	for i := range out {
		decay := math.Exp(-float64(i) / float64(n) * 3)
		out[i] = int16(float64(amplitude) * decay)
	}
	return out
}

func tone(freqHz float64, amp int16, durationMs int) []int16 {
	n := sampleRateHz * durationMs / 1000
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(float64(amp) * math.Sin(2*math.Pi*freqHz*float64(i)/sampleRateHz))
	}
	return out
}

func concat(parts ...[]int16) []int16 {
	var total int
	for _, p := range parts {
		total += len(p)
	}
	out := make([]int16, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// knockFixture is three evenly spaced 5ms transients, well inside the
// knocking cadence band, framed by silence.
func knockFixture() []int16 {
	gap := silence(2400 - sampleRateHz*5/1000)
	return concat(
		silence(sampleRateHz*2),
		pulse(22000, 5), gap,
		pulse(22000, 5), gap,
		pulse(22000, 5),
		silence(sampleRateHz/2),
	)
}

// bellFixture is a single transient followed by a second of the default
// bell fundamental.
func bellFixture() []int16 {
	return concat(
		silence(sampleRateHz*2),
		pulse(22000, 5),
		tone(770, 8000, 1000),
	)
}
