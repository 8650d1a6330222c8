package detector

import "math"

// Synthetic audio fixtures for the scenario and property tests below,
// generating raw int16 PCM sample slices directly.

func silence(n int) []int16 {
	return make([]int16, n)
}

// pulse emits a short unit-ish amplitude burst: durationMs of samples that
// start at the given amplitude and decay exponentially. Callers frame it
// with silence so it reads as a discrete transient.
func pulse(amplitude int16, durationMs int) []int16 {
	n := sampleRateHz * durationMs / 1000
	out := make([]int16, n)
	for i := range out {
		// A touch of ringing keeps the window summer from seeing a single
		// flat plateau, closer to a real knuckle-on-door transient.
		decay := math.Exp(-float64(i) / float64(n) * 3)
		out[i] = int16(float64(amplitude) * decay)
	}
	return out
}

// sine emits durationMs of a sine wave at freqHz, amplitude amp.
func sine(freqHz float64, amp int16, durationMs int) []int16 {
	n := sampleRateHz * durationMs / 1000
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(float64(amp) * math.Sin(2*math.Pi*freqHz*float64(i)/sampleRateHz))
	}
	return out
}

func whiteNoise(rms float64, n int, seed uint64) []int16 {
	out := make([]int16, n)
	state := seed | 1
	for i := range out {
		// xorshift64 - deterministic, no need for math/rand in a test fixture.
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17

		u := float64(state%200001)/100000.0 - 1.0 // roughly uniform in [-1,1]
		out[i] = clampInt16(int32(u * rms * 1.7))
	}
	return out
}

func concat(chunks ...[]int16) []int16 {
	var out []int16
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}
