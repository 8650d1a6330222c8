package detector

import "math"

/*------------------------------------------------------------------
 *
 * Purpose:	Generate and run the narrow bandpass used to pick the
 *		bell fundamental out of the normalized stream.
 *
 * Description:	A direct-form-I biquad tuned for a high-Q resonance at a
 *		configurable center frequency. An IIR resonator gets a much
 *		narrower passband per tap than an FIR of any reasonable
 *		length - exactly what picking one bell fundamental out of
 *		broadband knock/speech energy calls for.
 *
 *----------------------------------------------------------------*/

// biquadCoeffs are a direct-form-I biquad's five constants. a0/a1/a2 are
// pre-multiplied by bellCoeffGain at generation time.
type biquadCoeffs struct {
	a0, a1, a2 float64
	b1, b2     float64
}

// newBellBandpass builds a Q-ish resonant bandpass centered at centerHz,
// sampled at sampleRateHz, with the given quality factor.
func newBellBandpass(centerHz, q float64) biquadCoeffs {
	omega := 2 * math.Pi * centerHz / sampleRateHz
	alpha := math.Sin(omega) / (2 * q)

	cosw := math.Cos(omega)

	b0 := alpha
	b1 := 0.0
	b2 := -alpha
	a0 := 1 + alpha
	a1 := -2 * cosw
	a2 := 1 - alpha

	return biquadCoeffs{
		a0: (b0 / a0) * bellCoeffGain,
		a1: (b1 / a0) * bellCoeffGain,
		a2: (b2 / a0) * bellCoeffGain,
		b1: a1 / a0,
		b2: a2 / a0,
	}
}

type biquadState struct {
	coeffs             biquadCoeffs
	inD1, inD2         float64
	outD1, outD2       float64
}

func (b *biquadState) reset(c biquadCoeffs) {
	b.coeffs = c
	b.inD1, b.inD2 = 0, 0
	b.outD1, b.outD2 = 0, 0
}

func (b *biquadState) step(in float64) float64 {
	c := b.coeffs
	out := c.a0*in + c.a1*b.inD1 + c.a2*b.inD2 - c.b1*b.outD1 - c.b2*b.outD2

	b.inD2, b.inD1 = b.inD1, in
	b.outD2, b.outD1 = b.outD1, out

	return out
}
