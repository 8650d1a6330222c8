package detector

/*------------------------------------------------------------------
 *
 * Purpose:	Public surface of the detector: Init, Reset, Scan.
 *
 * Description:	All state lives on the Detector value - no package
 *		globals - so a caller can run as many detector instances
 *		as it likes, concurrently, each with its own scan cadence.
 *		A Detector is not itself safe to share across goroutines;
 *		Scan must be called serially for a given instance, with
 *		samples in monotonic acquisition order.
 *
 *----------------------------------------------------------------*/

// Config selects the tunable parameters Init needs: the bell fundamental
// and its filter Q. Zero value selects the built-in defaults.
type Config struct {
	BellFreqHz float64
	BellQ      float64
}

func (c Config) withDefaults() Config {
	if c.BellFreqHz == 0 {
		c.BellFreqHz = defaultBellFreqHz
	}
	if c.BellQ == 0 {
		c.BellQ = defaultBellQ
	}
	return c
}

// Detector is one streaming acoustic-event pipeline instance.
type Detector struct {
	cfg Config

	sampleIndex int64

	decorr decorrelator
	decorrLevel levelTracker

	window windowSummer

	open      openPeak
	peaks     peakBuffer
	threshold thresholdController

	bellFilter biquadState
	bellLevel  levelTracker

	samplesSinceTick   int64
	samplesSinceThresh int64

	lastFlags Flags
	diag      Diagnostics
}

// New constructs and initializes a Detector.
func New(cfg Config) *Detector {
	d := &Detector{cfg: cfg.withDefaults()}
	d.Init()
	return d
}

// Init resets all state and configures the bell biquad. Equivalent to
// discarding the instance and constructing a fresh one.
func (d *Detector) Init() {
	d.sampleIndex = 0

	d.decorr.reset()
	d.decorrLevel = newLevelTracker(decorrLevelInit, decorrLevelMin)

	d.window.reset()

	d.open = openPeak{}
	d.peaks.reset()
	d.threshold.reset()

	d.bellFilter.reset(newBellBandpass(d.cfg.BellFreqHz, d.cfg.BellQ))
	d.bellLevel = newLevelTracker(0, decorrLevelMin)

	d.samplesSinceTick = 0
	d.samplesSinceThresh = 0
}

// Reset is equivalent to Init; provided under its own name because callers
// reach for "reset" after a detection, not "re-initialize".
func (d *Detector) Reset() { d.Init() }

// Scan processes in, returning the OR of every KNOCK/BELL event observed
// during the call. When flags requests any OUTP_*/DISP_* diagnostics, the
// returned Diagnostics holds them; otherwise its fields are nil.
func (d *Detector) Scan(in []int16, flags Flags) (Detections, Diagnostics) {
	d.lastFlags = flags
	d.diag = Diagnostics{}

	wantDecorrAudio := flags&OutpDecorrAudio != 0
	wantDecorrLevel := flags&OutpDecorrLevel != 0
	wantNormalAudio := flags&OutpNormalAudio != 0
	wantWindowLevel := flags&OutpWindowLevel != 0
	wantFilterAudio := flags&OutpFilterAudio != 0
	wantFilterLevel := flags&OutpFilterLevel != 0

	if wantDecorrAudio {
		d.diag.DecorrAudio = make([]int16, 0, len(in))
	}
	if wantDecorrLevel {
		d.diag.DecorrLevel = make([]int16, 0, len(in))
	}
	if wantNormalAudio {
		d.diag.NormalAudio = make([]int16, 0, len(in))
	}
	if wantWindowLevel {
		d.diag.WindowLevel = make([]int16, 0, len(in))
	}
	if wantFilterAudio {
		d.diag.FilterAudio = make([]int16, 0, len(in))
	}
	if wantFilterLevel {
		d.diag.FilterLevel = make([]int16, 0, len(in))
	}

	var detections Detections

	for _, x := range in {
		y := d.decorr.step(x)
		level := d.decorrLevel.update(absInt16(y))
		normalized := normalize(y, level)

		windowLevel := d.window.step(normalized)

		filtered := d.bellFilter.step(float64(normalized))
		bellLevel := d.bellLevel.update(absFloat(filtered))

		d.stepPeakExtractor(windowLevel)

		if wantDecorrAudio {
			d.diag.DecorrAudio = append(d.diag.DecorrAudio, y)
		}
		if wantDecorrLevel {
			d.diag.DecorrLevel = append(d.diag.DecorrLevel, levelToInt16(level))
		}
		if wantNormalAudio {
			d.diag.NormalAudio = append(d.diag.NormalAudio, normalized)
		}
		if wantWindowLevel {
			d.diag.WindowLevel = append(d.diag.WindowLevel, int16(clampWindow(windowLevel)))
		}
		if wantFilterAudio {
			d.diag.FilterAudio = append(d.diag.FilterAudio, clampInt16(int32(filtered)))
		}
		if wantFilterLevel {
			d.diag.FilterLevel = append(d.diag.FilterLevel, levelToInt16(bellLevel))
		}

		d.sampleIndex++
		d.samplesSinceTick++
		d.samplesSinceThresh++

		if d.samplesSinceTick >= analysisTickSamples {
			d.samplesSinceTick = 0
			detections |= d.runAnalysisTick()
		}

		if flags&DispThresholds != 0 && d.samplesSinceThresh >= thresholdLogIntervalSamples {
			d.samplesSinceThresh = 0
			d.diag.Thresholds = append(d.diag.Thresholds, ThresholdSample{
				SampleIndex:   d.sampleIndex,
				PeakThreshold: d.threshold.baseline,
				EffectiveGate: d.threshold.baseline * d.threshold.scaling(flags),
			})
		}

		d.maybeWrapIndex()
	}

	return detections, d.diag
}

// NumPeaks reports the current peak buffer occupancy; exported for property
// tests that check the 0..16 invariant from outside the package.
func (d *Detector) NumPeaks() int { return d.peaks.len() }

// PeakThreshold exposes the current adaptive baseline, for tests that check
// it drifts downward during silence.
func (d *Detector) PeakThreshold() float64 { return d.threshold.baseline }

// WindowSum exposes the running window sum, for tests that check it matches
// the sum of the window buffer contents.
func (d *Detector) WindowSum() int64 { return d.window.sum }

// WindowChecksum recomputes the window sum from the ring buffer contents.
func (d *Detector) WindowChecksum() int64 { return d.window.checkSum() }

func (d *Detector) maybeWrapIndex() {
	if d.sampleIndex > indexWrapAt && d.peaks.len() == 0 && !d.open.active {
		d.sampleIndex %= indexWrapAt
	}
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func levelToInt16(level float64) int16 {
	return clampInt16(int32(level))
}

func clampWindow(w int32) int32 {
	if w > 32767 {
		return 32767
	}
	if w < -32768 {
		return -32768
	}
	return w
}
