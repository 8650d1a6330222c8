package detector

// Tuning constants. Names and magnitudes are load-bearing: they are the
// values that make the pipeline behave as a knock/bell detector rather than
// a generic transient counter.
const (
	sampleRateHz = 16000

	windowSize = 256 // ring buffer slots for the rectangular sum

	maxPeaks = 16 // peak buffer capacity

	decorrLevelInit = 32760.0
	decorrLevelMin  = 1.0 // hardened floor; never let this reach 0

	normalizeTarget = 128.0
	normalizeClamp  = 32760.0

	peakThresholdInit = 30.0
	peakThresholdGain = 1.01  // bump on each accepted peak
	peakThresholdDecay = 0.999 // decay each 100ms analysis tick

	scalingNormal = 1.5
	scalingHigh   = 1.25

	analysisTickSamples = sampleRateHz / 10 // 1600 samples = 100ms

	knockMinSpan = sampleRateHz * 25 / 100  // 4000 samples = 0.25s
	knockMaxSpan = sampleRateHz * 75 / 100  // 12000 samples = 0.75s

	knockMaxRatioNormal = 1.1
	knockMaxRatioHigh   = 1.2

	rejectRatioNormal = 0.5
	rejectRatioHigh   = 0.75

	maxPeakWidth = 512 // reject wide, sustained peaks from the knock search

	bellConfirmWindowSamples = sampleRateHz // peaks older than 1s stop accumulating bell hits
	bellHitFactor            = 2.0
	bellHitOffset            = 50.0
	bellHitsToConfirm        = 5

	defaultBellFreqHz = 770.0
	defaultBellQ      = 100.0
	bellCoeffGain     = 4.0

	thresholdLogIntervalSamples = sampleRateHz * 10 // 10s

	indexWrapAt = 86_400 * sampleRateHz // 24h worth of samples
)
