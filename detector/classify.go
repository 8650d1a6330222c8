package detector

/*------------------------------------------------------------------
 *
 * Purpose:	Periodic classifier: knock-pattern search over the peak
 *		buffer, and bell-energy confirmation against each peak's
 *		recorded baseline. Runs once per 100ms analysis tick.
 *
 * Description:	The knock search is an O(n^3) nested triple-loop over
 *		the peak buffer; n is bounded to maxPeaks so it's cheap.
 *		Detection clears the buffer and stops the search - a
 *		KNOCK and a BELL can never both come from the same peak
 *		set, and knock is always checked first.
 *
 *----------------------------------------------------------------*/

func (d *Detector) runAnalysisTick() Detections {
	d.threshold.decay()

	d.peaks.expireOlderThan(d.sampleIndex - 2*knockMaxSpan)

	if d.searchKnock() {
		return Knock
	}

	if d.searchBell() {
		return Bell
	}

	return 0
}

func (d *Detector) knockRatio(flags Flags) float64 {
	if flags&HighSensitivity != 0 {
		return knockMaxRatioHigh
	}
	return knockMaxRatioNormal
}

func (d *Detector) rejectRatio(flags Flags) float64 {
	if flags&HighSensitivity != 0 {
		return rejectRatioHigh
	}
	return rejectRatioNormal
}

func (d *Detector) searchKnock() bool {
	peaks := d.peaks.peaks
	n := len(peaks)

	for i := 0; i < n; i++ {
		p1 := peaks[i]
		for j := i + 1; j < n; j++ {
			p2 := peaks[j]
			for k := j + 1; k < n; k++ {
				p3 := peaks[k]

				if d.tripleIsKnock(p1, p2, p3, peaks) {
					d.recordEvent("knock", p3)
					d.peaks.reset()
					return true
				}
			}
		}
	}

	return false
}

func (d *Detector) tripleIsKnock(p1, p2, p3 Peak, all []Peak) bool {
	span := p3.Time - p1.Time
	if !(span > knockMinSpan && span < knockMaxSpan) {
		return false
	}

	if p1.Width >= maxPeakWidth || p2.Width >= maxPeakWidth || p3.Width >= maxPeakWidth {
		return false
	}

	if !(p3.Time+span/2 < d.sampleIndex) {
		return false
	}

	d1 := p2.Time - p1.Time
	d2 := p3.Time - p2.Time

	lo, hi := d1, d2
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo <= 0 {
		return false
	}
	ratio := float64(hi) / float64(lo)
	if !(ratio < d.knockRatio(d.lastFlags)) {
		return false
	}

	minHeight := minOf3(p1.Height, p2.Height, p3.Height)
	rejectGate := float64(minHeight) * d.rejectRatio(d.lastFlags)

	lowBound := p1.Time - span/3
	highBound := p3.Time + span/3
	for _, o := range all {
		if o == p1 || o == p2 || o == p3 {
			continue
		}
		if o.Time > lowBound && o.Time < highBound && float64(o.Height) > rejectGate {
			return false
		}
	}

	return true
}

func minOf3(a, b, c int32) int32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func (d *Detector) searchBell() bool {
	for i := range d.peaks.peaks {
		p := &d.peaks.peaks[i]

		if !(p.Time+bellConfirmWindowSamples > d.sampleIndex) {
			continue
		}

		if d.bellLevel.level > bellHitFactor*p.FilteredLevelAtStart+bellHitOffset {
			p.FilterHits++

			if p.FilterHits >= bellHitsToConfirm {
				d.recordEvent("bell", *p)
				d.peaks.reset()
				return true
			}
		}
	}

	return false
}

func (d *Detector) recordEvent(kind string, p Peak) {
	var gate Flags
	switch kind {
	case "accepted":
		gate = DispPeaks
	default: // "dropped", "evicted", "knock", "bell"
		gate = DispEvents
	}

	if d.lastFlags&gate == 0 {
		return
	}

	d.diag.Events = append(d.diag.Events, PeakEvent{
		SampleIndex: d.sampleIndex,
		Kind:        kind,
		Peak:        p,
	})
}
