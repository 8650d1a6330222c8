package detector

/*------------------------------------------------------------------
 *
 * Purpose:	Peak extraction and the bounded peak buffer.
 *
 * Description:	The buffer's eviction policy is deliberately the
 *		"dominance" rule: at capacity, the smallest-by-height
 *		incumbent is evicted in favor of the newcomer, or the
 *		newcomer is dropped if it is itself the smallest. A burst
 *		of more than maxPeaks near-equal transients can therefore
 *		leave a later one silently discarded rather than rotating
 *		out an older one. Preserved as specified; reported via a
 *		"dropped" PeakEvent under DispEvents for auditability.
 *
 *----------------------------------------------------------------*/

type openPeak struct {
	active               bool
	time                 int64
	height               int32
	area                 int64
	filteredLevelAtStart float64
}

type peakBuffer struct {
	peaks []Peak
}

func (b *peakBuffer) reset() {
	b.peaks = b.peaks[:0]
}

func (b *peakBuffer) len() int { return len(b.peaks) }

// insert applies the bounded-buffer eviction policy and returns the kind of
// diagnostic event it produced ("accepted", "evicted", or "dropped").
func (b *peakBuffer) insert(p Peak) (kind string, evicted *Peak) {
	if len(b.peaks) < maxPeaks {
		b.peaks = append(b.peaks, p)
		return "accepted", nil
	}

	smallestIdx := 0
	for i := 1; i < len(b.peaks); i++ {
		if b.peaks[i].Height < b.peaks[smallestIdx].Height {
			smallestIdx = i
		}
	}

	if p.Height <= b.peaks[smallestIdx].Height {
		return "dropped", nil
	}

	old := b.peaks[smallestIdx]
	b.peaks = append(b.peaks[:smallestIdx], b.peaks[smallestIdx+1:]...)
	b.peaks = append(b.peaks, p)
	return "evicted", &old
}

// expireOlderThan drops every peak whose time is older than the given
// horizon, oldest-first (the buffer is kept in ascending time order).
func (b *peakBuffer) expireOlderThan(horizon int64) {
	i := 0
	for i < len(b.peaks) && b.peaks[i].Time < horizon {
		i++
	}
	b.peaks = b.peaks[i:]
}

// stepPeakExtractor implements the per-sample peak open/extend/close state
// machine described in the core's component design.
func (d *Detector) stepPeakExtractor(windowLevel int32) {
	switch {
	case !d.open.active && windowLevel > 0:
		d.open = openPeak{
			active:               true,
			time:                 d.sampleIndex,
			height:               windowLevel,
			area:                 int64(windowLevel),
			filteredLevelAtStart: d.bellLevel.level,
		}

	case d.open.active && windowLevel > 0:
		if windowLevel > d.open.height {
			d.open.time = d.sampleIndex
			d.open.height = windowLevel
		}
		d.open.area += int64(windowLevel)

	case d.open.active && windowLevel <= 0:
		d.closePeak()
	}
}

func (d *Detector) closePeak() {
	o := d.open
	d.open = openPeak{}

	if !d.threshold.accepts(o.height, d.lastFlags) {
		return
	}

	p := Peak{
		Time:                 o.time,
		Height:               o.height,
		Area:                 o.area,
		Width:                int32(o.area / int64(o.height)),
		FilteredLevelAtStart: o.filteredLevelAtStart,
		FilterHits:           0,
	}

	kind, evicted := d.peaks.insert(p)
	switch kind {
	case "dropped":
		d.recordEvent("dropped", p)
	case "evicted":
		d.recordEvent("accepted", p)
		d.recordEvent("evicted", *evicted)
	default:
		d.recordEvent("accepted", p)
	}
}
