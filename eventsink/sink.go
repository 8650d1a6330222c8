// Package eventsink adapts the detector package's pull-based Diagnostics
// and Detections values into output: log lines, CSV rows, a GPIO pulse, a
// DNS-SD announcement, and a serial console. The detector package itself
// never imports any of this - it is the allocation-free audio-path core and
// must not block on I/O - so every sink here is driven from the caller's
// own loop, after a Scan call returns.
package eventsink

import "github.com/briarwolf/knockbell/detector"

// Sink receives one Scan call's worth of results. Implementations must not
// block the caller for more than a few milliseconds; anything slower
// (network, disk) should buffer internally.
type Sink interface {
	HandleScan(det detector.Detections, diag detector.Diagnostics)
	Close() error
}

// Multi fans one Scan result out to several sinks in declaration order.
type Multi []Sink

func (m Multi) HandleScan(det detector.Detections, diag detector.Diagnostics) {
	for _, s := range m {
		s.HandleScan(det, diag)
	}
}

func (m Multi) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
