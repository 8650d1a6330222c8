package eventsink

import (
	"time"

	"github.com/briarwolf/knockbell/detector"
)

/*------------------------------------------------------------------
 *
 * Purpose:	Drive the status LED: a short GPIO pulse on any KNOCK or
 *		BELL detection.
 *
 * Description:	The hardware line is reached through a small interface
 *		rather than *gpiocdev.Line directly, so tests can swap in a
 *		mock that records SetValue/Close calls without a real
 *		gpiochip or the gpio-sim kernel module.
 *
 *----------------------------------------------------------------*/

const ledPulse = 150 * time.Millisecond

// gpioLine is the seam gpiocdev.Line is requested through; satisfied by the
// real library on Linux and by a test double everywhere else.
type gpioLine interface {
	SetValue(int) error
	Close() error
}

// GPIOIndicator pulses a single GPIO line high for ledPulse on detection.
type GPIOIndicator struct {
	line gpioLine
}

func newGPIOIndicatorWithLine(line gpioLine) *GPIOIndicator {
	return &GPIOIndicator{line: line}
}

func (g *GPIOIndicator) HandleScan(det detector.Detections, _ detector.Diagnostics) {
	if g.line == nil || det == 0 {
		return
	}

	g.line.SetValue(1) //nolint:errcheck
	go func() {
		time.Sleep(ledPulse)
		g.line.SetValue(0) //nolint:errcheck
	}()
}

func (g *GPIOIndicator) Close() error {
	if g.line == nil {
		return nil
	}
	return g.line.Close()
}
