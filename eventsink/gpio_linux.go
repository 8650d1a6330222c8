//go:build linux

package eventsink

import "github.com/warthog618/go-gpiocdev"

// NewGPIOIndicator requests chip/line as an output, initially low.
func NewGPIOIndicator(chip string, line int) (*GPIOIndicator, error) {
	l, err := gpiocdev.RequestLine(chip, line, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, err
	}
	return newGPIOIndicatorWithLine(l), nil
}
