//go:build !linux

package eventsink

import "errors"

// NewGPIOIndicator is unavailable outside Linux; go-gpiocdev talks to the
// Linux gpiochip character-device ABI directly.
func NewGPIOIndicator(_ string, _ int) (*GPIOIndicator, error) {
	return nil, errors.New("eventsink: GPIO indicator requires linux")
}
