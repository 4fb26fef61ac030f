package indicator

import (
	"fmt"

	"github.com/hjkoskel/govattu"
)

// GPIO implements Indicator with a single LED pin.
type GPIO struct {
	hw  govattu.Vattu
	pin uint8
}

// NewGPIO creates a new GPIO-based indicator.
func NewGPIO(pin uint8) (*GPIO, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	g := &GPIO{hw: hw, pin: pin}
	hw.PinMode(pin, govattu.ALToutput)
	hw.PinClear(pin)
	return g, nil
}

// Playing implements Indicator.Playing.
func (g *GPIO) Playing() {
	g.hw.PinSet(g.pin)
}

// Idle implements Indicator.Idle.
func (g *GPIO) Idle() {
	g.hw.PinClear(g.pin)
}

// Shutdown implements Indicator.Shutdown.
func (g *GPIO) Shutdown() {
	g.hw.PinClear(g.pin)
}

// Release implements Indicator.Release.
func (g *GPIO) Release() error {
	g.hw.PinClear(g.pin)
	return g.hw.Close()
}
