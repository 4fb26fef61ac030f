//go:build linux

package buttons

import (
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Buttons handles the volume-up and volume-down inputs.
type Buttons struct {
	upLine     *gpiocdev.Line
	downLine   *gpiocdev.Line
	upBounce   *Debouncer
	downBounce *Debouncer
	onUp       func()
	onDown     func()
}

// Config holds configuration for the volume buttons.
type Config struct {
	Chip    string `yaml:"chip"`
	UpPin   int    `yaml:"up_pin"`
	DownPin int    `yaml:"down_pin"`
}

// Handlers holds callback functions for button events.
type Handlers struct {
	OnVolumeUp   func()
	OnVolumeDown func()
}

// New creates a handler for the two volume buttons.
// Returns nil if config has no pins specified (UpPin and DownPin both 0).
func New(cfg Config, handlers Handlers) (*Buttons, error) {
	if cfg.UpPin == 0 && cfg.DownPin == 0 {
		return nil, nil
	}

	if cfg.Chip == "" {
		cfg.Chip = "gpiochip0"
	}

	// Hardware glitch filter; the press-spacing window is enforced by
	// the Debouncers.
	glitchFilter := 2 * time.Millisecond

	b := &Buttons{
		upBounce:   NewDebouncer(DefaultDebounce),
		downBounce: NewDebouncer(DefaultDebounce),
		onUp:       handlers.OnVolumeUp,
		onDown:     handlers.OnVolumeDown,
	}

	var err error

	if cfg.UpPin > 0 {
		b.upLine, err = gpiocdev.RequestLine(cfg.Chip, cfg.UpPin,
			gpiocdev.WithPullUp,
			gpiocdev.WithBothEdges,
			gpiocdev.WithDebounce(glitchFilter),
			gpiocdev.WithEventHandler(b.handleEvent))
		if err != nil {
			return nil, err
		}
	}

	if cfg.DownPin > 0 {
		b.downLine, err = gpiocdev.RequestLine(cfg.Chip, cfg.DownPin,
			gpiocdev.WithPullUp,
			gpiocdev.WithBothEdges,
			gpiocdev.WithDebounce(glitchFilter),
			gpiocdev.WithEventHandler(b.handleEvent))
		if err != nil {
			if b.upLine != nil {
				b.upLine.Close()
			}
			return nil, err
		}
	}

	return b, nil
}

func (b *Buttons) handleEvent(evt gpiocdev.LineEvent) {
	var level Level
	switch evt.Type {
	case gpiocdev.LineEventRisingEdge:
		level = LevelHigh
	case gpiocdev.LineEventFallingEdge:
		level = LevelLow
	default:
		return
	}

	now := time.Now()
	switch {
	case b.upLine != nil && evt.Offset == b.upLine.Offset():
		if b.upBounce.Observe(level, now) && b.onUp != nil {
			b.onUp()
		}
	case b.downLine != nil && evt.Offset == b.downLine.Offset():
		if b.downBounce.Observe(level, now) && b.onDown != nil {
			b.onDown()
		}
	}
}

// Release releases the GPIO lines.
func (b *Buttons) Release() error {
	if b.upLine != nil {
		b.upLine.Close()
	}
	if b.downLine != nil {
		b.downLine.Close()
	}
	return nil
}
