//go:build !linux

package buttons

import "errors"

var ErrNotSupported = errors.New("gpio buttons not supported on this platform")

// Buttons is a stub for non-linux platforms.
type Buttons struct{}

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

// New returns an error on non-linux platforms.
func New(cfg Config, _ Handlers) (*Buttons, error) {
	if cfg.UpPin == 0 && cfg.DownPin == 0 {
		return nil, nil
	}
	return nil, ErrNotSupported
}

// Release releases nothing on non-linux platforms.
func (*Buttons) Release() error { return nil }
