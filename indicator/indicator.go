package indicator

// Indicator is the interface for the playback status light.
type Indicator interface {
	// Playing sets the indicator to the track-playing state.
	Playing()

	// Idle sets the indicator to the idle state.
	Idle()

	// Shutdown turns the indicator off for power-down.
	Shutdown()

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for indicator implementations.
type Config struct {
	// GPIO pin driving the playing LED (nil = not configured)
	LEDPin *uint8 `yaml:"led_pin"`
}

// New creates an Indicator based on the provided configuration.
func New(cfg Config) (Indicator, error) {
	if cfg.LEDPin == nil {
		return &Noop{}, nil
	}
	return NewGPIO(*cfg.LEDPin)
}
