package indicator

// Noop implements Indicator but does nothing. Used when no LED is
// configured.
type Noop struct{}

// Playing implements Indicator.Playing.
func (*Noop) Playing() {}

// Idle implements Indicator.Idle.
func (*Noop) Idle() {}

// Shutdown implements Indicator.Shutdown.
func (*Noop) Shutdown() {}

// Release implements Indicator.Release.
func (*Noop) Release() error { return nil }
