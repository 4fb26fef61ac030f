package audio

// Noop implements Player but does nothing. Used when no audio hardware is
// configured.
type Noop struct{}

// Play implements Player.Play.
func (*Noop) Play(int) error { return nil }

// Stop implements Player.Stop.
func (*Noop) Stop() error { return nil }

// SetVolume implements Player.SetVolume.
func (*Noop) SetVolume(int) error { return nil }

// Close implements Player.Close.
func (*Noop) Close() error { return nil }
