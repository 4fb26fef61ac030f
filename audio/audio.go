// Package audio is the playback hardware boundary: a small command set a
// serial MP3 module can execute, with no acknowledgement awaited.
package audio

import "fmt"

// Player is the interface for all audio playback implementations.
type Player interface {
	// Play starts the given track from the beginning.
	Play(track int) error

	// Stop halts playback.
	Stop() error

	// SetVolume sets the output volume. Callers are responsible for
	// clamping; implementations forward the value as-is.
	SetVolume(level int) error

	// Close releases the audio hardware.
	Close() error
}

// Config holds common configuration for player implementations.
type Config struct {
	Type   string `yaml:"type"`   // "dfplayer" (default), "none"
	Device string `yaml:"device"` // e.g. "/dev/ttyAMA0"
	Baud   int    `yaml:"baud"`   // serial baud rate, default 9600
}

// New creates a Player based on the provided configuration.
func New(cfg Config) (Player, error) {
	switch cfg.Type {
	case "dfplayer", "":
		return NewDFPlayer(cfg.Device, cfg.Baud)
	case "none":
		return &Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown audio type %q", cfg.Type)
	}
}
