package tagreader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoTag indicates no tag was present in the reader field.
var ErrNoTag = errors.New("no tag detected")

// Tag identifies a detected tag. UIDs are 4 or 7 bytes for the tags we
// care about; equality is byte-for-byte over the full slice.
type Tag struct {
	UID []byte
}

// SameAs reports whether two tags carry the same UID.
func (t *Tag) SameAs(other *Tag) bool {
	if t == nil || other == nil {
		return false
	}
	if len(t.UID) != len(other.UID) {
		return false
	}
	for i := range t.UID {
		if t.UID[i] != other.UID[i] {
			return false
		}
	}
	return true
}

// String returns the UID as colon-separated uppercase hex.
func (t *Tag) String() string {
	if t == nil {
		return "<none>"
	}
	return FormatUID(t.UID)
}

// FormatUID renders a UID as colon-separated uppercase hex, e.g. "04:A2:1B:33".
func FormatUID(uid []byte) string {
	parts := make([]string, len(uid))
	for i, b := range uid {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, ":")
}

// TagReader is the interface for NFC tag reader implementations.
// Page operations act on the most recently polled tag.
type TagReader interface {
	// Poll checks the field once for a tag, waiting at most timeout.
	// Returns ErrNoTag when nothing is present.
	Poll(ctx context.Context, timeout time.Duration) (*Tag, error)

	// ReadPage reads one 4-byte page from the current tag.
	ReadPage(ctx context.Context, page uint8) ([]byte, error)

	// WritePage writes one 4-byte page to the current tag.
	WritePage(ctx context.Context, page uint8, data []byte) error

	// Close releases the reader hardware.
	Close() error
}

// Config holds common configuration for reader implementations.
type Config struct {
	Type   string `yaml:"type"`   // "pn532" (default), "fake"
	Device string `yaml:"device"` // e.g. "/dev/ttyUSB0" or "/dev/i2c-1"
}

// New creates a TagReader based on the provided configuration.
func New(cfg Config) (TagReader, error) {
	switch cfg.Type {
	case "pn532", "":
		return NewPN532(cfg.Device)
	case "fake":
		return NewFake(), nil
	default:
		return nil, fmt.Errorf("unknown reader type %q", cfg.Type)
	}
}
