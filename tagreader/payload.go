package tagreader

import (
	"context"
	"errors"
	"fmt"
)

// Track payloads live in one fixed 4-byte page on the tag: a 3-byte ASCII
// marker followed by the track number. Anything else on that page means the
// tag is unprogrammed.
const (
	PayloadPage = 4
	MinTrack    = 1
	MaxTrack    = 99
)

var payloadMarker = [3]byte{'S', 'O', 'N'}

// ErrNotProgrammed indicates the payload page does not carry a valid
// track record.
var ErrNotProgrammed = errors.New("tag is not programmed")

// EncodePayload builds the 4-byte payload page for a track number.
func EncodePayload(track int) ([]byte, error) {
	if track < MinTrack || track > MaxTrack {
		return nil, fmt.Errorf("track %d out of range [%d,%d]", track, MinTrack, MaxTrack)
	}
	return []byte{payloadMarker[0], payloadMarker[1], payloadMarker[2], byte(track)}, nil
}

// DecodePayload extracts the track number from a payload page.
// Returns ErrNotProgrammed for a bad marker or out-of-range track.
func DecodePayload(data []byte) (int, error) {
	if len(data) < 4 {
		return 0, ErrNotProgrammed
	}
	if data[0] != payloadMarker[0] || data[1] != payloadMarker[1] || data[2] != payloadMarker[2] {
		return 0, ErrNotProgrammed
	}
	track := int(data[3])
	if track < MinTrack || track > MaxTrack {
		return 0, ErrNotProgrammed
	}
	return track, nil
}

// ResolveTrack reads the payload page from the current tag and decodes it.
// A read failure resolves the same way as an unprogrammed tag.
func ResolveTrack(ctx context.Context, r TagReader) (int, error) {
	data, err := r.ReadPage(ctx, PayloadPage)
	if err != nil {
		return 0, fmt.Errorf("read payload page: %w", err)
	}
	return DecodePayload(data)
}
