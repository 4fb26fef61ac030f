package tagreader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		wantTrack int
		wantErr   bool
	}{
		{name: "valid track", data: []byte{'S', 'O', 'N', 15}, wantTrack: 15},
		{name: "lowest track", data: []byte{'S', 'O', 'N', 1}, wantTrack: 1},
		{name: "highest track", data: []byte{'S', 'O', 'N', 99}, wantTrack: 99},
		{name: "wrong marker first byte", data: []byte{'X', 'O', 'N', 15}, wantErr: true},
		{name: "wrong marker last byte", data: []byte{'S', 'O', 'X', 15}, wantErr: true},
		{name: "track zero", data: []byte{'S', 'O', 'N', 0}, wantErr: true},
		{name: "track too high", data: []byte{'S', 'O', 'N', 100}, wantErr: true},
		{name: "short page", data: []byte{'S', 'O', 'N'}, wantErr: true},
		{name: "empty page", data: nil, wantErr: true},
		{name: "blank page", data: []byte{0, 0, 0, 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, err := DecodePayload(tt.data)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotProgrammed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTrack, track)
		})
	}
}

func TestEncodePayload(t *testing.T) {
	data, err := EncodePayload(42)
	require.NoError(t, err)
	assert.Equal(t, []byte{'S', 'O', 'N', 42}, data)

	_, err = EncodePayload(0)
	assert.Error(t, err)
	_, err = EncodePayload(100)
	assert.Error(t, err)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data, err := EncodePayload(7)
	require.NoError(t, err)
	track, err := DecodePayload(data)
	require.NoError(t, err)
	assert.Equal(t, 7, track)
}

func TestResolveTrack(t *testing.T) {
	ctx := context.Background()

	t.Run("programmed tag", func(t *testing.T) {
		fake := NewFake()
		fake.SetPage(PayloadPage, []byte{'S', 'O', 'N', 23})
		track, err := ResolveTrack(ctx, fake)
		require.NoError(t, err)
		assert.Equal(t, 23, track)
	})

	t.Run("blank tag", func(t *testing.T) {
		fake := NewFake()
		_, err := ResolveTrack(ctx, fake)
		assert.ErrorIs(t, err, ErrNotProgrammed)
	})

	t.Run("read failure resolves as unprogrammed-like error", func(t *testing.T) {
		fake := NewFake()
		fake.SetReadError(errors.New("transceive failed"))
		_, err := ResolveTrack(ctx, fake)
		assert.Error(t, err)
	})
}

func TestTagSameAs(t *testing.T) {
	a := &Tag{UID: []byte{0x04, 0xA2, 0x1B}}
	b := &Tag{UID: []byte{0x04, 0xA2, 0x1B}}
	c := &Tag{UID: []byte{0x04, 0xA2, 0x1C}}
	d := &Tag{UID: []byte{0x04, 0xA2}}

	assert.True(t, a.SameAs(b))
	assert.False(t, a.SameAs(c))
	assert.False(t, a.SameAs(d))
	assert.False(t, a.SameAs(nil))
	assert.False(t, (*Tag)(nil).SameAs(a))
}

func TestFormatUID(t *testing.T) {
	assert.Equal(t, "04:A2:1B:33", FormatUID([]byte{0x04, 0xA2, 0x1B, 0x33}))
	assert.Equal(t, "", FormatUID(nil))
}
