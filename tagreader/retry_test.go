package tagreader

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedReader returns a fixed sequence of poll results, then ErrNoTag.
type scriptedReader struct {
	results []func() (*Tag, error)
	polls   int
}

func (s *scriptedReader) Poll(_ context.Context, _ time.Duration) (*Tag, error) {
	if s.polls >= len(s.results) {
		s.polls++
		return nil, ErrNoTag
	}
	r := s.results[s.polls]
	s.polls++
	return r()
}

func (*scriptedReader) ReadPage(context.Context, uint8) ([]byte, error) { return nil, ErrNoTag }
func (*scriptedReader) WritePage(context.Context, uint8, []byte) error  { return ErrNoTag }
func (*scriptedReader) Close() error                                    { return nil }

func noTag() (*Tag, error) { return nil, ErrNoTag }
func someTag() (*Tag, error) { return &Tag{UID: []byte{0x04, 0x11}}, nil }

func TestWaitForTagImmediate(t *testing.T) {
	fake := NewFake()
	fake.Place([]byte{0x04, 0x99})

	tag, err := WaitForTag(context.Background(), fake, 50, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x99}, tag.UID)
	assert.Equal(t, 1, fake.PollCount())
}

func TestWaitForTagAppearsMidway(t *testing.T) {
	reader := &scriptedReader{results: []func() (*Tag, error){noTag, noTag, noTag, someTag}}

	tag, err := WaitForTag(context.Background(), reader, 50, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x11}, tag.UID)
	assert.Equal(t, 4, reader.polls)
}

func TestWaitForTagExhaustsAttempts(t *testing.T) {
	fake := NewFake()

	_, err := WaitForTag(context.Background(), fake, 50, time.Millisecond)
	assert.ErrorIs(t, err, ErrNoTag)
	assert.Equal(t, 50, fake.PollCount())
}

func TestWaitForTagPollErrorCountsAsMiss(t *testing.T) {
	hwErr := func() (*Tag, error) { return nil, errors.New("frame checksum mismatch") }
	reader := &scriptedReader{results: []func() (*Tag, error){hwErr, someTag}}

	tag, err := WaitForTag(context.Background(), reader, 5, time.Millisecond)
	require.NoError(t, err)
	assert.NotNil(t, tag)
}

func TestWaitForTagCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := NewFake()
	_, err := WaitForTag(ctx, fake, 50, time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, fake.PollCount())
}
