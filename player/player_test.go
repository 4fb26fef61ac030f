package player

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a fake audio.Player that records calls in order.
type recorder struct {
	calls   []string
	playErr error
}

func (r *recorder) Play(track int) error {
	r.calls = append(r.calls, fmt.Sprintf("play %d", track))
	return r.playErr
}

func (r *recorder) Stop() error {
	r.calls = append(r.calls, "stop")
	return nil
}

func (r *recorder) SetVolume(level int) error {
	r.calls = append(r.calls, fmt.Sprintf("vol %d", level))
	return nil
}

func (*recorder) Close() error { return nil }

// fakeLED is a fake indicator.Indicator tracking the lit state.
type fakeLED struct {
	lit bool
}

func (l *fakeLED) Playing()       { l.lit = true }
func (l *fakeLED) Idle()          { l.lit = false }
func (l *fakeLED) Shutdown()      { l.lit = false }
func (l *fakeLED) Release() error { return nil }

func checkInvariant(t *testing.T, p *Player) {
	t.Helper()
	if p.Playing() {
		assert.NotZero(t, p.Track(), "playing player must have a track")
	} else {
		assert.Zero(t, p.Track(), "idle player must have no track")
	}
}

func TestStartFromIdle(t *testing.T) {
	rec := &recorder{}
	led := &fakeLED{}
	p := New(rec, led)

	require.NoError(t, p.Play(5))
	assert.Equal(t, []string{"play 5"}, rec.calls)
	assert.True(t, p.Playing())
	assert.Equal(t, 5, p.Track())
	assert.Equal(t, StatePlaying, p.State())
	assert.True(t, led.lit)
	checkInvariant(t, p)
}

func TestSameTrackIsNoOp(t *testing.T) {
	rec := &recorder{}
	p := New(rec, &fakeLED{})

	require.NoError(t, p.Play(5))
	require.NoError(t, p.Play(5))
	assert.Equal(t, []string{"play 5"}, rec.calls, "replaying the active track must not restart it")
}

func TestSwitchStopsBeforePlay(t *testing.T) {
	rec := &recorder{}
	led := &fakeLED{}
	p := New(rec, led)

	require.NoError(t, p.Play(5))
	require.NoError(t, p.Play(7))

	assert.Equal(t, []string{"play 5", "stop", "play 7"}, rec.calls,
		"stop must be observed before the new play")
	assert.Equal(t, 7, p.Track())
	assert.True(t, led.lit)
	checkInvariant(t, p)
}

func TestStopIsIdempotent(t *testing.T) {
	rec := &recorder{}
	led := &fakeLED{}
	p := New(rec, led)

	require.NoError(t, p.Stop())
	assert.Empty(t, rec.calls, "stopping an idle player must not touch the hardware")

	require.NoError(t, p.Play(3))
	require.NoError(t, p.Stop())
	require.NoError(t, p.Stop())
	assert.Equal(t, []string{"play 3", "stop"}, rec.calls)
	assert.False(t, led.lit)
	checkInvariant(t, p)
}

func TestVolumeClampAtBounds(t *testing.T) {
	rec := &recorder{}
	p := New(rec, &fakeLED{})

	require.NoError(t, p.SetVolume(MaxVolume))
	require.NoError(t, p.AdjustVolume(+1))
	assert.Equal(t, MaxVolume, p.Volume(), "+1 at the top bound must stay at the bound")

	require.NoError(t, p.SetVolume(MinVolume))
	require.NoError(t, p.AdjustVolume(-1))
	assert.Equal(t, MinVolume, p.Volume(), "-1 at the bottom bound must stay at the bound")

	// The clamped level is still forwarded each time.
	assert.Equal(t, []string{"vol 30", "vol 30", "vol 0", "vol 0"}, rec.calls)
}

func TestVolumeOrthogonalToPlayback(t *testing.T) {
	rec := &recorder{}
	p := New(rec, &fakeLED{})

	assert.Equal(t, DefaultVolume, p.Volume())

	require.NoError(t, p.AdjustVolume(+1))
	assert.Equal(t, DefaultVolume+1, p.Volume())

	require.NoError(t, p.Play(9))
	require.NoError(t, p.AdjustVolume(-2))
	assert.Equal(t, DefaultVolume-1, p.Volume())
	assert.True(t, p.Playing(), "volume changes must not affect playback")
	assert.Equal(t, 9, p.Track())
}

func TestEvents(t *testing.T) {
	rec := &recorder{}
	p := New(rec, &fakeLED{})

	var events []Event
	p.OnEvent = func(ev Event) { events = append(events, ev) }

	require.NoError(t, p.Play(4))
	require.NoError(t, p.AdjustVolume(+1))
	require.NoError(t, p.Stop())

	require.Len(t, events, 3)
	assert.Equal(t, EventTrackStarted, events[0].Type)
	assert.Equal(t, 4, events[0].Track)
	assert.Equal(t, EventVolumeChanged, events[1].Type)
	assert.Equal(t, DefaultVolume+1, events[1].Volume)
	assert.Equal(t, EventTrackStopped, events[2].Type)
	assert.Equal(t, 4, events[2].Track, "stop event names the track that was playing")
}

func TestPlayErrorStillTransitions(t *testing.T) {
	rec := &recorder{playErr: errors.New("serial write failed")}
	p := New(rec, &fakeLED{})

	err := p.Play(2)
	assert.Error(t, err)
	// Commands are fire-and-forget; state follows the attempt.
	assert.True(t, p.Playing())
	checkInvariant(t, p)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "playing", StatePlaying.String())
	assert.Equal(t, "unknown", State(9).String())
	assert.Equal(t, "track_started", EventTrackStarted.String())
	assert.Equal(t, "track_stopped", EventTrackStopped.String())
	assert.Equal(t, "volume_changed", EventVolumeChanged.String())
	assert.Equal(t, "unknown", EventType(9).String())
}
