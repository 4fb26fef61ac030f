package buttons

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFallingEdgeFires(t *testing.T) {
	d := NewDebouncer(DefaultDebounce)
	now := time.Now()

	assert.True(t, d.Observe(LevelLow, now), "first high-to-low transition is a press")
	assert.False(t, d.Observe(LevelHigh, now.Add(50*time.Millisecond)))
}

func TestTwoTransitionsWithinWindowFireOnce(t *testing.T) {
	d := NewDebouncer(200 * time.Millisecond)
	now := time.Now()

	presses := 0
	samples := []struct {
		at    time.Duration
		level Level
	}{
		{0, LevelLow},                       // press
		{50 * time.Millisecond, LevelHigh},  // bounce up
		{100 * time.Millisecond, LevelLow},  // bounce down, inside window
		{150 * time.Millisecond, LevelHigh}, // release
	}
	for _, s := range samples {
		if d.Observe(s.level, now.Add(s.at)) {
			presses++
		}
	}
	assert.Equal(t, 1, presses, "two raw low-transitions within the window must count once")
}

func TestPressAfterWindowFiresAgain(t *testing.T) {
	d := NewDebouncer(200 * time.Millisecond)
	now := time.Now()

	assert.True(t, d.Observe(LevelLow, now))
	assert.False(t, d.Observe(LevelHigh, now.Add(60*time.Millisecond)))
	assert.True(t, d.Observe(LevelLow, now.Add(250*time.Millisecond)))
}

func TestHeldButtonFiresOnce(t *testing.T) {
	d := NewDebouncer(200 * time.Millisecond)
	now := time.Now()

	presses := 0
	for i := 0; i < 100; i++ {
		if d.Observe(LevelLow, now.Add(time.Duration(i)*10*time.Millisecond)) {
			presses++
		}
	}
	assert.Equal(t, 1, presses, "a held button is one press, not a press per sample")
}

func TestRisingEdgeNeverFires(t *testing.T) {
	d := NewDebouncer(200 * time.Millisecond)
	now := time.Now()

	d.Observe(LevelLow, now)
	assert.False(t, d.Observe(LevelHigh, now.Add(300*time.Millisecond)),
		"release must not fire even outside the window")
}

func TestInputsAreIndependent(t *testing.T) {
	up := NewDebouncer(200 * time.Millisecond)
	down := NewDebouncer(200 * time.Millisecond)
	now := time.Now()

	assert.True(t, up.Observe(LevelLow, now))
	// A press on the other input inside up's window still fires; the
	// window applies per input.
	assert.True(t, down.Observe(LevelLow, now.Add(50*time.Millisecond)))
}
