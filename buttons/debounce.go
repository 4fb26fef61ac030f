// Package buttons converts raw active-low button signals into discrete
// press events.
package buttons

import "time"

// DefaultDebounce is the minimum spacing between two presses of the same
// button.
const DefaultDebounce = 200 * time.Millisecond

// Level is a raw logic level sample.
type Level int

const (
	LevelLow  Level = iota // button pressed (active-low wiring)
	LevelHigh              // button released
)

// Debouncer turns a stream of logic-level samples from one input into
// press events. A press is the high-to-low transition, and only when the
// previous press is older than the debounce window. Each input gets its
// own Debouncer.
type Debouncer struct {
	window    time.Duration
	lastLevel Level
	lastPress time.Time
}

// NewDebouncer creates a debouncer with the given window. A zero or
// negative window falls back to DefaultDebounce.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	// Pulled-up input idles high.
	return &Debouncer{window: window, lastLevel: LevelHigh}
}

// Observe feeds one sample. It returns true when the sample completes a
// debounced press.
func (d *Debouncer) Observe(level Level, now time.Time) bool {
	pressed := level == LevelLow && d.lastLevel == LevelHigh &&
		now.Sub(d.lastPress) > d.window
	d.lastLevel = level
	if pressed {
		d.lastPress = now
	}
	return pressed
}
