// Package presence turns raw tag poll results into discrete placement
// events and tracks the removal grace window.
package presence

import (
	"time"

	"github.com/MakeGal/AvatarMusicBox/tagreader"
)

// DefaultGracePeriod is how long a tag may be out of the field before the
// box treats it as removed.
const DefaultGracePeriod = 2000 * time.Millisecond

// Event classifies the outcome of one poll observation.
type Event int

const (
	// EventNone means nothing changed: same tag still present, or still
	// no tag in the field.
	EventNone Event = iota
	// EventNewTag means a tag was placed that differs from the one the
	// tracker was following (or none was being followed).
	EventNewTag
)

// String returns the string representation of the event.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventNewTag:
		return "new_tag"
	default:
		return "unknown"
	}
}

// Tracker owns the last-seen tag identity and timestamp. It is not safe
// for concurrent use; the control loop is its only caller.
type Tracker struct {
	current    *tagreader.Tag
	lastSeenAt time.Time
	grace      time.Duration
	present    bool
}

// NewTracker creates a tracker with the given grace period.
// A zero or negative grace falls back to DefaultGracePeriod.
func NewTracker(grace time.Duration) *Tracker {
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	return &Tracker{grace: grace}
}

// Observe records one poll result. tag is nil when the poll saw nothing.
// A placement is reported exactly once: subsequent polls of the same tag
// return EventNone. An empty poll preserves the last-seen identity and
// timestamp so the grace window can be evaluated.
func (t *Tracker) Observe(tag *tagreader.Tag, now time.Time) Event {
	if tag == nil {
		t.present = false
		return EventNone
	}

	isNew := !t.present || !tag.SameAs(t.current)
	t.present = true
	t.lastSeenAt = now
	if isNew {
		t.current = tag
		return EventNewTag
	}
	return EventNone
}

// GraceExpired reports whether the field has been empty for longer than
// the grace period. It stays true until a tag is detected again.
func (t *Tracker) GraceExpired(now time.Time) bool {
	if t.present || t.current == nil {
		return false
	}
	return now.Sub(t.lastSeenAt) > t.grace
}

// Present reports whether a tag was in the field at the last poll.
func (t *Tracker) Present() bool {
	return t.present
}

// Current returns the identity of the tag being followed, which survives
// removal until a different tag is placed.
func (t *Tracker) Current() *tagreader.Tag {
	return t.current
}
