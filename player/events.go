package player

// EventType represents a playback event type.
type EventType int

const (
	EventTrackStarted  EventType = iota // a track started playing
	EventTrackStopped                   // playback stopped
	EventVolumeChanged                  // volume level changed
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackStarted:
		return "track_started"
	case EventTrackStopped:
		return "track_stopped"
	case EventVolumeChanged:
		return "volume_changed"
	default:
		return "unknown"
	}
}

// Event describes one playback transition.
type Event struct {
	Type   EventType
	Track  int // track concerned, 0 when not applicable
	Volume int // volume at the time of the event
}
