// Package player owns the playback state machine: whether a track is
// playing, which one, and the current volume.
package player

import (
	"log"

	"github.com/MakeGal/AvatarMusicBox/audio"
	"github.com/MakeGal/AvatarMusicBox/indicator"
)

// Volume bounds of the audio module. The default matches the hardware's
// comfortable room level.
const (
	MinVolume     = 0
	MaxVolume     = 30
	DefaultVolume = 20
)

// State represents the playback state.
type State int

const (
	StateIdle    State = iota // no track playing
	StatePlaying              // a track is playing
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Player drives the audio module and the playing indicator. It is not
// safe for concurrent use; the control loop is its only caller.
//
// Invariant: Track() is non-zero exactly while Playing() is true.
type Player struct {
	// OnEvent, when set, receives playback events after each transition.
	// It must not call back into the Player.
	OnEvent func(Event)

	audio   audio.Player
	ind     indicator.Indicator
	playing bool
	track   int
	volume  int
}

// New creates a player in the idle state with the default volume.
func New(a audio.Player, ind indicator.Indicator) *Player {
	return &Player{
		audio:  a,
		ind:    ind,
		volume: DefaultVolume,
	}
}

// Play starts the given track. If the same track is already playing it is
// a no-op; if a different track is playing it is stopped first, so the
// audio module never sees overlapping playback.
func (p *Player) Play(track int) error {
	if p.playing && p.track == track {
		return nil
	}
	if p.playing {
		if err := p.Stop(); err != nil {
			return err
		}
	}

	log.Printf("playing track %d", track)
	err := p.audio.Play(track)
	p.ind.Playing()
	p.playing = true
	p.track = track
	p.emit(Event{Type: EventTrackStarted, Track: track, Volume: p.volume})
	return err
}

// Stop halts playback. Stopping an idle player is a no-op.
func (p *Player) Stop() error {
	if !p.playing {
		return nil
	}

	log.Printf("stopping track %d", p.track)
	stopped := p.track
	err := p.audio.Stop()
	p.ind.Idle()
	p.playing = false
	p.track = 0
	p.emit(Event{Type: EventTrackStopped, Track: stopped, Volume: p.volume})
	return err
}

// AdjustVolume shifts the volume by delta, clamped to [MinVolume,
// MaxVolume], and forwards the resulting level to the audio module.
// Volume is orthogonal to playback state.
func (p *Player) AdjustVolume(delta int) error {
	return p.SetVolume(p.volume + delta)
}

// SetVolume clamps the level and forwards it to the audio module.
func (p *Player) SetVolume(level int) error {
	if level < MinVolume {
		level = MinVolume
	}
	if level > MaxVolume {
		level = MaxVolume
	}
	p.volume = level

	log.Printf("volume %d", p.volume)
	err := p.audio.SetVolume(p.volume)
	p.emit(Event{Type: EventVolumeChanged, Track: p.track, Volume: p.volume})
	return err
}

// Playing reports whether a track is playing.
func (p *Player) Playing() bool {
	return p.playing
}

// Track returns the playing track number, or 0 when idle.
func (p *Player) Track() int {
	return p.track
}

// Volume returns the current volume level.
func (p *Player) Volume() int {
	return p.volume
}

// State returns the playback state.
func (p *Player) State() State {
	if p.playing {
		return StatePlaying
	}
	return StateIdle
}

func (p *Player) emit(ev Event) {
	if p.OnEvent != nil {
		p.OnEvent(ev)
	}
}
