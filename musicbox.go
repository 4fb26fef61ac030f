package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeGal/AvatarMusicBox/audio"
	"github.com/MakeGal/AvatarMusicBox/buttons"
	"github.com/MakeGal/AvatarMusicBox/console"
	"github.com/MakeGal/AvatarMusicBox/indicator"
	"github.com/MakeGal/AvatarMusicBox/mqtt"
	"github.com/MakeGal/AvatarMusicBox/player"
	"github.com/MakeGal/AvatarMusicBox/presence"
	"github.com/MakeGal/AvatarMusicBox/tagreader"
)

var myBuild string

// Timing contract of the box. The reader is polled on a fixed cadence to
// bound hardware load; programming operations wait for a tag with a
// bounded retry (~10 s total).
const (
	pollInterval       = 200 * time.Millisecond
	playPollTimeout    = 100 * time.Millisecond
	programPollTimeout = 200 * time.Millisecond
	programAttempts    = 50
)

// Mode selects what currently owns the reader. Write and read modes are
// transient: they cover exactly one programming operation.
type Mode int

const (
	PlayMode Mode = iota
	WriteMode
	ReadMode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case PlayMode:
		return "play"
	case WriteMode:
		return "write"
	case ReadMode:
		return "read"
	default:
		return "unknown"
	}
}

// App holds the application state and dependencies. All playback and
// presence state is owned by the control loop goroutine.
type App struct {
	cfg      *Config
	reader   tagreader.TagReader
	player   *player.Player
	tracker  *presence.Tracker
	console  *console.Console
	buttons  *buttons.Buttons
	mqtt     *mqtt.Client
	out      io.Writer
	volumeCh chan int
	mode     Mode
}

func main() {
	fmt.Printf("musicbox build %s\n", myBuild)

	cfgfile := flag.String("cfg", "musicbox.cfg", "Config file")
	flag.Parse()

	cfg, err := LoadConfig(*cfgfile)
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := &App{
		cfg:      cfg,
		out:      os.Stdout,
		volumeCh: make(chan int, 8),
		mode:     PlayMode,
		tracker:  presence.NewTracker(presence.DefaultGracePeriod),
	}

	// Playing LED
	ind, err := indicator.New(cfg.Indicator)
	if err != nil {
		log.Fatalf("Init indicator: %v", err)
	}

	// Audio module; no module means no purpose, so this is fatal.
	aud, err := audio.New(cfg.Audio)
	if err != nil {
		log.Fatalf("Init audio: %v", err)
	}
	app.player = player.New(aud, ind)
	app.player.OnEvent = app.publishEvent

	// Tag reader; same fatal policy.
	app.reader, err = tagreader.New(cfg.Reader)
	if err != nil {
		log.Fatalf("Init tag reader: %v", err)
	}

	// Volume buttons deliver into the control loop channel.
	app.buttons, err = buttons.New(cfg.Buttons, buttons.Handlers{
		OnVolumeUp:   func() { app.volumeCh <- +1 },
		OnVolumeDown: func() { app.volumeCh <- -1 },
	})
	if err != nil {
		log.Fatalf("Init buttons: %v", err)
	}
	if app.buttons != nil {
		log.Printf("Volume buttons initialized (up=%d, down=%d)",
			cfg.Buttons.UpPin, cfg.Buttons.DownPin)
	}

	// Console command input
	app.console, err = console.New(cfg.Console)
	if err != nil {
		log.Fatalf("Init console: %v", err)
	}
	app.console.Start()

	// Telemetry
	app.mqtt, err = mqtt.New(cfg.MQTT, cfg.ClientID)
	if err != nil {
		log.Fatalf("Init MQTT: %v", err)
	}
	go func() {
		if err := app.mqtt.Connect(); err != nil {
			log.Printf("MQTT connect: %v", err)
		}
	}()
	go app.pingSender(ctx)

	// Push the default volume to the hardware.
	if err := app.player.SetVolume(player.DefaultVolume); err != nil {
		log.Printf("Set default volume: %v", err)
	}

	fmt.Fprintln(app.out, "Type 'read' or 'write <number>' to program tags.")

	// Shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("Shutting down...")
		cancel()
	}()

	app.run(ctx)

	// Cleanup
	_ = app.player.Stop()
	app.mqtt.Disconnect()
	_ = app.reader.Close()
	_ = aud.Close()
	ind.Shutdown()
	_ = ind.Release()
	if app.buttons != nil {
		_ = app.buttons.Release()
	}
	_ = app.console.Close()

	fmt.Println("Shutdown complete")
}

// run is the control loop. It owns all playback and presence state; one
// event is handled at a time, so programming operations block polling
// for their whole bounded duration.
func (app *App) run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		// A pending command pre-empts this tick's play-mode work.
		select {
		case line := <-app.console.Lines():
			app.handleCommand(ctx, line)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			return
		case line := <-app.console.Lines():
			app.handleCommand(ctx, line)
		case delta := <-app.volumeCh:
			if err := app.player.AdjustVolume(delta); err != nil {
				log.Printf("Adjust volume: %v", err)
			}
		case <-ticker.C:
			app.pollTick(ctx)
		}
	}
}

// pollTick runs one play-mode polling cycle: check the field, feed the
// presence tracker, then evaluate the removal grace window.
func (app *App) pollTick(ctx context.Context) {
	tag, err := app.reader.Poll(ctx, playPollTimeout)
	if err != nil && !errors.Is(err, tagreader.ErrNoTag) {
		// No information this tick; the next poll retries naturally.
		log.Printf("Poll: %v", err)
		tag = nil
	}

	if app.tracker.Observe(tag, time.Now()) == presence.EventNewTag {
		log.Printf("Tag detected: %s", tag)
		app.handleNewTag(ctx)
	}

	if app.player.Playing() && app.tracker.GraceExpired(time.Now()) {
		if err := app.player.Stop(); err != nil {
			log.Printf("Stop: %v", err)
		}
	}
}

// handleNewTag resolves the freshly placed tag to a track and reacts.
// Unresolvable content stops any current playback rather than being
// ignored; a tag on the box always states what should be playing.
func (app *App) handleNewTag(ctx context.Context) {
	track, err := tagreader.ResolveTrack(ctx, app.reader)
	if err != nil {
		log.Printf("Tag not playable: %v", err)
		if err := app.player.Stop(); err != nil {
			log.Printf("Stop: %v", err)
		}
		return
	}
	if err := app.player.Play(track); err != nil {
		log.Printf("Play track %d: %v", track, err)
	}
}

// publishEvent forwards playback transitions to the telemetry broker.
func (app *App) publishEvent(ev player.Event) {
	if app.mqtt == nil {
		return
	}
	switch ev.Type {
	case player.EventTrackStarted:
		topic := fmt.Sprintf("musicbox/status/node/%s/playback", app.cfg.ClientID)
		app.mqtt.Publish(topic, fmt.Sprintf(`{"state":"playing","track":%d}`, ev.Track))
	case player.EventTrackStopped:
		topic := fmt.Sprintf("musicbox/status/node/%s/playback", app.cfg.ClientID)
		app.mqtt.Publish(topic, `{"state":"idle"}`)
	case player.EventVolumeChanged:
		topic := fmt.Sprintf("musicbox/status/node/%s/volume", app.cfg.ClientID)
		app.mqtt.Publish(topic, fmt.Sprintf(`{"volume":%d}`, ev.Volume))
	}
}

func (app *App) pingSender(ctx context.Context) {
	ticker := time.NewTicker(120 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			topic := fmt.Sprintf("musicbox/status/node/%s/ping", app.cfg.ClientID)
			app.mqtt.Publish(topic, `{"status":"ok"}`)
		}
	}
}
