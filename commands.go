package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/MakeGal/AvatarMusicBox/tagreader"
)

// handleCommand dispatches one console command. Commands are
// case-sensitive; anything unrecognized prints the usage summary.
func (app *App) handleCommand(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	fields := strings.Fields(line)

	switch {
	case fields[0] == "write" && len(fields) == 2:
		track, err := strconv.Atoi(fields[1])
		if err != nil || track < tagreader.MinTrack || track > tagreader.MaxTrack {
			fmt.Fprintln(app.out, "Error: number must be 1–99")
			return
		}
		app.writeTag(ctx, track)

	case line == "read":
		app.readTag(ctx)

	case line == "playmode":
		app.mode = PlayMode
		fmt.Fprintln(app.out, "Switched to play mode")

	default:
		app.printUsage()
	}
}

func (app *App) printUsage() {
	fmt.Fprintln(app.out, "Commands:")
	fmt.Fprintln(app.out, "  write <num> - program tag with a track number (1-99)")
	fmt.Fprintln(app.out, "  read        - read the track number from a tag")
	fmt.Fprintln(app.out, "  playmode    - normal playback")
}

// writeTag performs one blocking wait-for-tag-then-write operation, then
// returns to play mode. Playback polling is suspended for the duration.
func (app *App) writeTag(ctx context.Context, track int) {
	app.mode = WriteMode
	defer func() { app.mode = PlayMode }()

	fmt.Fprintf(app.out, "Place tag to write track %d...\n", track)

	tag, err := tagreader.WaitForTag(ctx, app.reader, programAttempts, programPollTimeout)
	if err != nil {
		fmt.Fprintln(app.out, "Timeout - no tag detected")
		return
	}

	payload, err := tagreader.EncodePayload(track)
	if err != nil {
		fmt.Fprintf(app.out, "Error: %v\n", err)
		return
	}

	if err := app.reader.WritePage(ctx, tagreader.PayloadPage, payload); err != nil {
		log.Printf("Write tag %s: %v", tag, err)
		fmt.Fprintln(app.out, "Write failed")
		return
	}

	fmt.Fprintf(app.out, "Tag %s written with track %d\n", tag, track)
}

// readTag performs one blocking wait-for-tag-then-read operation, then
// returns to play mode.
func (app *App) readTag(ctx context.Context) {
	app.mode = ReadMode
	defer func() { app.mode = PlayMode }()

	fmt.Fprintln(app.out, "Place tag to read...")

	tag, err := tagreader.WaitForTag(ctx, app.reader, programAttempts, programPollTimeout)
	if err != nil {
		fmt.Fprintln(app.out, "Timeout - no tag detected")
		return
	}

	track, err := tagreader.ResolveTrack(ctx, app.reader)
	if err != nil {
		fmt.Fprintf(app.out, "Tag %s is not programmed\n", tag)
		return
	}

	fmt.Fprintf(app.out, "Tag %s track number: %d\n", tag, track)
}
