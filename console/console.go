// Package console collects line-oriented commands from stdin and,
// optionally, from a named pipe, and delivers them on one channel.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"syscall"
)

// Config holds configuration for console input.
type Config struct {
	// Pipe is an optional named pipe path accepting the same commands
	// as stdin (e.g. "/tmp/musicbox-cmd"). Empty disables it.
	Pipe string `yaml:"pipe"`
}

// Console merges command lines from stdin and the named pipe.
type Console struct {
	lines  chan string
	pipe   string
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates the console. The named pipe is (re)created when configured.
func New(cfg Config) (*Console, error) {
	if cfg.Pipe != "" {
		os.Remove(cfg.Pipe)
		if err := syscall.Mkfifo(cfg.Pipe, 0o666); err != nil {
			return nil, fmt.Errorf("create named pipe %s: %w", cfg.Pipe, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Console{
		lines:  make(chan string, 4),
		pipe:   cfg.Pipe,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Start begins reading input sources. Safe to call once.
func (c *Console) Start() {
	go c.readLines(os.Stdin, false)
	if c.pipe != "" {
		go c.readPipe()
	}
}

// Lines returns the channel command lines arrive on. Lines are trimmed;
// blank lines and comments are dropped at the source.
func (c *Console) Lines() <-chan string {
	return c.lines
}

// Close stops the readers and removes the named pipe.
func (c *Console) Close() error {
	c.cancel()
	if c.pipe != "" {
		return os.Remove(c.pipe)
	}
	return nil
}

// readPipe reopens the pipe each time a writer closes it.
func (c *Console) readPipe() {
	log.Printf("command pipe listening on %s", c.pipe)
	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		file, err := os.OpenFile(c.pipe, os.O_RDONLY, 0)
		if err != nil {
			if c.ctx.Err() != nil {
				return
			}
			log.Printf("command pipe open error: %v", err)
			continue
		}
		c.readLines(file, true)
		file.Close()
	}
}

func (c *Console) readLines(r io.Reader, allowComments bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if allowComments && strings.HasPrefix(line, "#") {
			continue
		}
		select {
		case c.lines <- line:
		case <-c.ctx.Done():
			return
		}
	}
}
