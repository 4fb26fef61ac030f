package audio

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// DFPlayer Mini serial protocol. Every exchange is a 10-byte frame:
// [0x7E][0xFF][0x06][cmd][feedback][paramH][paramL][chkH][chkL][0xEF]
// where the checksum is the two's complement of the sum of bytes 1..6.
const (
	frameLen     = 10
	frameStart   = 0x7E
	frameVersion = 0xFF
	frameSize    = 0x06
	frameEnd     = 0xEF

	cmdPlayTrack = 0x03
	cmdSetVolume = 0x06
	cmdSetEQ     = 0x07
	cmdSetSource = 0x09
	cmdReset     = 0x0C
	cmdStop      = 0x16

	replyOnline = 0x3F

	eqNormal = 0x00
	sourceSD = 0x02
)

// ErrNoResponse indicates the DFPlayer did not answer during startup.
var ErrNoResponse = errors.New("dfplayer not responding")

// DFPlayer implements Player for a DFPlayer Mini MP3 module on a UART.
type DFPlayer struct {
	port io.ReadWriteCloser
}

// NewDFPlayer opens the module on the given serial device and resets it.
// The module must report itself online within the startup window or an
// ErrNoResponse-wrapped error is returned.
func NewDFPlayer(device string, baud int) (*DFPlayer, error) {
	if device == "" {
		return nil, errors.New("audio device path not configured")
	}
	if baud == 0 {
		baud = 9600
	}

	c := &serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: time.Second,
	}
	port, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}

	d := &DFPlayer{port: port}
	if err := d.init(); err != nil {
		_ = port.Close()
		return nil, err
	}
	return d, nil
}

// init resets the module, waits for its online report and selects the SD
// card source with a flat EQ.
func (d *DFPlayer) init() error {
	if err := d.send(cmdReset, 0); err != nil {
		return err
	}
	if err := d.awaitOnline(3 * time.Second); err != nil {
		return err
	}
	if err := d.send(cmdSetSource, sourceSD); err != nil {
		return err
	}
	// The module needs a moment after source selection before it
	// accepts playback commands.
	time.Sleep(200 * time.Millisecond)
	return d.send(cmdSetEQ, eqNormal)
}

// awaitOnline reads frames until the module reports 0x3F or the deadline
// passes.
func (d *DFPlayer) awaitOnline(window time.Duration) error {
	deadline := time.Now().Add(window)
	for time.Now().Before(deadline) {
		cmd, _, err := d.readFrame()
		if err != nil {
			continue
		}
		if cmd == replyOnline {
			return nil
		}
	}
	return ErrNoResponse
}

// Play implements Player.Play.
func (d *DFPlayer) Play(track int) error {
	return d.send(cmdPlayTrack, uint16(track))
}

// Stop implements Player.Stop.
func (d *DFPlayer) Stop() error {
	return d.send(cmdStop, 0)
}

// SetVolume implements Player.SetVolume.
func (d *DFPlayer) SetVolume(level int) error {
	return d.send(cmdSetVolume, uint16(level))
}

// Close implements Player.Close.
func (d *DFPlayer) Close() error {
	if d.port == nil {
		return nil
	}
	return d.port.Close()
}

func (d *DFPlayer) send(cmd byte, param uint16) error {
	if _, err := d.port.Write(makeFrame(cmd, param)); err != nil {
		return fmt.Errorf("dfplayer command %#02x: %w", cmd, err)
	}
	return nil
}

// makeFrame builds one command frame with feedback disabled.
func makeFrame(cmd byte, param uint16) []byte {
	frame := []byte{
		frameStart, frameVersion, frameSize,
		cmd, 0x00, byte(param >> 8), byte(param),
		0x00, 0x00, frameEnd,
	}
	chk := checksum(frame[1:7])
	frame[7] = byte(chk >> 8)
	frame[8] = byte(chk)
	return frame
}

// checksum computes the two's complement of the byte sum.
func checksum(payload []byte) uint16 {
	var sum uint16
	for _, b := range payload {
		sum += uint16(b)
	}
	return 0 - sum
}

// readFrame reads and validates one reply frame from the module.
func (d *DFPlayer) readFrame() (cmd byte, param uint16, err error) {
	buf := make([]byte, frameLen)
	n, err := io.ReadFull(d.port, buf)
	if err != nil || n != frameLen {
		return 0, 0, fmt.Errorf("short frame (%d bytes): %w", n, err)
	}
	if buf[0] != frameStart || buf[1] != frameVersion || buf[9] != frameEnd {
		return 0, 0, errors.New("bad frame delimiters")
	}
	chk := uint16(buf[7])<<8 | uint16(buf[8])
	if chk != checksum(buf[1:7]) {
		return 0, 0, errors.New("frame checksum mismatch")
	}
	return buf[3], uint16(buf[5])<<8 | uint16(buf[6]), nil
}
