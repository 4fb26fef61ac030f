package tagreader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	pn532 "github.com/ZaparooProject/go-pn532"
	"github.com/ZaparooProject/go-pn532/transport/i2c"
	"github.com/ZaparooProject/go-pn532/transport/uart"
)

// PN532 implements TagReader on a PN532 module, reached over UART or I2C
// depending on the device path.
type PN532 struct {
	device *pn532.Device
	tag    *pn532.DetectedTag
}

// NewPN532 opens the PN532 on the given device path and verifies it
// responds by querying its firmware version.
func NewPN532(device string) (*PN532, error) {
	if device == "" {
		return nil, errors.New("reader device path not configured")
	}

	dev, err := pn532.ConnectDevice(device, pn532.WithTransportFactory(newTransport))
	if err != nil {
		return nil, fmt.Errorf("connect PN532 on %s: %w", device, err)
	}

	version, err := dev.GetFirmwareVersion()
	if err != nil {
		_ = dev.Close()
		return nil, fmt.Errorf("PN532 not responding on %s: %w", device, err)
	}
	log.Printf("PN532 firmware %s on %s", version.Version, device)

	return &PN532{device: dev}, nil
}

// newTransport picks a transport from the device path. I2C bus paths
// contain "i2c"; everything else is treated as a serial port.
func newTransport(path string) (pn532.Transport, error) {
	if strings.Contains(strings.ToLower(path), "i2c") {
		t, err := i2c.New(path)
		if err != nil {
			return nil, fmt.Errorf("open I2C transport: %w", err)
		}
		return t, nil
	}
	t, err := uart.New(path)
	if err != nil {
		return nil, fmt.Errorf("open UART transport: %w", err)
	}
	return t, nil
}

// Poll implements TagReader.Poll.
func (p *PN532) Poll(ctx context.Context, timeout time.Duration) (*Tag, error) {
	pollCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	detected, err := p.device.DetectTagContext(pollCtx)
	if err != nil {
		if errors.Is(err, pn532.ErrNoTagDetected) || errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrNoTag
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("poll for tag: %w", err)
	}

	p.tag = detected
	return &Tag{UID: detected.UIDBytes}, nil
}

// ReadPage implements TagReader.ReadPage.
func (p *PN532) ReadPage(_ context.Context, page uint8) ([]byte, error) {
	if p.tag == nil {
		return nil, ErrNoTag
	}
	ntag := pn532.NewNTAGTag(p.device, p.tag.UIDBytes, p.tag.SAK)
	data, err := ntag.ReadBlock(page)
	if err != nil {
		return nil, fmt.Errorf("read page %d: %w", page, err)
	}
	// The NTAG READ command returns four pages; only the first is ours.
	if len(data) > 4 {
		data = data[:4]
	}
	return data, nil
}

// WritePage implements TagReader.WritePage.
func (p *PN532) WritePage(_ context.Context, page uint8, data []byte) error {
	if p.tag == nil {
		return ErrNoTag
	}
	if len(data) != 4 {
		return fmt.Errorf("page write needs 4 bytes, got %d", len(data))
	}
	ntag := pn532.NewNTAGTag(p.device, p.tag.UIDBytes, p.tag.SAK)
	if err := ntag.WriteBlock(page, data); err != nil {
		return fmt.Errorf("write page %d: %w", page, err)
	}
	return nil
}

// Close implements TagReader.Close.
func (p *PN532) Close() error {
	if p.device == nil {
		return nil
	}
	return p.device.Close()
}
