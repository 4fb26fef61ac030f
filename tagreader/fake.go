package tagreader

import (
	"context"
	"sync"
	"time"
)

// Fake is an in-memory TagReader for tests and for running the box without
// reader hardware. The tag in the field and the page contents are set
// directly; Poll never sleeps.
type Fake struct {
	mu        sync.Mutex
	tag       *Tag
	pages     map[uint8][]byte
	readErr   error
	writeErr  error
	pollCount int
}

// NewFake creates an empty fake reader with no tag in the field.
func NewFake() *Fake {
	return &Fake{pages: make(map[uint8][]byte)}
}

// Place puts a tag with the given UID into the field.
func (f *Fake) Place(uid []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tag = &Tag{UID: append([]byte(nil), uid...)}
}

// Remove takes the current tag out of the field.
func (f *Fake) Remove() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tag = nil
}

// SetPage sets the content of a page on the fake tag.
func (f *Fake) SetPage(page uint8, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[page] = append([]byte(nil), data...)
}

// Page returns the current content of a page, or nil if never written.
func (f *Fake) Page(page uint8) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.pages[page]...)
}

// SetReadError makes subsequent ReadPage calls fail with err.
func (f *Fake) SetReadError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readErr = err
}

// SetWriteError makes subsequent WritePage calls fail with err.
func (f *Fake) SetWriteError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErr = err
}

// PollCount returns how many times Poll has been called.
func (f *Fake) PollCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pollCount
}

// Poll implements TagReader.Poll. The timeout is ignored.
func (f *Fake) Poll(ctx context.Context, _ time.Duration) (*Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pollCount++
	if f.tag == nil {
		return nil, ErrNoTag
	}
	return &Tag{UID: append([]byte(nil), f.tag.UID...)}, nil
}

// ReadPage implements TagReader.ReadPage.
func (f *Fake) ReadPage(_ context.Context, page uint8) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	data, ok := f.pages[page]
	if !ok {
		return []byte{0, 0, 0, 0}, nil
	}
	return append([]byte(nil), data...), nil
}

// WritePage implements TagReader.WritePage.
func (f *Fake) WritePage(_ context.Context, page uint8, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.pages[page] = append([]byte(nil), data...)
	return nil
}

// Close implements TagReader.Close.
func (f *Fake) Close() error {
	return nil
}
