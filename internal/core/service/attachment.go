package service

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/99minutos/community-board/internal/core/ports"
)

// ErrAttachmentSuperseded is returned by Attach when a newer Attach started
// before this one finished.
var ErrAttachmentSuperseded = errors.New("attachment superseded by a newer selection")

// AttachmentSlot holds the single pending image of a post composer. Starting
// a new attachment cancels the one in flight, and only the most recently
// started operation may fill the slot.
type AttachmentSlot struct {
	images ports.ImageService

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	payload *string
}

func NewAttachmentSlot(images ports.ImageService) *AttachmentSlot {
	return &AttachmentSlot{images: images}
}

// Attach processes r and stores the payload. A failed attachment empties the slot.
func (a *AttachmentSlot) Attach(ctx context.Context, r io.Reader, size int64) (string, error) {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.seq++
	seq := a.seq
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()
	defer cancel()

	payload, err := a.images.Process(ctx, r, size)

	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.seq {
		return "", ErrAttachmentSuperseded
	}
	a.cancel = nil
	if err != nil {
		a.payload = nil
		return "", err
	}
	a.payload = &payload
	return payload, nil
}

// Pending returns the current payload without consuming it.
func (a *AttachmentSlot) Pending() *string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.payload == nil {
		return nil
	}
	p := *a.payload
	return &p
}

// Take returns the current payload and empties the slot.
func (a *AttachmentSlot) Take() *string {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.payload
	a.payload = nil
	return p
}

// Clear cancels any attachment in flight and empties the slot.
func (a *AttachmentSlot) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.seq++
	a.payload = nil
}
