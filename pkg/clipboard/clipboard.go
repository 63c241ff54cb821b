// Package clipboard provides the text clipboards the grid copies to and
// pastes from: the system clipboard, an on-disk clip history and an
// in-memory clipboard, plus a chain that falls back between them.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

var (
	// ErrUnavailable is returned when no clipboard backend can be reached.
	ErrUnavailable = errors.New("clipboard: unavailable")
	// ErrEmpty is returned when a read finds nothing to paste.
	ErrEmpty = errors.New("clipboard: empty")
)

// Clipboard reads and writes plain text.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// System talks to the OS clipboard through xclip/xsel/pbcopy or the Windows
// API. Calls honour ctx cancellation even when the helper process hangs.
type System struct{}

// Available reports whether a system clipboard helper was found.
func (System) Available() bool { return !clipboard.Unsupported }

// ReadText returns the clipboard contents.
func (s System) ReadText(ctx context.Context) (string, error) {
	if !s.Available() {
		return "", ErrUnavailable
	}
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := clipboard.ReadAll()
		ch <- result{text, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, r.err)
		}
		if r.text == "" {
			return "", ErrEmpty
		}
		return r.text, nil
	}
}

// WriteText replaces the clipboard contents.
func (s System) WriteText(ctx context.Context, text string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	ch := make(chan error, 1)
	go func() { ch <- clipboard.WriteAll(text) }()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-ch:
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil
	}
}

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

// ReadText returns the last written text.
func (m *Memory) ReadText(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.text == "" {
		return "", ErrEmpty
	}
	return m.text, nil
}

// WriteText stores text.
func (m *Memory) WriteText(_ context.Context, text string) error {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
	return nil
}

// Chain writes to every clipboard and reads from the first that returns
// text. A write succeeds when any backend accepted it.
type Chain []Clipboard

// ReadText tries each clipboard in order.
func (c Chain) ReadText(ctx context.Context) (string, error) {
	var errs []error
	for _, cb := range c {
		text, err := cb.ReadText(ctx)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", ErrUnavailable
	}
	for _, err := range errs {
		if !errors.Is(err, ErrEmpty) {
			return "", errors.Join(errs...)
		}
	}
	return "", ErrEmpty
}

// WriteText writes to each clipboard in order.
func (c Chain) WriteText(ctx context.Context, text string) error {
	var errs []error
	ok := false
	for _, cb := range c {
		if err := cb.WriteText(ctx, text); err != nil {
			errs = append(errs, err)
			continue
		}
		ok = true
	}
	if ok {
		return nil
	}
	if len(errs) == 0 {
		return ErrUnavailable
	}
	return errors.Join(errs...)
}
