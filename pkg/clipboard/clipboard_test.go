package clipboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type failing struct{ err error }

func (f failing) ReadText(context.Context) (string, error) { return "", f.err }
func (f failing) WriteText(context.Context, string) error  { return f.err }

func newHistory(t *testing.T, limit int) *History {
	t.Helper()
	h, err := OpenHistory(t.TempDir(), limit)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	base := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	n := 0
	h.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return h
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := &Memory{}
	if _, err := m.ReadText(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty read err = %v", err)
	}
	if err := m.WriteText(ctx, "a\tb"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, _ := m.ReadText(ctx); got != "a\tb" {
		t.Fatalf("read = %q", got)
	}
}

func TestHistoryKeepsNewestWithinLimit(t *testing.T) {
	ctx := context.Background()
	h := newHistory(t, 2)
	for _, text := range []string{"one", "two\tthree\r\n", "", "four"} {
		if err := h.WriteText(ctx, text); err != nil {
			t.Fatalf("write %q: %v", text, err)
		}
	}
	entries, err := h.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Text != "four" || entries[1].Text != "two\tthree\r\n" {
		t.Fatalf("order = %q, %q", entries[0].Text, entries[1].Text)
	}
	if entries[1].Rows != 1 || entries[1].Cols != 2 {
		t.Fatalf("shape = %dx%d", entries[1].Rows, entries[1].Cols)
	}
	if got, err := h.ReadText(ctx); err != nil || got != "four" {
		t.Fatalf("read = %q, %v", got, err)
	}
}

func TestHistorySkipsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	h := newHistory(t, 5)
	var debug bytes.Buffer
	h.SetDebugWriter(&debug)
	if err := h.WriteText(ctx, "kept"); err != nil {
		t.Fatalf("write: %v", err)
	}
	const bad = "2024-03-09-99999999999999999999"
	if err := h.d.Write(bad, []byte("{not json")); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}
	entries, err := h.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "kept" {
		t.Fatalf("entries = %+v", entries)
	}
	if got, err := h.ReadText(ctx); err != nil || got != "kept" {
		t.Fatalf("read = %q, %v", got, err)
	}
	if !strings.Contains(debug.String(), "history.Entries skip "+bad) {
		t.Fatalf("debug log = %q", debug.String())
	}
}

func TestHistoryClear(t *testing.T) {
	ctx := context.Background()
	h := newHistory(t, 5)
	if err := h.WriteText(ctx, "x"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := h.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := h.ReadText(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("read after clear err = %v", err)
	}
	if err := h.WriteText(ctx, "y"); err != nil {
		t.Fatalf("write after clear: %v", err)
	}
}

func TestChainFallsBack(t *testing.T) {
	ctx := context.Background()
	mem := &Memory{}
	chain := Chain{failing{err: ErrUnavailable}, mem}

	if err := chain.WriteText(ctx, "copied"); err != nil {
		t.Fatalf("write should succeed when one backend accepts: %v", err)
	}
	got, err := chain.ReadText(ctx)
	if err != nil || got != "copied" {
		t.Fatalf("read = %q, %v", got, err)
	}

	empty := Chain{failing{err: ErrEmpty}, &Memory{}}
	if _, err := empty.ReadText(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("all-empty err = %v", err)
	}

	broken := Chain{failing{err: ErrUnavailable}}
	if err := broken.WriteText(ctx, "x"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("broken write err = %v", err)
	}
	if _, err := broken.ReadText(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("broken read err = %v", err)
	}
}

func TestSystemHonoursCancelledContext(t *testing.T) {
	s := System{}
	if !s.Available() {
		if _, err := s.ReadText(context.Background()); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("unsupported read err = %v", err)
		}
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.ReadText(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, context.Canceled) && !errors.Is(err, ErrUnavailable) && !errors.Is(err, ErrEmpty) {
		t.Fatalf("unexpected err = %v", err)
	}
}
