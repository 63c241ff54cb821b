package scroll

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func TestSetPositionClampsAndNotifies(t *testing.T) {
	b := New(Vertical)
	b.SetViewport(10)
	b.SetContentSize(25)

	var got []int
	remove := b.OnPositionChanged(func(p int) { got = append(got, p) })

	b.SetPosition(40)
	b.SetPosition(15)
	b.SetPosition(-3)
	if len(got) != 2 || got[0] != 15 || got[1] != 0 {
		t.Fatalf("notifications = %v, want [15 0]", got)
	}

	remove()
	b.SetPosition(5)
	if len(got) != 2 {
		t.Fatalf("listener still called after removal: %v", got)
	}
	if b.Position() != 5 {
		t.Fatalf("position = %d", b.Position())
	}
}

func TestShrinkingContentReclamps(t *testing.T) {
	b := New(Horizontal)
	b.SetViewport(5)
	b.SetContentSize(20)
	b.SetPosition(15)

	moved := -1
	b.OnPositionChanged(func(p int) { moved = p })
	b.SetContentSize(8)
	if b.Position() != 3 || moved != 3 {
		t.Fatalf("position = %d moved = %d, want 3", b.Position(), moved)
	}
	b.SetContentSize(4)
	if b.Scrollable() || b.Position() != 0 {
		t.Fatalf("fitting content should reset to 0, got %d", b.Position())
	}
}

func TestPositionAt(t *testing.T) {
	b := New(Vertical)
	b.SetViewport(10)
	b.SetContentSize(110)
	if p := b.PositionAt(0, 11); p != 0 {
		t.Fatalf("top = %d", p)
	}
	if p := b.PositionAt(10, 11); p != 100 {
		t.Fatalf("bottom = %d", p)
	}
	if p := b.PositionAt(5, 11); p != 50 {
		t.Fatalf("middle = %d", p)
	}
}

func TestViewLength(t *testing.T) {
	b := New(Vertical)
	b.SetViewport(4)
	b.SetContentSize(8)
	lines := strings.Split(b.View(4), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d", len(lines))
	}
	h := New(Horizontal)
	h.SetViewport(3)
	if w := ansi.PrintableRuneWidth(h.View(6)); w != 6 {
		t.Fatalf("horizontal width = %d", w)
	}
}
