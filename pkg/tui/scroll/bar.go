// Package scroll models a scrollbar: a content size, a viewport size and a
// position, with listeners notified whenever the position changes.
package scroll

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// Orientation selects which axis a bar scrolls.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Bar holds scroll state in cell units.
type Bar struct {
	orient   Orientation
	content  int
	viewport int
	position int

	nextID    int
	listeners map[int]func(int)

	Track lipgloss.Style
	Thumb lipgloss.Style
}

// New returns an empty bar.
func New(orient Orientation) *Bar {
	return &Bar{
		orient:    orient,
		listeners: map[int]func(int){},
		Track:     lipgloss.NewStyle(),
		Thumb:     lipgloss.NewStyle().Reverse(true),
	}
}

// OnPositionChanged registers fn and returns a func that removes it.
func (b *Bar) OnPositionChanged(fn func(position int)) func() {
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	return func() { delete(b.listeners, id) }
}

// ContentSize is the scrollable extent.
func (b *Bar) ContentSize() int { return b.content }

// SetContentSize updates the extent and re-clamps the position.
func (b *Bar) SetContentSize(n int) {
	b.content = max(n, 0)
	b.SetPosition(b.position)
}

// Viewport is the visible extent.
func (b *Bar) Viewport() int { return b.viewport }

// SetViewport updates the visible extent and re-clamps the position.
func (b *Bar) SetViewport(n int) {
	b.viewport = max(n, 0)
	b.SetPosition(b.position)
}

// Max is the largest reachable position.
func (b *Bar) Max() int { return max(b.content-b.viewport, 0) }

// Scrollable reports whether the content exceeds the viewport.
func (b *Bar) Scrollable() bool { return b.content > b.viewport }

// Position is the offset of the viewport into the content.
func (b *Bar) Position() int { return b.position }

// SetPosition clamps p to [0, Max] and notifies listeners on change.
func (b *Bar) SetPosition(p int) {
	p = min(max(p, 0), b.Max())
	if p == b.position {
		return
	}
	b.position = p
	for _, fn := range b.listeners {
		fn(p)
	}
}

// thumb returns the thumb offset and length on a track of length cells.
func (b *Bar) thumb(length int) (int, int) {
	if length <= 0 {
		return 0, 0
	}
	if !b.Scrollable() || b.content == 0 {
		return 0, length
	}
	size := max(length*b.viewport/b.content, 1)
	room := length - size
	off := 0
	if m := b.Max(); m > 0 {
		off = room * b.position / m
	}
	return off, size
}

// PositionAt maps a click on the track cell to a scroll position.
func (b *Bar) PositionAt(cell, length int) int {
	if length <= 1 || !b.Scrollable() {
		return 0
	}
	cell = min(max(cell, 0), length-1)
	return b.Max() * cell / (length - 1)
}

// View draws the bar as a track of length cells: a column for vertical bars,
// a single row for horizontal ones.
func (b *Bar) View(length int) string {
	if length <= 0 {
		return ""
	}
	off, size := b.thumb(length)
	glyph, sep := "│", "\n"
	if b.orient == Horizontal {
		glyph, sep = "─", ""
	}
	parts := make([]string, length)
	for i := range parts {
		if b.Scrollable() && i >= off && i < off+size {
			parts[i] = b.Thumb.Render(" ")
		} else {
			parts[i] = b.Track.Render(glyph)
		}
	}
	return strings.Join(parts, sep)
}
