// Package surface is a terminal cell buffer exposing the small set of drawing
// primitives the grid needs: filled rectangles, box lines, aligned text,
// clipping and a selection highlight. One unit is one terminal cell.
package surface

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Rect is a cell rectangle. Zero or negative sizes are empty.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Align anchors text relative to the FillText position.
type Align int

const (
	// AlignLeft starts the text at the anchor.
	AlignLeft Align = iota
	// AlignCenter centers the text on the anchor.
	AlignCenter
	// AlignRight ends the text just before the anchor.
	AlignRight
)

// Pen carries the attributes applied to painted cells. A nil colour leaves
// the existing one in place when drawing text or highlights.
type Pen struct {
	Fg        color.Color
	Bg        color.Color
	Bold      bool
	Underline bool
}

// Style converts the pen to a lipgloss style.
func (p Pen) Style() lipgloss.Style {
	s := lipgloss.NewStyle()
	if p.Fg != nil {
		s = s.Foreground(p.Fg)
	}
	if p.Bg != nil {
		s = s.Background(p.Bg)
	}
	if p.Bold {
		s = s.Bold(true)
	}
	if p.Underline {
		s = s.Underline(true)
	}
	return s
}

func (p Pen) plain() bool {
	return p.Fg == nil && p.Bg == nil && !p.Bold && !p.Underline
}

type cell struct {
	glyph string
	pen   Pen
	// cont marks the second column of a double-width glyph.
	cont bool
}

// Surface is a fixed-size grid of styled cells.
type Surface struct {
	w, h  int
	cells []cell
	clips []Rect
}

// New allocates a blank surface.
func New(w, h int) *Surface {
	s := &Surface{}
	s.Resize(w, h)
	return s
}

// Resize reallocates the buffer and clears it. The clip stack is dropped.
func (s *Surface) Resize(w, h int) {
	s.w, s.h = max(w, 0), max(h, 0)
	s.cells = make([]cell, s.w*s.h)
	s.clips = s.clips[:0]
	s.Clear(Pen{})
}

// Size returns the buffer dimensions.
func (s *Surface) Size() (int, int) { return s.w, s.h }

// Bounds is the whole surface as a rectangle.
func (s *Surface) Bounds() Rect { return Rect{W: s.w, H: s.h} }

// Clear blanks every cell with pen.
func (s *Surface) Clear(pen Pen) {
	for i := range s.cells {
		s.cells[i] = cell{glyph: " ", pen: pen}
	}
}

// Clip restricts drawing to r intersected with the current clip. Calls nest;
// each Clip must be paired with Unclip.
func (s *Surface) Clip(r Rect) {
	s.clips = append(s.clips, s.clipRect().Intersect(r))
}

// Unclip pops the innermost clip rectangle.
func (s *Surface) Unclip() {
	if len(s.clips) > 0 {
		s.clips = s.clips[:len(s.clips)-1]
	}
}

func (s *Surface) clipRect() Rect {
	if len(s.clips) == 0 {
		return s.Bounds()
	}
	return s.clips[len(s.clips)-1]
}

func (s *Surface) at(x, y int) *cell {
	return &s.cells[y*s.w+x]
}

// put writes a glyph of width gw at x,y. Overwriting half of a double-width
// glyph blanks the other half.
func (s *Surface) put(x, y int, glyph string, gw int, pen Pen) {
	c := s.at(x, y)
	if c.cont && x > 0 {
		s.at(x-1, y).glyph = " "
	}
	if !c.cont && x+1 < s.w && s.at(x+1, y).cont {
		n := s.at(x+1, y)
		n.glyph, n.cont = " ", false
	}
	*c = cell{glyph: glyph, pen: pen}
	if gw == 2 && x+1 < s.w {
		n := s.at(x+1, y)
		if !n.cont && x+2 < s.w && s.at(x+2, y).cont {
			s.at(x+2, y).glyph, s.at(x+2, y).cont = " ", false
		}
		*n = cell{glyph: "", pen: pen, cont: true}
	}
}

// FillRect paints every cell of r with blanks in pen.
func (s *Surface) FillRect(r Rect, pen Pen) {
	r = r.Intersect(s.clipRect())
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.put(x, y, " ", 1, pen)
		}
	}
}

// Highlight recolours r without touching glyphs. Nil pen colours keep the
// cell's existing colour.
func (s *Surface) Highlight(r Rect, pen Pen) {
	r = r.Intersect(s.clipRect())
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c := s.at(x, y)
			c.pen = overlay(c.pen, pen)
		}
	}
}

func overlay(base, top Pen) Pen {
	if top.Fg != nil {
		base.Fg = top.Fg
	}
	if top.Bg != nil {
		base.Bg = top.Bg
	}
	base.Bold = base.Bold || top.Bold
	base.Underline = base.Underline || top.Underline
	return base
}

// Line draws straight segments through points. Segments must be horizontal
// or vertical; diagonal segments are skipped. Crossing lines are joined.
func (s *Surface) Line(pen Pen, points ...Point) {
	clip := s.clipRect()
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		switch {
		case a.Y == b.Y:
			for x := min(a.X, b.X); x <= max(a.X, b.X); x++ {
				s.stroke(clip, x, a.Y, '─', pen)
			}
		case a.X == b.X:
			for y := min(a.Y, b.Y); y <= max(a.Y, b.Y); y++ {
				s.stroke(clip, a.X, y, '│', pen)
			}
		}
	}
}

func (s *Surface) stroke(clip Rect, x, y int, r rune, pen Pen) {
	if !clip.Contains(Point{X: x, Y: y}) {
		return
	}
	c := s.at(x, y)
	glyph := string(r)
	if (c.glyph == "─" && r == '│') || (c.glyph == "│" && r == '─') || c.glyph == "┼" {
		glyph = "┼"
	}
	s.put(x, y, glyph, 1, overlay(c.pen, pen))
}

// MeasureText returns the display width of text as FillText would draw it.
func MeasureText(text string) int {
	return runewidth.StringWidth(flatten(text))
}

// MeasureText is the method form of the package function.
func (s *Surface) MeasureText(text string) int { return MeasureText(text) }

func flatten(text string) string {
	if !strings.ContainsAny(text, "\r\n\t") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "↵")
	return strings.NewReplacer("\n", "↵", "\r", "↵", "\t", " ").Replace(text)
}

// FillText draws a single line of text anchored at `at`. Embedded newlines
// are shown as ↵. The optional clip further restricts drawing. Nil pen
// colours keep whatever is underneath.
func (s *Surface) FillText(text string, at Point, align Align, pen Pen, clip *Rect) {
	if at.Y < 0 || at.Y >= s.h {
		return
	}
	text = flatten(text)
	width := runewidth.StringWidth(text)
	x := at.X
	switch align {
	case AlignCenter:
		x -= width / 2
	case AlignRight:
		x -= width
	}

	bounds := s.clipRect()
	if clip != nil {
		bounds = bounds.Intersect(*clip)
	}
	for _, r := range text {
		gw := runewidth.RuneWidth(r)
		if gw == 0 {
			continue
		}
		p := Point{X: x, Y: at.Y}
		if bounds.Contains(p) {
			if gw == 2 && !bounds.Contains(Point{X: x + 1, Y: at.Y}) {
				s.put(x, at.Y, " ", 1, overlay(s.at(x, at.Y).pen, pen))
			} else {
				s.put(x, at.Y, string(r), gw, overlay(s.at(x, at.Y).pen, pen))
			}
		}
		x += gw
		if x >= bounds.X+bounds.W {
			break
		}
	}
}

// Glyph returns the glyph at x,y, or "" outside the surface.
func (s *Surface) Glyph(x, y int) string {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return ""
	}
	return s.at(x, y).glyph
}

// PenAt returns the pen at x,y.
func (s *Surface) PenAt(x, y int) Pen {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return Pen{}
	}
	return s.at(x, y).pen
}

// Render returns the buffer as styled lines joined by newlines. Adjacent
// cells sharing a pen are rendered as one run.
func (s *Surface) Render() string {
	var b strings.Builder
	var run strings.Builder
	for y := 0; y < s.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var cur Pen
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur.plain() {
				b.WriteString(run.String())
			} else {
				b.WriteString(cur.Style().Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < s.w; x++ {
			c := s.at(x, y)
			if c.cont {
				continue
			}
			if c.pen != cur {
				flush()
				cur = c.pen
			}
			run.WriteString(c.glyph)
		}
		flush()
	}
	return b.String()
}

// PlainText returns the buffer without styling, one line per row.
func (s *Surface) PlainText() string {
	var b strings.Builder
	for y := 0; y < s.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < s.w; x++ {
			b.WriteString(s.at(x, y).glyph)
		}
	}
	return b.String()
}
