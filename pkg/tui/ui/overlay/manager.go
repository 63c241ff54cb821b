package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
)

// Placement controls overlay alignment and sizing. With Absolute set the
// overlay's top-left corner is placed at (MarginX, MarginY) and alignment is
// ignored.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
	Width      int
	Height     int
	Absolute   bool
}

// At places an overlay of the given size with its corner at x, y.
func At(x, y, width, height int) Placement {
	return Placement{MarginX: x, MarginY: y, Width: width, Height: height, Absolute: true}
}

// Compose overlays the foreground view atop the background while preserving
// background content outside the overlay bounds. Both views may carry ANSI
// styling.
func Compose(background string, width, height int, foreground string, placement Placement) string {
	bgLines := normalizeBackground(background, width, height)
	if foreground == "" {
		return strings.Join(bgLines, "\n")
	}

	fgLines := strings.Split(foreground, "\n")

	overlayWidth := placement.Width
	if overlayWidth <= 0 {
		for _, line := range fgLines {
			if w := lipgloss.Width(line); w > overlayWidth {
				overlayWidth = w
			}
		}
	}
	if overlayWidth <= 0 {
		return strings.Join(bgLines, "\n")
	}
	if overlayWidth > width {
		overlayWidth = width
	}

	overlayHeight := placement.Height
	if overlayHeight <= 0 {
		overlayHeight = len(fgLines)
	}
	if overlayHeight > height {
		overlayHeight = height
	}
	if overlayHeight <= 0 {
		return strings.Join(bgLines, "\n")
	}

	offsetX, offsetY := computeOffsets(width, height, overlayWidth, overlayHeight, placement)

	for row := 0; row < overlayHeight; row++ {
		destY := offsetY + row
		if destY < 0 || destY >= len(bgLines) {
			continue
		}
		fgLine := ""
		if row < len(fgLines) {
			fgLine = fgLines[row]
		}
		fgLine = padToWidth(fgLine, overlayWidth)

		baseLine := bgLines[destY]
		prefix := sliceWidth(baseLine, 0, offsetX)
		suffix := sliceWidth(baseLine, offsetX+overlayWidth, width)
		bgLines[destY] = prefix + fgLine + suffix
	}

	return strings.Join(bgLines, "\n")
}

func normalizeBackground(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padToWidth(lines[i], width)
	}
	return lines
}

func padToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	currWidth := lipgloss.Width(s)
	if currWidth > width {
		return sliceWidth(s, 0, width)
	}
	return s + strings.Repeat(" ", width-currWidth)
}

// sliceWidth returns the printable cells [start,end) of s. Escape sequences
// are kept wherever they occur so styles stay balanced, and a reset is
// appended when any were copied.
func sliceWidth(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}

	var b strings.Builder
	widthSeen := 0
	inEscape := false
	styled := false
	for _, r := range s {
		if r == ansi.Marker {
			inEscape = true
			styled = true
			b.WriteRune(r)
			continue
		}
		if inEscape {
			b.WriteRune(r)
			if ansi.IsTerminator(r) {
				inEscape = false
			}
			continue
		}
		rw := runewidth.RuneWidth(r)
		next := widthSeen + rw
		if widthSeen >= start && next <= end {
			b.WriteRune(r)
		} else if widthSeen < end && next > end && widthSeen >= start {
			b.WriteString(strings.Repeat(" ", end-widthSeen))
		} else if widthSeen < start && next > start && next <= end {
			b.WriteString(strings.Repeat(" ", next-start))
		}
		widthSeen = next
	}
	if styled {
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

func computeOffsets(width, height, overlayWidth, overlayHeight int, placement Placement) (int, int) {
	offsetX, offsetY := placement.MarginX, placement.MarginY
	if !placement.Absolute {
		h := placement.Horizontal
		if h == 0 {
			h = lipgloss.Center
		}
		v := placement.Vertical
		if v == 0 {
			v = lipgloss.Center
		}
		switch h {
		case lipgloss.Right:
			offsetX = width - overlayWidth - placement.MarginX
		case lipgloss.Center:
			offsetX = (width - overlayWidth) / 2
		}
		switch v {
		case lipgloss.Bottom:
			offsetY = height - overlayHeight - placement.MarginY
		case lipgloss.Center:
			offsetY = (height - overlayHeight) / 2
		}
	}
	offsetX = min(max(offsetX, 0), width-overlayWidth)
	offsetY = min(max(offsetY, 0), height-overlayHeight)
	return offsetX, offsetY
}
