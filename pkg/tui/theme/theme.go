package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"tableflip.dev/gridsheet/pkg/tui/surface"
)

// Theme centralizes the pens and Lip Gloss styles for the grid UI.
type Theme struct {
	// Name is "dark" or "light".
	Name   string
	Grid   GridTheme
	Status StatusTheme
	Editor EditorTheme
	Scroll ScrollTheme
}

// GridTheme holds the pens used when painting the sheet.
type GridTheme struct {
	Cell         surface.Pen
	Placeholder  surface.Pen
	Header       surface.Pen
	HeaderActive surface.Pen
	LineNo       surface.Pen
	LineNoActive surface.Pen
	Corner       surface.Pen
	Gridline     surface.Pen
	Selection    surface.Pen
	Anchor       surface.Pen
}

// StatusTheme styles the bottom status line.
type StatusTheme struct {
	Ref     lipgloss.Style
	Extent  lipgloss.Style
	Value   lipgloss.Style
	Message lipgloss.Style
	Error   lipgloss.Style
}

// EditorTheme styles the edit overlay.
type EditorTheme struct {
	Text   lipgloss.Style
	Prompt lipgloss.Style
}

// ScrollTheme styles scrollbar tracks and thumbs.
type ScrollTheme struct {
	Track lipgloss.Style
	Thumb lipgloss.Style
}

type palette struct {
	bg, fg, muted, band, accent, line, err string
}

var (
	dark = palette{
		bg: "#1c1c1c", fg: "#d0d0d0", muted: "#767676", band: "#303030",
		accent: "#5f87ff", line: "#3a3a3a", err: "#ff5f5f",
	}
	light = palette{
		bg: "#ffffff", fg: "#1c1c1c", muted: "#8a8a8a", band: "#e4e4e4",
		accent: "#005fd7", line: "#d0d0d0", err: "#d70000",
	}
)

// Default returns the built-in dark theme.
func Default() Theme { return build("dark", dark) }

// Light returns the built-in light theme.
func Light() Theme { return build("light", light) }

// Auto picks Default or Light from the terminal background.
func Auto() Theme {
	if termenv.HasDarkBackground() {
		return Default()
	}
	return Light()
}

// Tint blends accent into base by t in Lab space. Colours that cannot be
// converted fall back to accent.
func Tint(base, accent color.Color, t float64) color.Color {
	b, ok := colorful.MakeColor(base)
	if !ok {
		return accent
	}
	a, ok := colorful.MakeColor(accent)
	if !ok {
		return accent
	}
	return lipgloss.Color(b.BlendLab(a, t).Clamped().Hex())
}

func build(name string, p palette) Theme {
	fg := lipgloss.Color(p.fg)
	muted := lipgloss.Color(p.muted)
	band := lipgloss.Color(p.band)
	accent := lipgloss.Color(p.accent)
	bg := lipgloss.Color(p.bg)

	return Theme{
		Name: name,
		Grid: GridTheme{
			Cell:         surface.Pen{Fg: fg},
			Placeholder:  surface.Pen{Fg: muted},
			Header:       surface.Pen{Fg: fg, Bg: band, Bold: true},
			HeaderActive: surface.Pen{Fg: accent, Bg: band, Bold: true},
			LineNo:       surface.Pen{Fg: muted, Bg: band},
			LineNoActive: surface.Pen{Fg: accent, Bg: band, Bold: true},
			Corner:       surface.Pen{Bg: band},
			Gridline:     surface.Pen{Fg: lipgloss.Color(p.line)},
			Selection:    surface.Pen{Bg: Tint(bg, accent, 0.3)},
			Anchor:       surface.Pen{Bg: Tint(bg, accent, 0.55), Bold: true},
		},
		Status: StatusTheme{
			Ref:     lipgloss.NewStyle().Foreground(accent).Bold(true),
			Extent:  lipgloss.NewStyle().Foreground(muted),
			Value:   lipgloss.NewStyle().Foreground(fg),
			Message: lipgloss.NewStyle().Foreground(muted),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.err)).Bold(true),
		},
		Editor: EditorTheme{
			Text:   lipgloss.NewStyle().Foreground(fg).Background(band),
			Prompt: lipgloss.NewStyle().Foreground(accent),
		},
		Scroll: ScrollTheme{
			Track: lipgloss.NewStyle().Foreground(lipgloss.Color(p.line)),
			Thumb: lipgloss.NewStyle().Background(muted),
		},
	}
}
