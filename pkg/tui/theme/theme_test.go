package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

func TestTintBlendsTowardAccent(t *testing.T) {
	base := lipgloss.Color("#000000")
	accent := lipgloss.Color("#ffffff")

	got, ok := colorful.MakeColor(Tint(base, accent, 0.5))
	if !ok {
		t.Fatalf("tint is not convertible")
	}
	l, _, _ := got.Lab()
	if l < 0.4 || l > 0.6 {
		t.Fatalf("lightness = %.2f, want about half way", l)
	}

	same, _ := colorful.MakeColor(Tint(base, accent, 0))
	if same.Hex() != "#000000" {
		t.Fatalf("zero tint = %s", same.Hex())
	}
}

func TestThemesDifferInSelection(t *testing.T) {
	d, l := Default(), Light()
	if d.Grid.Selection.Bg == nil || l.Grid.Selection.Bg == nil {
		t.Fatalf("selection tint missing")
	}
	if d.Grid.Selection == l.Grid.Selection {
		t.Fatalf("dark and light selection pens are identical")
	}
}
