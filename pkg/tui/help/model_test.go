package help

import (
	"strings"
	"testing"
)

func TestRendersMarkdownTable(t *testing.T) {
	m := New("# Keys\n\n| Keys | Action |\n|---|---|\n| `F2` | edit the cell |\n", "dark", 60, 12)
	if err := m.Err(); err != nil {
		t.Fatalf("render: %v", err)
	}
	view := stripANSI(m.View())
	for _, want := range []string{"Keys", "F2", "edit the cell"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestMinimumSize(t *testing.T) {
	m := New("text", "", 5, 2)
	if w, h := m.Size(); w != 32 || h != 8 {
		t.Fatalf("size = %dx%d", w, h)
	}
}
