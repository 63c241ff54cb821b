package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/gridsheet/pkg/sheet"
	"tableflip.dev/gridsheet/pkg/tui/events"
	"tableflip.dev/gridsheet/pkg/tui/theme"
)

// status is the bottom line: sheet name, anchor reference, selection extent,
// anchor value and the last message.
type status struct {
	name    string
	ref     string
	extent  string
	value   string
	message string
	isErr   bool
}

func (s *status) noteSelection(msg events.SelectionChangedMsg) {
	span := msg.Range.Normalize()
	s.ref = sheet.Ref(msg.Anchor.Row, msg.Anchor.Col)
	s.extent = fmt.Sprintf("%d×%d", span.Rows(), span.Cols())
	s.value = msg.Value
}

func (s *status) say(text string) {
	s.message, s.isErr = text, false
}

func (s *status) fail(err error) {
	s.message, s.isErr = err.Error(), true
}

func (s *status) view(th theme.StatusTheme, width int) string {
	if width <= 0 {
		return ""
	}
	left := strings.Join([]string{
		th.Ref.Render(s.ref),
		th.Extent.Render(s.extent),
	}, " ")
	if s.name != "" {
		left = th.Extent.Render(s.name) + " " + left
	}

	msgStyle := th.Message
	if s.isErr {
		msgStyle = th.Error
	}
	right := ""
	if s.message != "" {
		right = msgStyle.Render(truncate.StringWithTail(s.message, uint(max(width/3, 1)), "…"))
	}

	room := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	value := ""
	if room > 0 {
		flat := strings.NewReplacer("\n", "↵", "\t", " ").Replace(s.value)
		value = th.Value.Render(truncate.StringWithTail(flat, uint(room), "…"))
	}

	line := left + " " + value
	gap := width - lipgloss.Width(line) - lipgloss.Width(right)
	if gap > 0 {
		line += strings.Repeat(" ", gap)
	}
	line += right
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}
