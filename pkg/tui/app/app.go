// Package app is the root Bubble Tea model: it hosts the grid, a status line,
// the key reference overlay and the optional event log, and reloads the sheet
// when its source file changes.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/gridsheet/pkg/clipboard"
	"tableflip.dev/gridsheet/pkg/config"
	"tableflip.dev/gridsheet/pkg/sheet"
	"tableflip.dev/gridsheet/pkg/source"
	"tableflip.dev/gridsheet/pkg/tui/eventlog"
	"tableflip.dev/gridsheet/pkg/tui/events"
	"tableflip.dev/gridsheet/pkg/tui/help"
	"tableflip.dev/gridsheet/pkg/tui/table"
	"tableflip.dev/gridsheet/pkg/tui/theme"
	"tableflip.dev/gridsheet/pkg/tui/ui/overlay"
)

// Options configure the root model.
type Options struct {
	Sheet     *sheet.Sheet
	Config    config.Config
	Theme     theme.Theme
	Clipboard clipboard.Clipboard

	// Path and SheetOptions are used to reload the sheet when Changes fires.
	Path         string
	SheetOptions sheet.Options
	Changes      <-chan source.Event

	// EventLog starts with the event log visible.
	EventLog bool
	DebugLog io.Writer

	// InputTTY reads keys from the terminal when stdin carries the sheet.
	InputTTY bool
}

// Model composes the grid with its status line and overlays.
type Model struct {
	opts  Options
	th    theme.Theme
	sheet *sheet.Sheet

	table  *table.Model
	status status

	help     *help.Model
	helpOpen bool

	log     *eventlog.Model
	logOpen bool

	width, height int
	debugLog      io.Writer
}

// New constructs a root model for opts.Sheet.
func New(opts Options) *Model {
	if opts.Sheet == nil {
		opts.Sheet = sheet.New("", nil, nil)
	}
	if opts.Theme.Name == "" {
		opts.Theme = theme.Default()
	}
	cfg := opts.Config
	th := opts.Theme
	t := table.New(opts.Sheet.DataSet(cfg.DataSetOptions()), table.Options{
		ID:           "grid",
		HeaderHeight: cfg.HeaderHeight,
		WheelStep:    cfg.WheelStep,
		Throttle:     cfg.Throttle,
		DoubleClick:  cfg.DoubleClick,
		Clipboard:    opts.Clipboard,
		Theme:        &th,
	})
	if opts.DebugLog != nil {
		t.SetDebugWriter(opts.DebugLog)
	}
	m := &Model{
		opts:     opts,
		th:       th,
		sheet:    opts.Sheet,
		table:    t,
		log:      eventlog.New(400),
		logOpen:  opts.EventLog,
		debugLog: opts.DebugLog,
	}
	m.status.name = opts.Sheet.Name
	m.status.noteSelection(events.SelectionChangedMsg{Range: t.DataSet().Selected()})
	return m
}

// Table exposes the hosted grid.
func (m *Model) Table() *table.Model { return m.table }

func (m *Model) logf(format string, args ...any) {
	if m.debugLog == nil {
		return
	}
	fmt.Fprintf(m.debugLog, "%s app."+format+"\n",
		append([]any{time.Now().Format("2006-01-02T15:04:05")}, args...)...)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.table.Focus(), m.table.Init(), waitForChange(m.opts.Changes))
}

// waitForChange blocks on the next source event.
func waitForChange(ch <-chan source.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return events.SourceChangedMsg{Path: ev.Path, Err: ev.Err}
	}
}

// Update routes messages to the grid and overlays.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.logOpen {
		m.log.Note(msg)
	}

	var cmds []tea.Cmd
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.layout()
		return m, nil

	case tea.KeyPressMsg:
		switch v.String() {
		case "ctrl+q":
			return m, tea.Quit
		case "f1":
			return m, m.toggleHelp()
		case "f12":
			m.logOpen = !m.logOpen
			m.layout()
			return m, nil
		}
		if m.helpOpen {
			if v.String() == "esc" || v.String() == "q" {
				return m, m.toggleHelp()
			}
			return m, m.help.Update(msg)
		}

	case tea.MouseWheelMsg:
		if m.helpOpen {
			return m, m.help.Update(msg)
		}

	case events.SelectionChangedMsg:
		m.status.noteSelection(v)
		return m, nil

	case events.DataChangedMsg:
		if v.Action != events.ChangeCells {
			m.status.say(fmt.Sprintf("%s: %d rows", v.Action, v.Rows-1))
		}
		return m, nil

	case events.ClipboardWrittenMsg:
		m.status.say(fmt.Sprintf("copied %d×%d", v.Rows, v.Cols))
		return m, nil

	case events.ClipboardErrorMsg:
		m.status.fail(v)

	case events.StatusMsg:
		m.status.say(v.Text)
		return m, nil

	case events.SourceChangedMsg:
		cmds = append(cmds, m.reload(v), waitForChange(m.opts.Changes))
		return m, tea.Batch(cmds...)
	}

	if m.helpOpen {
		return m, nil
	}
	_, cmd := m.table.Update(msg)
	return m, cmd
}

// reload re-reads the source after a change on disk. A failed read keeps
// the current grid and reports the error.
func (m *Model) reload(ev events.SourceChangedMsg) tea.Cmd {
	if ev.Err != nil {
		m.status.fail(fmt.Errorf("watch: %w", ev.Err))
		return nil
	}
	path := m.opts.Path
	if path == "" {
		path = ev.Path
	}
	s, err := source.Load(path, m.opts.SheetOptions)
	if err != nil {
		m.status.fail(err)
		return nil
	}
	m.logf("reload path=%s rows=%d", path, len(s.Data))
	ds := m.table.DataSet()
	ds.SetHeader(s.Header)
	m.sheet.Header, m.sheet.Data = s.Header, s.Data
	m.status.say("reloaded " + s.Name)
	return m.table.Reload(s.Data)
}

func (m *Model) toggleHelp() tea.Cmd {
	if m.helpOpen {
		m.helpOpen = false
		return m.table.Focus()
	}
	if m.help == nil {
		m.help = help.New(table.Markdown("gridsheet keys", Bindings()), m.th.Name, m.helpWidth(), m.helpHeight())
	}
	m.helpOpen = true
	return m.table.Blur()
}

var appBindings = []table.Binding{
	{Keys: "F1", Action: "toggle the key reference"},
	{Keys: "F12", Action: "toggle the event log"},
	{Keys: "ctrl+q", Action: "quit"},
}

// Bindings lists the grid bindings followed by the window-level ones.
func Bindings() []table.Binding {
	return append(table.Bindings(), appBindings...)
}

func (m *Model) helpWidth() int  { return max(m.width*9/10, 1) }
func (m *Model) helpHeight() int { return max((m.height-1)*9/10, 1) }

func (m *Model) logHeight() int {
	if !m.logOpen {
		return 0
	}
	return min(max(m.height/3, 3), max(m.height-4, 0))
}

func (m *Model) layout() {
	gridH := max(m.height-1-m.logHeight(), 0)
	m.table.SetSize(m.width, gridH)
	if m.logOpen {
		m.log.SetSize(m.width, m.logHeight())
	}
	if m.help != nil {
		m.help.SetSize(m.helpWidth(), m.helpHeight())
	}
}

// View renders the grid, optional event log and status line. The cursor is
// only shown while a cell is being edited.
func (m *Model) View() (string, *tea.Cursor) {
	if m.width <= 0 || m.height <= 0 {
		return "", nil
	}
	body := m.table.View()
	cursor := m.table.Cursor()
	if m.logOpen && m.logHeight() > 0 {
		body += "\n" + m.log.View()
	}
	bodyH := max(m.height-1, 0)
	if m.helpOpen && m.help != nil {
		w, h := m.help.Size()
		body = overlay.Compose(body, m.width, bodyH, m.help.View(), overlay.Placement{
			Horizontal: 0.5,
			Vertical:   0.5,
			Width:      w,
			Height:     h,
		})
		cursor = nil
	}
	return body + "\n" + m.status.view(m.th.Status, m.width), cursor
}

// Run launches the program and blocks until it exits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	popts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}
	if opts.InputTTY {
		popts = append(popts, tea.WithInputTTY())
	}
	m := New(opts)
	defer m.table.Close()
	p := tea.NewProgram(m, popts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
