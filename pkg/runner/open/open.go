// Package open runs the interactive grid on a file, on piped stdin or on an
// empty sheet.
package open

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/mattn/go-isatty"

	"tableflip.dev/gridsheet/pkg/clipboard"
	"tableflip.dev/gridsheet/pkg/config"
	"tableflip.dev/gridsheet/pkg/sheet"
	"tableflip.dev/gridsheet/pkg/source"
	"tableflip.dev/gridsheet/pkg/tui/app"
	"tableflip.dev/gridsheet/pkg/tui/theme"
)

// emptyColumns is the width of a new sheet when --columns is not given.
const emptyColumns = 8

// ErrNoTerminal is returned when stdout is not a terminal.
var ErrNoTerminal = errors.New("open: stdout is not a terminal")

// Open starts the grid.
type Open struct {
	// Path is the file to open. "-" reads stdin; "" reads stdin when it is
	// piped and starts an empty sheet otherwise.
	Path   string
	Sheet  sheet.Options
	Config config.Config

	Watch    bool
	Debug    bool
	EventLog bool
	Theme    string

	// Stdin and the terminal checks are replaced in tests.
	Stdin      io.Reader
	isTerminal func(fd uintptr) bool
}

func terminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Do runs the grid until the user quits or ctx is cancelled.
func (o *Open) Do(ctx context.Context) error {
	if o.isTerminal == nil {
		o.isTerminal = terminal
	}
	if !o.isTerminal(os.Stdout.Fd()) {
		return ErrNoTerminal
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts, cleanup, err := o.prepare(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	return app.Run(ctx, opts)
}

// prepare loads the sheet and wires the clipboard, watcher and debug log.
func (o *Open) prepare(ctx context.Context) (app.Options, func(), error) {
	if o.isTerminal == nil {
		o.isTerminal = terminal
	}
	var closers []io.Closer
	cleanup := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	opts := app.Options{
		Config:       o.Config,
		Theme:        o.theme(),
		SheetOptions: o.Sheet,
		EventLog:     o.EventLog,
	}

	if o.Debug || o.Config.LogFile != "" {
		path := o.Config.LogFile
		if path == "" {
			path = "gridsheet.log"
		}
		f, err := tea.LogToFile(path, "gridsheet")
		if err != nil {
			return app.Options{}, cleanup, fmt.Errorf("open: debug log: %w", err)
		}
		closers = append(closers, f)
		opts.DebugLog = f
	}

	s, fromStdin, err := o.load()
	if err != nil {
		cleanup()
		return app.Options{}, func() {}, err
	}
	opts.Sheet = s
	opts.InputTTY = fromStdin

	if o.Watch {
		if o.Path == "" || fromStdin {
			cleanup()
			return app.Options{}, func() {}, errors.New("open: --watch needs a file")
		}
		ch, err := source.Watch(ctx, o.Path, o.Config.Throttle)
		if err != nil {
			cleanup()
			return app.Options{}, func() {}, err
		}
		opts.Path = o.Path
		opts.Changes = ch
	}

	opts.Clipboard = o.clipboard(opts.DebugLog)
	return opts, cleanup, nil
}

func (o *Open) load() (*sheet.Sheet, bool, error) {
	switch {
	case o.Path == "-" || (o.Path == "" && o.stdinPiped()):
		in := o.Stdin
		if in == nil {
			in = os.Stdin
		}
		s, err := sheet.Read("stdin", in, o.Sheet)
		return s, true, err
	case o.Path == "":
		so := o.Sheet
		if so.Columns == 0 {
			so.Columns = emptyColumns
		}
		return sheet.FromRecords("", nil, so), false, nil
	default:
		s, err := source.Load(o.Path, o.Sheet)
		return s, false, err
	}
}

func (o *Open) stdinPiped() bool {
	if o.Stdin != nil {
		return true
	}
	return !o.isTerminal(os.Stdin.Fd())
}

// clipboard chains the system clipboard with the clip history. Without a
// usable history copies still land in memory for the session.
func (o *Open) clipboard(debug io.Writer) clipboard.Clipboard {
	hist, err := clipboard.OpenHistory(o.Config.ClipStore, o.Config.ClipLimit)
	if err != nil {
		log.Printf("open: clip history disabled: %v", err)
		return clipboard.Chain{clipboard.System{}, &clipboard.Memory{}}
	}
	if debug != nil {
		hist.SetDebugWriter(debug)
	}
	return clipboard.Chain{clipboard.System{}, hist}
}

func (o *Open) theme() theme.Theme {
	switch o.Theme {
	case "dark":
		return theme.Default()
	case "light":
		return theme.Light()
	default:
		return theme.Auto()
	}
}
