// Package app assembles the option source, the select control and the
// Bubble Tea program.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/option"
	"github.com/atomicstack/tmux-popup-select/internal/source"
	"github.com/atomicstack/tmux-popup-select/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrNoSource is returned when no option source was configured and stdin is
// a terminal.
var ErrNoSource = errors.New("no options: pass -options, -tmux or pipe options on stdin")

// Config describes user-provided application options.
type Config struct {
	Multiple     bool
	MaxValues    int
	OptionValue  string
	OptionLabel  string
	DisplayValue string
	Placeholder  string
	Counter      bool
	Filter       bool
	OptionsPath  string
	Format       string
	Tmux         string
	SocketPath   string
	Refresh      time.Duration
	Values       []string
	EventsPath   string
	Width        int
	Height       int
	ShowFooter   bool
}

// Result is what the user settled on.
type Result struct {
	// Values holds the resolved value of each selected option, in order.
	Values  []string
	Options []any
	Aborted bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) (Result, error) {
	loader, err := buildLoader(cfg, os.Stdin, stdinIsTerminal())
	if err != nil {
		return Result{}, err
	}
	journal, err := openJournal(cfg.EventsPath)
	if err != nil {
		return Result{}, err
	}
	defer journal.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watcher := source.NewWatcher(ctx, loader, cfg.Refresh)
	defer watcher.Stop()

	model := ui.NewModel(uiConfig(cfg, watcher, journal))
	program := tea.NewProgram(model, programOptions()...)
	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Finish(model.ID(), 0, true)
		return Result{Aborted: true}, nil
	}
	if err != nil {
		return Result{}, err
	}
	done, ok := final.(*ui.Model)
	if !ok {
		done = model
	}
	res := resultFrom(done, resolver(cfg))
	events.App.Finish(done.ID(), len(res.Values), res.Aborted)
	return res, nil
}

func resolver(cfg Config) option.Resolver {
	return option.Resolver{ValueKey: cfg.OptionValue, LabelKey: cfg.OptionLabel}
}

func uiConfig(cfg Config, watcher *source.Watcher, journal *Journal) ui.Config {
	uc := ui.Config{
		Multiple:     cfg.Multiple,
		MaxValues:    cfg.MaxValues,
		Resolver:     resolver(cfg),
		Values:       cfg.Values,
		DisplayValue: cfg.DisplayValue,
		Placeholder:  cfg.Placeholder,
		Counter:      cfg.Counter,
		Filter:       cfg.Filter,
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		Watcher:      watcher,
	}
	if journal != nil {
		uc.Listener = journal.Record
	}
	return uc
}

// buildLoader picks the option source: tmux, an explicit file, or piped
// stdin.
func buildLoader(cfg Config, stdin io.Reader, stdinTTY bool) (source.Loader, error) {
	switch {
	case cfg.Tmux != "":
		socketPath, err := source.ResolveSocketPath(cfg.SocketPath)
		if err != nil {
			return nil, fmt.Errorf("resolve socket path: %w", err)
		}
		return source.Tmux{Socket: socketPath, Kind: cfg.Tmux}, nil
	case cfg.OptionsPath != "":
		return &source.File{Path: cfg.OptionsPath, Format: cfg.Format, Stdin: stdin}, nil
	case !stdinTTY:
		return &source.File{Path: source.StdinPath, Format: cfg.Format, Stdin: stdin}, nil
	}
	return nil, ErrNoSource
}

// programOptions renders to stderr when stdout is captured so the printed
// result stays clean.
func programOptions() []tea.ProgramOption {
	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		opts = append(opts, tea.WithOutput(os.Stderr))
	}
	return opts
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func resultFrom(m *ui.Model, r option.Resolver) Result {
	if m.Aborted() {
		return Result{Aborted: true}
	}
	selected := m.Selection()
	res := Result{Options: selected, Values: make([]string, 0, len(selected))}
	for _, opt := range selected {
		res.Values = append(res.Values, option.Stringify(r.Value(opt)))
	}
	return res
}
