package ui

import (
	"reflect"

	"github.com/atomicstack/tmux-popup-select/internal/option"
	"github.com/atomicstack/tmux-popup-select/internal/selection"
	"github.com/atomicstack/tmux-popup-select/internal/source"
	"github.com/atomicstack/tmux-popup-select/internal/theme"
	"github.com/atomicstack/tmux-popup-select/internal/ui/command"
	uistate "github.com/atomicstack/tmux-popup-select/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Config describes one select control.
type Config struct {
	Multiple  bool
	MaxValues int
	Resolver  option.Resolver
	Equal     option.Equal
	// Options is the initial full option list.
	Options []any
	// Values selects options by resolved value once options are known.
	Values []string
	// DisplayValue overrides the selection text on the display row.
	DisplayValue string
	// Placeholder is shown in an open menu that has no options.
	Placeholder string
	Counter     bool
	Filter      bool
	Width       int
	Height      int
	ShowFooter  bool
	Watcher     *source.Watcher
	Listener    command.Listener
	// Observer reports pointer activity outside the control. The model
	// feeds its own observer from mouse events when nil.
	Observer uistate.OutsideObserver
}

// Model is the parent controller of the select control. It routes Bubble Tea
// messages to the selection, menu, keyboard and feed components and renders
// their state.
type Model struct {
	id  string
	cfg Config

	list      *uistate.List
	selection *selection.Model
	nav       *uistate.Navigator
	feed      *uistate.Feed
	menu      *uistate.Menu
	keyboard  *uistate.Keyboard
	viewport  uistate.Viewport
	queue     uistate.Queue
	bus       *command.Bus
	pointer   *pointerObserver

	pendingValues []string
	focused       bool
	loading       bool
	spinner       spinner.Model
	errMsg        string
	done          bool
	aborted       bool

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	keys              keyMap
	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wires the components of a select control.
func NewModel(cfg Config) *Model {
	m := &Model{
		id:            uuid.NewString(),
		cfg:           cfg,
		pendingValues: append([]string(nil), cfg.Values...),
		focused:       true,
		keys:          defaultKeyMap(),
	}
	m.list = uistate.NewList(cfg.Resolver, cfg.Options)
	m.nav = uistate.NewNavigator(m.id)
	m.feed = uistate.NewFeed(m.queue.Defer, m.id)
	m.menu = uistate.NewMenu(m.nav, m.feed, uistate.MenuConfig{
		HasOptions:  func() bool { return !m.list.Empty() },
		Placeholder: cfg.Placeholder != "",
		Defer:       m.queue.Defer,
		Trace:       m.id,
	})
	m.selection = selection.New(selection.Config{
		Multiple:  cfg.Multiple,
		MaxValues: cfg.MaxValues,
		Equal:     cfg.Equal,
		Listener:  m.publishSelection,
		Menu:      m.menu,
		Trace:     m.id,
	}, nil)
	m.keyboard = uistate.NewKeyboard(m.menu, m.nav, m.selection, m.visibleEntries, m.id)
	m.bus = command.New(m.id, cfg.Listener)

	observer := cfg.Observer
	if observer == nil {
		m.pointer = &pointerObserver{}
		observer = m.pointer
	}
	m.menu.Observe(observer, uistate.RegionFunc(m.insideControl))

	if cfg.Watcher != nil {
		m.loading = true
	}
	m.applyPendingValues()

	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	if styles.Loading != nil {
		s.Style = *styles.Loading
	}
	m.spinner = s
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// ID returns the control instance id used in trace logs.
func (m *Model) ID() string {
	return m.id
}

// Selection returns the current selection as a sequence.
func (m *Model) Selection() []any {
	return m.selection.Values()
}

// Value returns the current selection in its external shape: an option or
// nil in single mode, a slice in multiple mode.
func (m *Model) Value() any {
	return m.selection.Value()
}

// Aborted reports whether the user quit without accepting the selection.
func (m *Model) Aborted() bool {
	return m.aborted
}

// Done reports whether the program has been asked to quit.
func (m *Model) Done() bool {
	return m.done
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.cfg.Watcher != nil {
		cmds = append(cmds, waitForSource(m.cfg.Watcher), m.spinner.Tick)
	}
	if m.cfg.Filter {
		if cmd := m.filterCursor.Focus(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if m.cfg.Filter {
		if cmd := m.updateFilterCursorModel(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.FocusMsg{}):      m.handleFocusMsg,
		reflect.TypeOf(tea.BlurMsg{}):       m.handleBlurMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
		reflect.TypeOf(sourceEventMsg{}):    m.handleSourceEventMsg,
		reflect.TypeOf(sourceDoneMsg{}):     m.handleSourceDoneMsg,
		reflect.TypeOf(drainMsg{}):          m.handleDrainMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate appends the outbound event delivery and the deferred-work
// drain to the commands produced by the handler.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if cmd := m.bus.Flush(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.queue.Pending() {
		cmds = append(cmds, drainCmd)
	}
	if m.done {
		m.menu.Teardown()
		if m.cfg.Watcher != nil {
			m.cfg.Watcher.Stop()
		}
		cmds = append(cmds, tea.Quit)
	}
	if len(cmds) == 0 {
		return nil
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// drainMsg runs deferred work. Bubble Tea renders the view after each
// update, so work drained here observes the settled state.
type drainMsg struct{}

func drainCmd() tea.Msg {
	return drainMsg{}
}

func (m *Model) handleDrainMsg(tea.Msg) tea.Cmd {
	m.queue.Drain()
	m.followFocus()
	return nil
}

func (m *Model) publishSelection(evt selection.Event) {
	m.bus.Publish(evt.Name(), evt)
}

// visibleEntries returns the options revealed by the feed.
func (m *Model) visibleEntries() []uistate.Entry {
	return m.list.Window(m.feed.Window(len(m.list.Items)))
}

// isSelected reports whether any selected entry resolves to the same value
// as opt.
func (m *Model) isSelected(opt any) bool {
	return m.selection.Contains(opt, m.cfg.Resolver.Value)
}

// controlFocused reports whether the control counts as focused.
func (m *Model) controlFocused() bool {
	return m.focused || m.menu.IsOpen()
}

func (m *Model) applyPendingValues() {
	if len(m.pendingValues) == 0 || m.list.Empty() {
		return
	}
	wanted := make(map[string]struct{}, len(m.pendingValues))
	for _, v := range m.pendingValues {
		wanted[v] = struct{}{}
	}
	var picked []any
	for _, entry := range m.list.Full {
		if _, ok := wanted[entry.Key]; ok {
			picked = append(picked, entry.Option)
		}
	}
	m.pendingValues = nil
	if len(picked) == 0 {
		return
	}
	if m.cfg.Multiple {
		if max := m.selection.MaxValues(); max > 0 && len(picked) > max {
			picked = picked[:max]
		}
		m.selection.Reset(picked)
		return
	}
	m.selection.Reset(picked[0])
}
