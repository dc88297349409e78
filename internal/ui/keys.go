package ui

import (
	uistate "github.com/atomicstack/tmux-popup-select/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Confirm  key.Binding
	Escape   key.Binding
	Previous key.Binding
	Next     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Abort    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "toggle")),
		Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close/accept")),
		Previous: key.NewBinding(key.WithKeys("up", "ctrl+p", "shift+tab"), key.WithHelp("↑", "previous")),
		Next:     key.NewBinding(key.WithKeys("down", "ctrl+n", "tab"), key.WithHelp("↓", "next")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "scroll down")),
		Abort:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "abort")),
	}
}

// navKey maps a key press onto the keyboard state machine's keys.
func (k keyMap) navKey(msg tea.KeyMsg) uistate.Key {
	switch {
	case key.Matches(msg, k.Confirm):
		return uistate.KeyConfirm
	case key.Matches(msg, k.Escape):
		return uistate.KeyEscape
	case key.Matches(msg, k.Previous):
		return uistate.KeyPrevious
	case key.Matches(msg, k.Next):
		return uistate.KeyNext
	}
	return uistate.KeyOther
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.Confirm, k.Escape, k.Abort}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Abort):
		m.aborted = true
		m.done = true
		return nil
	case key.Matches(keyMsg, m.keys.Escape) && !m.menu.IsOpen():
		m.done = true
		return nil
	case key.Matches(keyMsg, m.keys.PageDown):
		m.scrollRows(m.pageRows())
		return nil
	case key.Matches(keyMsg, m.keys.PageUp):
		m.scrollRows(-m.pageRows())
		return nil
	}
	if m.keyboard.Handle(m.keys.navKey(keyMsg)) {
		m.followFocus()
		return nil
	}
	if m.cfg.Filter {
		if handled, cmd := m.handleTextInput(keyMsg); handled {
			return cmd
		}
	}
	return nil
}

// followFocus keeps the focused option inside the viewport and signals the
// feed when the viewport reaches the end of the revealed options.
func (m *Model) followFocus() {
	if !m.menu.IsOpen() {
		m.viewport.Reset()
		return
	}
	visible := len(m.visibleEntries())
	before := m.viewport.Offset
	m.viewport.Follow(m.nav.Index(), visible, m.optionRows())
	if m.viewport.Offset != before || (visible > 0 && m.nav.Index() == visible-1) {
		m.signalScroll()
	}
}

func (m *Model) scrollRows(delta int) {
	if !m.menu.IsOpen() || delta == 0 {
		return
	}
	m.viewport.Scroll(delta, len(m.visibleEntries()), m.optionRows())
	m.signalScroll()
}

// signalScroll hands the feed the distance between the bottom of the
// revealed options and the bottom of the viewport.
func (m *Model) signalScroll() {
	total := len(m.list.Items)
	window := m.feed.Window(total)
	distance := m.viewport.Below(window, m.optionRows()) * rowUnits
	m.feed.Scroll(distance, total)
}

func (m *Model) pageRows() int {
	if rows := m.optionRows(); rows > 0 {
		return rows
	}
	return uistate.WindowStep
}
