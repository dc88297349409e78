package ui

import (
	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleFocusMsg(msg tea.Msg) tea.Cmd {
	if m.focused {
		return nil
	}
	m.focused = true
	events.Focus.Gained(m.id)
	m.bus.Publish(command.EventFocus, msg)
	return nil
}

func (m *Model) handleBlurMsg(msg tea.Msg) tea.Cmd {
	if !m.focused {
		return nil
	}
	m.focused = false
	events.Focus.Lost(m.id)
	m.bus.Publish(command.EventBlur, msg)
	m.menu.FocusOut(func() bool { return m.focused })
	return nil
}
