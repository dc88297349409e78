package ui

import (
	"github.com/atomicstack/tmux-popup-select/internal/logging"
	"github.com/atomicstack/tmux-popup-select/internal/source"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForSource(w *source.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return sourceDoneMsg{}
		}
		return sourceEventMsg{event: evt}
	}
}

type sourceEventMsg struct {
	event source.Event
}

type sourceDoneMsg struct{}

func (m *Model) handleSourceEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(sourceEventMsg)
	if !ok {
		return nil
	}
	m.applySourceEvent(eventMsg.event)
	if m.cfg.Watcher != nil {
		return waitForSource(m.cfg.Watcher)
	}
	return nil
}

func (m *Model) handleSourceDoneMsg(tea.Msg) tea.Cmd {
	m.cfg.Watcher = nil
	m.loading = false
	return nil
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	if !m.loading {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

// applySourceEvent installs a freshly loaded option list. A failed load
// keeps the previous list.
func (m *Model) applySourceEvent(evt source.Event) {
	m.loading = false
	if evt.Err != nil {
		m.errMsg = evt.Err.Error()
		logging.Error(evt.Err)
		return
	}
	m.errMsg = ""
	m.SetOptions(evt.Options)
}

// SetOptions replaces the full option list. The selection is left alone.
func (m *Model) SetOptions(options []any) {
	m.list.Update(options)
	m.applyPendingValues()
	if m.menu.IsOpen() {
		if m.list.Empty() && m.cfg.Placeholder == "" {
			m.menu.Close()
		} else if m.nav.Index() >= len(m.visibleEntries()) {
			m.nav.Reset()
		}
	}
	m.followFocus()
}
