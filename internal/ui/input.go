package ui

import (
	"unicode"

	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.list.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// editFilter applies edit and, when the query changed, restarts the menu
// session over the new matches.
func (m *Model) editFilter(edit func() bool) bool {
	before := m.list.FilterCursorPos()
	query := m.list.Query()
	if !edit() {
		return false
	}
	m.noteFilterCursorChange(before)
	m.errMsg = ""
	if m.list.Query() != query {
		m.filterChanged()
	}
	return true
}

func (m *Model) filterChanged() {
	m.viewport.Reset()
	if !m.menu.IsOpen() {
		m.menu.Open()
		return
	}
	m.nav.Reset()
	m.feed.Reset()
}

func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	l := m.list
	switch msg.String() {
	case "ctrl+u":
		if !m.editFilter(l.ClearFilter) {
			return false, nil
		}
		events.Filter.Cleared(m.id)
		return true, nil
	case "ctrl+w":
		if !m.editFilter(l.DeleteFilterWordBackward) {
			return false, nil
		}
		events.Filter.WordBackspace(m.id, l.Filter)
		return true, nil
	case "ctrl+a":
		return m.moveFilterCursor(l.MoveFilterCursorStart), nil
	case "ctrl+e":
		return m.moveFilterCursor(l.MoveFilterCursorEnd), nil
	case "alt+b":
		return m.moveFilterCursor(l.MoveFilterCursorWordBackward), nil
	case "alt+f":
		return m.moveFilterCursor(l.MoveFilterCursorWordForward), nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !m.editFilter(l.DeleteFilterRuneBackward) {
			return false, nil
		}
		events.Filter.Backspace(m.id, l.Filter)
		return true, nil
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		return m.appendToFilter(string(msg.Runes)), nil
	case tea.KeySpace:
		return m.appendToFilter(" "), nil
	case tea.KeyLeft:
		return m.moveFilterCursor(l.MoveFilterCursorRuneBackward), nil
	case tea.KeyRight:
		return m.moveFilterCursor(l.MoveFilterCursorRuneForward), nil
	}
	return false, nil
}

func (m *Model) appendToFilter(text string) bool {
	if text == "" {
		return false
	}
	if !m.editFilter(func() bool { return m.list.InsertFilterText(text) }) {
		return false
	}
	events.Filter.Append(m.id, m.list.Filter)
	return true
}

func (m *Model) moveFilterCursor(move func() bool) bool {
	before := m.list.FilterCursorPos()
	if !move() {
		return false
	}
	m.noteFilterCursorChange(before)
	events.Filter.Cursor(m.id, m.list.FilterCursor)
	return true
}

func (m *Model) filterPrompt() string {
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.list.Filter
	if text == "" {
		runes := []rune("(type to filter)")
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos := m.list.FilterCursorPos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
