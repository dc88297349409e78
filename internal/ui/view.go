package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	displayRow     = 0
	emptySelection = "(nothing selected)"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// OptionScope describes one rendered option row.
type OptionScope struct {
	// Index addresses the option among the visible options.
	Index    int
	Option   any
	Label    string
	Selected bool
	Focused  bool
	Disabled bool
}

// Scopes returns the option rows currently inside the viewport.
func (m *Model) Scopes() []OptionScope {
	if !m.menu.IsOpen() {
		return nil
	}
	visible := m.visibleEntries()
	start, end := m.viewportRange(len(visible))
	scopes := make([]OptionScope, 0, end-start)
	for i := start; i < end; i++ {
		entry := visible[i]
		scopes = append(scopes, OptionScope{
			Index:    i,
			Option:   entry.Option,
			Label:    entry.Label,
			Selected: m.isSelected(entry.Option),
			Focused:  i == m.nav.Index(),
			Disabled: entry.Disabled,
		})
	}
	return scopes
}

// viewLayout records which screen rows the control occupies.
type viewLayout struct {
	optionsTop  int
	optionLines int
	empty       bool
	rows        int
}

func (m *Model) layout() viewLayout {
	lay := viewLayout{optionsTop: displayRow + 1, rows: 1}
	if m.menu.IsOpen() {
		visible := len(m.visibleEntries())
		if visible == 0 {
			lay.empty = true
			lay.optionLines = 1
		} else {
			start, end := m.viewportRange(visible)
			lay.optionLines = end - start
		}
	}
	lay.rows += lay.optionLines
	lay.rows += m.chromeRows()
	return lay
}

// chromeRows counts the rows below the options.
func (m *Model) chromeRows() int {
	rows := 0
	if m.errMsg != "" {
		rows++
	}
	if m.cfg.ShowFooter {
		rows += 2
	}
	if m.cfg.Filter {
		rows++
	}
	return rows
}

// optionRows returns how many option rows fit on screen, or -1 when the
// height is unknown.
func (m *Model) optionRows() int {
	if m.height <= 0 {
		return -1
	}
	remain := m.height - 1 - m.chromeRows()
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) viewportRange(total int) (int, int) {
	rows := m.optionRows()
	if rows <= 0 || total <= rows {
		return 0, total
	}
	start := m.viewport.Offset
	if start+rows > total {
		start = total - rows
	}
	if start < 0 {
		start = 0
	}
	return start, start + rows
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, m.displayLine())
	if m.menu.IsOpen() {
		lines = append(lines, m.optionLines()...)
	}
	if m.errMsg != "" {
		lines = append(lines, styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error})
	}
	if m.cfg.ShowFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.footerText(), style: styles.Footer})
	}
	if m.cfg.Filter {
		lines = append(lines, styledLine{text: m.filterPrompt(), raw: true})
	}
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// displayText returns the text of the display row and whether it is the
// empty-selection hint.
func (m *Model) displayText() (string, bool) {
	if m.cfg.DisplayValue != "" {
		return m.cfg.DisplayValue, false
	}
	values := m.selection.Values()
	if len(values) == 0 {
		return emptySelection, true
	}
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = m.cfg.Resolver.Text(v)
	}
	return strings.Join(labels, ", "), false
}

func (m *Model) displayLine() styledLine {
	arrow := "▸"
	if m.menu.IsOpen() {
		arrow = "▾"
	}
	var body string
	if m.loading {
		body = m.spinner.View() + " " + render(styles.Loading, "loading options…")
	} else {
		text, hint := m.displayText()
		style := styles.Display
		switch {
		case hint:
			style = styles.DisplayHint
		case m.controlFocused():
			style = styles.DisplayFocused
		}
		body = render(style, text)
	}
	left := arrow + " " + body
	counter := ""
	if m.cfg.Counter {
		counter = m.selection.Counter()
	}
	if counter == "" {
		return styledLine{text: left, raw: true}
	}
	counter = render(styles.Counter, counter)
	gap := 1
	if m.width > 0 {
		// keep the counter visible by shortening the text instead
		room := m.width - ansi.StringWidth(counter) - 1
		if room < 1 {
			room = 1
		}
		left = ansi.Truncate(left, room, "…")
		gap = m.width - ansi.StringWidth(left) - ansi.StringWidth(counter)
		if gap < 1 {
			gap = 1
		}
	}
	return styledLine{text: left + strings.Repeat(" ", gap) + counter, raw: true}
}

func (m *Model) optionLines() []styledLine {
	visible := m.visibleEntries()
	if len(visible) == 0 {
		if q := m.list.Query(); q != "" {
			return []styledLine{{text: fmt.Sprintf("No matches for %q", q), style: styles.Info}}
		}
		text := m.cfg.Placeholder
		if text == "" {
			text = "(no options)"
		}
		return []styledLine{{text: text, style: styles.NoOption}}
	}
	scopes := m.Scopes()
	lines := make([]styledLine, 0, len(scopes))
	for _, scope := range scopes {
		lines = append(lines, m.buildOptionLine(scope))
	}
	return lines
}

// buildOptionLine constructs a single styledLine for an option row. The text
// is padded to the model width so the focused row's background spans it.
func (m *Model) buildOptionLine(scope OptionScope) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	mark := " "
	if scope.Selected {
		mark = "✓"
		lineStyle = styles.SelectedItem
	}
	if m.cfg.Multiple {
		mark = "[" + mark + "]"
	}
	if scope.Disabled {
		lineStyle = styles.DisabledItem
	}
	if scope.Focused {
		indicatorStyle = styles.FocusedItemIndicator
		lineStyle = styles.FocusedItem
	}
	fullText := indicator + " " + mark + " " + scope.Label
	if m.width > 0 {
		if pad := m.width - ansi.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func (m *Model) footerText() string {
	parts := make([]string, 0, 5)
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.followFocus()
	return nil
}

func render(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText shortens text to width cells, keeping ANSI sequences intact.
func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}
