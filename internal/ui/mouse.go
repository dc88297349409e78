package ui

import (
	uistate "github.com/atomicstack/tmux-popup-select/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// rowUnits converts rendered rows into scroll distance, so the feed
	// threshold corresponds to ten rows below the viewport.
	rowUnits  = 20
	wheelStep = 3
)

// pointerObserver implements uistate.OutsideObserver over the mouse events
// the model receives.
type pointerObserver struct {
	next     int
	watchers map[int]pointerWatcher
}

type pointerWatcher struct {
	region uistate.Region
	fn     func(uistate.Point)
}

func (o *pointerObserver) Observe(region uistate.Region, fn func(uistate.Point)) func() {
	if o.watchers == nil {
		o.watchers = make(map[int]pointerWatcher)
	}
	id := o.next
	o.next++
	o.watchers[id] = pointerWatcher{region: region, fn: fn}
	return func() { delete(o.watchers, id) }
}

func (o *pointerObserver) notify(p uistate.Point) {
	for _, w := range o.watchers {
		if !w.region.Contains(p) {
			w.fn(p)
		}
	}
}

func (o *pointerObserver) active() int {
	return len(o.watchers)
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.scrollRows(-wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		m.scrollRows(wheelStep)
		return nil
	}
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return nil
	}
	p := uistate.Point{X: ev.X, Y: ev.Y}
	if m.pointer != nil {
		m.pointer.notify(p)
	}
	m.handleClick(p)
	return nil
}

func (m *Model) handleClick(p uistate.Point) {
	if p.Y == displayRow {
		m.menu.Toggle()
		m.followFocus()
		return
	}
	idx, ok := m.optionAt(p.Y)
	if !ok {
		return
	}
	visible := m.visibleEntries()
	entry := visible[idx]
	if entry.Disabled {
		return
	}
	m.nav.Focus(idx, len(visible))
	m.selection.Toggle(entry.Option)
	m.followFocus()
}

// optionAt maps a screen row onto an index into the visible options.
func (m *Model) optionAt(y int) (int, bool) {
	if !m.menu.IsOpen() {
		return 0, false
	}
	lay := m.layout()
	row := y - lay.optionsTop
	if row < 0 || row >= lay.optionLines || lay.empty {
		return 0, false
	}
	idx := m.viewport.Offset + row
	if idx >= len(m.visibleEntries()) {
		return 0, false
	}
	return idx, true
}

// insideControl reports whether p hits a rendered row of the control.
func (m *Model) insideControl(p uistate.Point) bool {
	if p.Y < 0 {
		return false
	}
	if m.width > 0 && (p.X < 0 || p.X >= m.width) {
		return false
	}
	return p.Y < m.layout().rows
}
