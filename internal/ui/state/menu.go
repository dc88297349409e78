package state

import "github.com/atomicstack/tmux-popup-select/internal/logging/events"

// Point locates pointer activity in cell coordinates.
type Point struct {
	X, Y int
}

// Region reports whether a point lies inside the control.
type Region interface {
	Contains(Point) bool
}

// RegionFunc adapts a function to Region.
type RegionFunc func(Point) bool

func (f RegionFunc) Contains(p Point) bool { return f(p) }

// OutsideObserver invokes fn for pointer activity outside region until the
// returned cancel function is called.
type OutsideObserver interface {
	Observe(region Region, fn func(target Point)) (cancel func())
}

// MenuConfig wires the menu to its surroundings.
type MenuConfig struct {
	// HasOptions reports whether any option is available.
	HasOptions func() bool
	// Placeholder reports whether empty-state content is configured.
	Placeholder bool
	Defer       Deferrer
	Trace       string
}

// Menu owns the open/closed lifecycle of the option list.
type Menu struct {
	open   bool
	nav    *Navigator
	feed   *Feed
	cfg    MenuConfig
	cancel func()
}

// NewMenu returns a closed menu resetting nav and feed on every open.
func NewMenu(nav *Navigator, feed *Feed, cfg MenuConfig) *Menu {
	return &Menu{nav: nav, feed: feed, cfg: cfg}
}

// IsOpen reports whether the option list is showing.
func (m *Menu) IsOpen() bool {
	return m.open
}

// Open shows the option list. With no options and no placeholder the menu
// stays closed.
func (m *Menu) Open() bool {
	if m.open {
		return false
	}
	if !m.cfg.Placeholder && (m.cfg.HasOptions == nil || !m.cfg.HasOptions()) {
		events.Menu.Skip(m.cfg.Trace, events.MenuReasonEmpty)
		return false
	}
	m.open = true
	if m.nav != nil {
		m.nav.Reset()
	}
	if m.feed != nil {
		m.feed.Reset()
	}
	events.Menu.Open(m.cfg.Trace)
	return true
}

// Close hides the option list.
func (m *Menu) Close() bool {
	if !m.open {
		return false
	}
	m.open = false
	if m.nav != nil {
		m.nav.Reset()
	}
	events.Menu.Close(m.cfg.Trace)
	return true
}

// Toggle flips the menu state.
func (m *Menu) Toggle() bool {
	if m.open {
		return m.Close()
	}
	return m.Open()
}

// Observe registers for outside activity around region, replacing any
// earlier registration.
func (m *Menu) Observe(obs OutsideObserver, region Region) {
	m.Teardown()
	if obs == nil || region == nil {
		return
	}
	m.cancel = obs.Observe(region, func(target Point) {
		if region.Contains(target) || !m.open {
			return
		}
		events.Menu.Dismiss(m.cfg.Trace, events.MenuReasonOutside)
		m.Close()
	})
}

// Teardown cancels the outside-activity registration.
func (m *Menu) Teardown() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// FocusOut schedules a check of the settled focus. The menu closes only if
// focus is still outside the control when the check runs.
func (m *Menu) FocusOut(inside func() bool) {
	check := func() {
		if !m.open || (inside != nil && inside()) {
			return
		}
		events.Menu.Dismiss(m.cfg.Trace, events.MenuReasonBlur)
		m.Close()
	}
	if m.cfg.Defer == nil {
		check()
		return
	}
	m.cfg.Defer(check)
}
