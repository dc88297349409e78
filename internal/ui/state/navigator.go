package state

import "github.com/atomicstack/tmux-popup-select/internal/logging/events"

// NoIndex marks the absence of a focused option.
const NoIndex = -1

// Navigator tracks the keyboard-focused index among the visible options.
type Navigator struct {
	index int
	trace string
}

// NewNavigator returns a navigator with no focused option.
func NewNavigator(trace string) *Navigator {
	return &Navigator{index: NoIndex, trace: trace}
}

// Index returns the focused index or NoIndex.
func (n *Navigator) Index() int {
	return n.index
}

// Reset clears the focus.
func (n *Navigator) Reset() bool {
	if n.index == NoIndex {
		return false
	}
	n.index = NoIndex
	return true
}

// Focus points the navigator at i when it addresses one of count options.
func (n *Navigator) Focus(i, count int) bool {
	if i < 0 || i >= count || i == n.index {
		return false
	}
	n.index = i
	events.Nav.Cursor(n.trace, i)
	return true
}

// Move steps delta positions with wraparound over [0, count-1], skipping
// disabled entries. When every other entry is disabled the index is left
// where it was.
func (n *Navigator) Move(delta, count int, disabled func(int) bool) bool {
	if count <= 0 || delta == 0 {
		return false
	}
	start := n.index
	candidate := start
	if candidate < 0 || candidate >= count {
		start = NoIndex
		candidate = -1
		if delta < 0 {
			candidate = count
		}
	}
	for step := 0; step < count; step++ {
		candidate = wrap(candidate+delta, count)
		if candidate == start {
			break
		}
		if disabled == nil || !disabled(candidate) {
			n.index = candidate
			events.Nav.Cursor(n.trace, candidate)
			return true
		}
	}
	return false
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}
