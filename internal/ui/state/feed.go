package state

import "github.com/atomicstack/tmux-popup-select/internal/logging/events"

const (
	// InitialWindow is the number of options revealed when the menu opens.
	InitialWindow = 20
	// WindowStep is the number of options revealed per growth.
	WindowStep = 20
	// ScrollThreshold is the distance from the content bottom below which
	// the window grows.
	ScrollThreshold = 200
)

// Feed reveals a growing prefix of a large option list.
type Feed struct {
	count   int
	guarded bool
	release Deferrer
	trace   string
}

// NewFeed returns a feed at the initial window size. Growth is released
// through deferred, which may be nil when the owner calls Release itself.
func NewFeed(deferred Deferrer, trace string) *Feed {
	return &Feed{count: InitialWindow, release: deferred, trace: trace}
}

// Count returns the window size.
func (f *Feed) Count() int {
	return f.count
}

// Window returns how many of total options are visible.
func (f *Feed) Window(total int) int {
	if total < f.count {
		return total
	}
	return f.count
}

// Reset shrinks the window back to its initial size.
func (f *Feed) Reset() {
	f.count = InitialWindow
}

// Guarded reports whether growth is suspended until the next render.
func (f *Feed) Guarded() bool {
	return f.guarded
}

// Release lifts the growth guard.
func (f *Feed) Release() {
	if !f.guarded {
		return
	}
	f.guarded = false
	events.Feed.Release(f.trace)
}

// Scroll handles a scroll signal carrying the distance between the content
// bottom and the viewport bottom. It reports whether the window grew.
func (f *Feed) Scroll(distance, total int) bool {
	if f.guarded || f.count >= total || distance >= ScrollThreshold {
		return false
	}
	f.count += WindowStep
	f.guarded = true
	events.Feed.Grow(f.trace, f.count, total)
	if f.release != nil {
		f.release(f.Release)
	}
	return true
}
