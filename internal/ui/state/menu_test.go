package state

import "testing"

type fakeObserver struct {
	fn        func(Point)
	cancelled bool
}

func (o *fakeObserver) Observe(_ Region, fn func(Point)) func() {
	o.fn = fn
	return func() { o.cancelled = true }
}

func newTestMenu(hasOptions bool, placeholder bool, q *Queue) (*Menu, *Navigator, *Feed) {
	nav := NewNavigator("t")
	feed := NewFeed(nil, "t")
	menu := NewMenu(nav, feed, MenuConfig{
		HasOptions:  func() bool { return hasOptions },
		Placeholder: placeholder,
		Defer:       q.Defer,
		Trace:       "t",
	})
	return menu, nav, feed
}

func TestMenuOpenResetsNavigatorAndFeed(t *testing.T) {
	var q Queue
	menu, nav, feed := newTestMenu(true, false, &q)
	menu.Open()
	nav.Focus(3, 10)
	feed.Scroll(0, 100)
	menu.Close()
	if !menu.Open() {
		t.Fatalf("expected menu to open")
	}
	if nav.Index() != NoIndex {
		t.Fatalf("expected navigator reset, got %d", nav.Index())
	}
	if feed.Count() != InitialWindow {
		t.Fatalf("expected feed reset, got %d", feed.Count())
	}
}

func TestMenuOpenWithoutOptions(t *testing.T) {
	var q Queue
	menu, _, _ := newTestMenu(false, false, &q)
	if menu.Open() || menu.IsOpen() {
		t.Fatalf("expected empty menu to stay closed")
	}
	menu, _, _ = newTestMenu(false, true, &q)
	if !menu.Open() {
		t.Fatalf("expected placeholder menu to open")
	}
}

func TestMenuToggle(t *testing.T) {
	var q Queue
	menu, _, _ := newTestMenu(true, false, &q)
	menu.Toggle()
	if !menu.IsOpen() {
		t.Fatalf("expected open")
	}
	menu.Toggle()
	if menu.IsOpen() {
		t.Fatalf("expected closed")
	}
}

func TestMenuClosesOnOutsidePoint(t *testing.T) {
	var q Queue
	menu, _, _ := newTestMenu(true, false, &q)
	obs := &fakeObserver{}
	region := RegionFunc(func(p Point) bool { return p.Y < 5 })
	menu.Observe(obs, region)
	menu.Open()
	obs.fn(Point{X: 1, Y: 2})
	if !menu.IsOpen() {
		t.Fatalf("expected inside point to keep menu open")
	}
	obs.fn(Point{X: 1, Y: 9})
	if menu.IsOpen() {
		t.Fatalf("expected outside point to close menu")
	}
	menu.Teardown()
	if !obs.cancelled {
		t.Fatalf("expected teardown to cancel observation")
	}
}

func TestMenuFocusOutChecksSettledFocus(t *testing.T) {
	var q Queue
	menu, _, _ := newTestMenu(true, false, &q)
	menu.Open()
	inside := false
	menu.FocusOut(func() bool { return inside })
	inside = true
	q.Drain()
	if !menu.IsOpen() {
		t.Fatalf("expected focus returning inside to keep menu open")
	}
	inside = false
	menu.FocusOut(func() bool { return inside })
	if !menu.IsOpen() {
		t.Fatalf("expected close to wait for deferred check")
	}
	q.Drain()
	if menu.IsOpen() {
		t.Fatalf("expected menu to close once focus settled outside")
	}
}

func TestMenuFocusOutInspectsCurrentState(t *testing.T) {
	var q Queue
	menu, nav, _ := newTestMenu(true, false, &q)
	menu.Open()
	menu.FocusOut(nil)
	menu.Close()
	menu.Open()
	nav.Focus(1, 3)
	q.Drain()
	if menu.IsOpen() {
		t.Fatalf("expected deferred check to inspect current state and close")
	}
}
