package state

import "testing"

func allEnabled(int) bool { return false }

func TestNavigatorMoveFromNone(t *testing.T) {
	nav := NewNavigator("t")
	if !nav.Move(1, 3, allEnabled) || nav.Index() != 0 {
		t.Fatalf("expected next from none to land on 0, got %d", nav.Index())
	}
	nav.Reset()
	if !nav.Move(-1, 3, allEnabled) || nav.Index() != 2 {
		t.Fatalf("expected previous from none to land on 2, got %d", nav.Index())
	}
}

func TestNavigatorWrapsAround(t *testing.T) {
	nav := NewNavigator("t")
	nav.Focus(2, 3)
	nav.Move(1, 3, allEnabled)
	if nav.Index() != 0 {
		t.Fatalf("expected wrap to 0, got %d", nav.Index())
	}
	nav.Move(-1, 3, allEnabled)
	if nav.Index() != 2 {
		t.Fatalf("expected wrap to 2, got %d", nav.Index())
	}
}

func TestNavigatorSkipsDisabled(t *testing.T) {
	disabled := []bool{false, true, true, false}
	nav := NewNavigator("t")
	nav.Focus(0, 4)
	nav.Move(1, 4, func(i int) bool { return disabled[i] })
	if nav.Index() != 3 {
		t.Fatalf("expected to skip to 3, got %d", nav.Index())
	}
	nav.Move(1, 4, func(i int) bool { return disabled[i] })
	if nav.Index() != 0 {
		t.Fatalf("expected to wrap to 0, got %d", nav.Index())
	}
}

func TestNavigatorAllDisabledLeavesIndex(t *testing.T) {
	all := func(int) bool { return true }
	nav := NewNavigator("t")
	if nav.Move(1, 5, all) {
		t.Fatalf("expected no movement")
	}
	if nav.Index() != NoIndex {
		t.Fatalf("expected none, got %d", nav.Index())
	}
	nav.Focus(2, 5)
	if nav.Move(-1, 5, all) || nav.Index() != 2 {
		t.Fatalf("expected index to stay at 2, got %d", nav.Index())
	}
}

func TestNavigatorIgnoresEmptyList(t *testing.T) {
	nav := NewNavigator("t")
	if nav.Move(1, 0, nil) || nav.Index() != NoIndex {
		t.Fatalf("expected no movement on empty list")
	}
	if nav.Focus(0, 0) {
		t.Fatalf("expected focus outside list to fail")
	}
}
