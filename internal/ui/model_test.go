package ui

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-popup-select/internal/logging"
	"github.com/atomicstack/tmux-popup-select/internal/selection"
	"github.com/atomicstack/tmux-popup-select/internal/source"
	"github.com/atomicstack/tmux-popup-select/internal/ui/command"
	uistate "github.com/atomicstack/tmux-popup-select/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func fruit(value, label string) map[string]any {
	return map[string]any{"value": value, "label": label}
}

func fruits() []any {
	return []any{fruit("a", "Apple"), fruit("b", "Banana"), fruit("c", "Cherry")}
}

type eventLog struct {
	events []command.Event
}

func (l *eventLog) listen(evt command.Event) {
	l.events = append(l.events, evt)
}

func (l *eventLog) names() []string {
	out := make([]string, len(l.events))
	for i, evt := range l.events {
		out[i] = evt.Name
	}
	return out
}

func newTestHarness(t *testing.T, cfg Config) (*Harness, *eventLog) {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "test.log"))
	log := &eventLog{}
	cfg.Listener = log.listen
	return NewHarness(NewModel(cfg)), log
}

func keyPress(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestSingleSelectReplacesAndCloses(t *testing.T) {
	h, log := newTestHarness(t, Config{Options: fruits(), Values: []string{"a"}})
	if got := h.Model().Value(); !reflect.DeepEqual(got, fruit("a", "Apple")) {
		t.Fatalf("expected initial value Apple, got %v", got)
	}
	h.Send(keyPress(tea.KeyDown))
	if !h.Model().menu.IsOpen() {
		t.Fatalf("expected down to open the menu")
	}
	h.Send(keyPress(tea.KeyDown))
	h.Send(keyPress(tea.KeyDown))
	h.Send(keyPress(tea.KeyEnter))
	if h.Model().menu.IsOpen() {
		t.Fatalf("expected single-mode toggle to close the menu")
	}
	if names := log.names(); !reflect.DeepEqual(names, []string{command.EventInput}) {
		t.Fatalf("expected a single input event, got %v", names)
	}
	input, ok := log.events[0].Payload.(selection.Input)
	if !ok || !reflect.DeepEqual(input.Value, fruit("b", "Banana")) {
		t.Fatalf("unexpected input payload %#v", log.events[0].Payload)
	}
	if !strings.Contains(h.View(), "Banana") {
		t.Fatalf("expected display row to show Banana, view =\n%s", h.View())
	}
}

func TestMultipleSelectRespectsMaxValues(t *testing.T) {
	h, log := newTestHarness(t, Config{Options: fruits(), Multiple: true, MaxValues: 2, Counter: true})
	h.Send(keyPress(tea.KeyDown))
	for i := 0; i < 3; i++ {
		h.Send(keyPress(tea.KeyDown))
		h.Send(keyPress(tea.KeyEnter))
	}
	want := []string{command.EventAdd, command.EventInput, command.EventAdd, command.EventInput}
	if names := log.names(); !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	if !h.Model().menu.IsOpen() {
		t.Fatalf("expected multiple-mode toggles to keep the menu open")
	}
	if got := len(h.Model().Selection()); got != 2 {
		t.Fatalf("expected 2 selected, got %d", got)
	}
	if !strings.Contains(h.View(), "2 / 2") {
		t.Fatalf("expected counter in view, view =\n%s", h.View())
	}
}

func TestEscapeClosesThenAccepts(t *testing.T) {
	h, _ := newTestHarness(t, Config{Options: fruits()})
	h.Send(keyPress(tea.KeyDown))
	h.Send(keyPress(tea.KeyEsc))
	if h.Model().menu.IsOpen() {
		t.Fatalf("expected escape to close the menu")
	}
	if h.Model().Done() {
		t.Fatalf("expected first escape only to close the menu")
	}
	h.Send(keyPress(tea.KeyEsc))
	if !h.Model().Done() || h.Model().Aborted() {
		t.Fatalf("expected second escape to accept")
	}
}

func TestCtrlCAborts(t *testing.T) {
	h, _ := newTestHarness(t, Config{Options: fruits()})
	h.Send(keyPress(tea.KeyCtrlC))
	if !h.Model().Done() || !h.Model().Aborted() {
		t.Fatalf("expected ctrl+c to abort")
	}
	if h.Model().pointer.active() != 0 {
		t.Fatalf("expected quitting to cancel the outside observer")
	}
}

func TestEmptyMenuNeedsPlaceholder(t *testing.T) {
	h, _ := newTestHarness(t, Config{})
	h.Send(keyPress(tea.KeyDown))
	if h.Model().menu.IsOpen() {
		t.Fatalf("expected empty menu to stay closed")
	}
	h, _ = newTestHarness(t, Config{Placeholder: "nothing here"})
	h.Send(keyPress(tea.KeyDown))
	if !h.Model().menu.IsOpen() {
		t.Fatalf("expected placeholder menu to open")
	}
	if !strings.Contains(h.View(), "nothing here") {
		t.Fatalf("expected placeholder in view, view =\n%s", h.View())
	}
}

func manyOptions(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = fmt.Sprintf("option-%03d", i)
	}
	return out
}

func TestWheelGrowsFeed(t *testing.T) {
	h, _ := newTestHarness(t, Config{Options: manyOptions(100), Height: 10})
	h.Send(keyPress(tea.KeyDown))
	if got := len(h.Model().visibleEntries()); got != uistate.InitialWindow {
		t.Fatalf("expected %d visible, got %d", uistate.InitialWindow, got)
	}
	h.Send(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if got := h.Model().feed.Count(); got != 40 {
		t.Fatalf("expected feed to grow to 40, got %d", got)
	}
	if h.Model().feed.Guarded() {
		t.Fatalf("expected guard to be released after the drain")
	}
	h.Send(keyPress(tea.KeyEsc))
	h.Send(keyPress(tea.KeyDown))
	if got := h.Model().feed.Count(); got != uistate.InitialWindow {
		t.Fatalf("expected reopen to reset the feed, got %d", got)
	}
}

func TestKeyboardReachingWindowEndGrowsFeed(t *testing.T) {
	h, _ := newTestHarness(t, Config{Options: manyOptions(50)})
	h.Send(keyPress(tea.KeyDown))
	h.Send(keyPress(tea.KeyUp))
	if got := h.Model().nav.Index(); got != uistate.InitialWindow-1 {
		t.Fatalf("expected focus on last visible option, got %d", got)
	}
	if got := h.Model().feed.Count(); got != 40 {
		t.Fatalf("expected feed to grow to 40, got %d", got)
	}
}

func TestBlurClosesAfterSettling(t *testing.T) {
	h, log := newTestHarness(t, Config{Options: fruits()})
	h.Send(keyPress(tea.KeyDown))
	h.Send(tea.BlurMsg{})
	if h.Model().menu.IsOpen() {
		t.Fatalf("expected blur to close the menu")
	}
	if names := log.names(); !reflect.DeepEqual(names, []string{command.EventBlur}) {
		t.Fatalf("expected blur event, got %v", names)
	}
	h.Send(tea.FocusMsg{})
	if names := log.names(); len(names) != 2 || names[1] != command.EventFocus {
		t.Fatalf("expected focus event, got %v", names)
	}
}

func TestFocusReturningBeforeCheckKeepsMenuOpen(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "test.log"))
	m := NewModel(Config{Options: fruits()})
	m.Update(keyPress(tea.KeyDown))
	m.Update(tea.BlurMsg{})
	m.Update(tea.FocusMsg{})
	m.Update(drainMsg{})
	if !m.menu.IsOpen() {
		t.Fatalf("expected focus returning inside to keep the menu open")
	}
}

func TestMouseClicks(t *testing.T) {
	h, log := newTestHarness(t, Config{Options: fruits(), Multiple: true})
	h.Send(click(1, displayRow))
	if !h.Model().menu.IsOpen() {
		t.Fatalf("expected display click to open the menu")
	}
	h.Send(click(3, 2))
	if names := log.names(); !reflect.DeepEqual(names, []string{command.EventAdd, command.EventInput}) {
		t.Fatalf("expected add and input, got %v", names)
	}
	if h.Model().nav.Index() != 1 {
		t.Fatalf("expected clicked option to take focus, got %d", h.Model().nav.Index())
	}
	if got := h.Model().Selection(); len(got) != 1 || !reflect.DeepEqual(got[0], fruit("b", "Banana")) {
		t.Fatalf("unexpected selection %v", got)
	}
	h.Send(click(1, 20))
	if h.Model().menu.IsOpen() {
		t.Fatalf("expected outside click to close the menu")
	}
}

func TestScopesMarkSelectedFocusedDisabled(t *testing.T) {
	opts := []any{fruit("a", "Apple"), map[string]any{"value": "b", "label": "Banana", "disable": true}, fruit("c", "Cherry")}
	h, _ := newTestHarness(t, Config{Options: opts, Values: []string{"c"}})
	h.Send(keyPress(tea.KeyDown))
	h.Send(keyPress(tea.KeyDown))
	h.Send(keyPress(tea.KeyDown))
	scopes := h.Model().Scopes()
	if len(scopes) != 3 {
		t.Fatalf("expected 3 scopes, got %d", len(scopes))
	}
	if !scopes[1].Disabled || scopes[1].Focused {
		t.Fatalf("unexpected disabled scope %+v", scopes[1])
	}
	if !scopes[2].Selected || !scopes[2].Focused {
		t.Fatalf("expected Cherry selected and focused, got %+v", scopes[2])
	}
}

func TestFilterNarrowsOptions(t *testing.T) {
	h, _ := newTestHarness(t, Config{Options: fruits(), Filter: true})
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ban")})
	m := h.Model()
	if !m.menu.IsOpen() {
		t.Fatalf("expected typing to open the menu")
	}
	visible := m.visibleEntries()
	if len(visible) != 1 || visible[0].Label != "Banana" {
		t.Fatalf("unexpected filtered options %+v", visible)
	}
	if m.nav.Index() != uistate.NoIndex {
		t.Fatalf("expected navigator reset, got %d", m.nav.Index())
	}
	h.Send(keyPress(tea.KeyDown))
	h.Send(keyPress(tea.KeyEnter))
	if got := m.Value(); !reflect.DeepEqual(got, fruit("b", "Banana")) {
		t.Fatalf("expected Banana selected, got %v", got)
	}
}

func TestSourceEventsReplaceOptions(t *testing.T) {
	h, log := newTestHarness(t, Config{Values: []string{"b"}, Multiple: true})
	h.Send(sourceEventMsg{event: source.Event{Source: "test", Options: fruits()}})
	if got := h.Model().Selection(); len(got) != 1 || !reflect.DeepEqual(got[0], fruit("b", "Banana")) {
		t.Fatalf("expected pending value applied, got %v", got)
	}
	if len(log.events) != 0 {
		t.Fatalf("expected initial values to be applied silently, got %v", log.names())
	}
	h.Send(sourceEventMsg{event: source.Event{Source: "test", Err: errTest}})
	if len(h.Model().list.Full) != 3 {
		t.Fatalf("expected failed load to keep options")
	}
	if !strings.Contains(h.View(), "Error: boom") {
		t.Fatalf("expected error in view, view =\n%s", h.View())
	}
}

func TestDisplayTextJoinsLabels(t *testing.T) {
	h, _ := newTestHarness(t, Config{Options: fruits(), Multiple: true, Values: []string{"a", "c"}})
	text, hint := h.Model().displayText()
	if hint || text != "Apple, Cherry" {
		t.Fatalf("unexpected display text %q (hint=%v)", text, hint)
	}
	h, _ = newTestHarness(t, Config{Options: fruits(), DisplayValue: "custom"})
	if text, _ := h.Model().displayText(); text != "custom" {
		t.Fatalf("expected override, got %q", text)
	}
	h, _ = newTestHarness(t, Config{Options: fruits()})
	if _, hint := h.Model().displayText(); !hint {
		t.Fatalf("expected empty selection hint")
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("boom")
