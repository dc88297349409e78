package source

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type scriptedLoader struct {
	mu    sync.Mutex
	steps [][]any
	errs  []error
	calls int
}

func (s *scriptedLoader) Name() string { return "scripted" }

func (s *scriptedLoader) Load(context.Context) ([]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.steps) {
		i = len(s.steps) - 1
	}
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return s.steps[i], err
}

func nextEvent(t *testing.T, w *Watcher) (Event, bool) {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		return evt, ok
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
	return Event{}, false
}

func TestWatcherLoadsOnceWithoutInterval(t *testing.T) {
	w := NewWatcher(context.Background(), Static{Options: []any{"a", "b"}}, 0)
	evt, ok := nextEvent(t, w)
	if !ok || evt.Err != nil || len(evt.Options) != 2 {
		t.Fatalf("unexpected first event %+v", evt)
	}
	if _, ok := nextEvent(t, w); ok {
		t.Fatalf("expected channel to close after single load")
	}
}

func TestWatcherSkipsUnchangedLists(t *testing.T) {
	loader := &scriptedLoader{steps: [][]any{{"a"}, {"a"}, {"a", "b"}}}
	w := NewWatcher(context.Background(), loader, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()
	first, _ := nextEvent(t, w)
	if len(first.Options) != 1 {
		t.Fatalf("unexpected first event %+v", first)
	}
	second, _ := nextEvent(t, w)
	if len(second.Options) != 2 {
		t.Fatalf("expected unchanged list to be skipped, got %+v", second)
	}
}

func TestWatcherReportsErrors(t *testing.T) {
	boom := errors.New("boom")
	loader := &scriptedLoader{steps: [][]any{nil}, errs: []error{boom}}
	w := NewWatcher(context.Background(), loader, 0)
	evt, _ := nextEvent(t, w)
	if !errors.Is(evt.Err, boom) {
		t.Fatalf("expected boom, got %v", evt.Err)
	}
	w.Wait()
}
