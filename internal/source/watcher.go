package source

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
)

// MinInterval bounds how often a loader is hit, whatever the refresh rate.
const MinInterval = 250 * time.Millisecond

// Event conveys a freshly loaded option list or a load error.
type Event struct {
	Source  string
	Options []any
	Err     error
}

// Watcher loads options once and then reloads them every interval,
// publishing only lists that differ from the previous one. An interval of
// zero loads once and closes the event channel.
type Watcher struct {
	loader   Loader
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts polling loader.
func NewWatcher(parent context.Context, loader Loader, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(parent)
	w := &Watcher{
		loader:   loader,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}
	w.wg.Add(1)
	go w.poll()
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w
}

// Events returns the channel of load events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current load.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	name := w.loader.Name()
	throttle := newThrottle(MinInterval)
	var last []any
	loaded := false

	emit := func() bool {
		if err := throttle.wait(w.ctx); err != nil {
			return false
		}
		opts, err := w.loader.Load(w.ctx)
		if err != nil {
			events.Source.Failed(name, err)
		} else if loaded && reflect.DeepEqual(opts, last) {
			events.Source.Unchanged(name)
			return true
		} else {
			last, loaded = opts, true
			events.Source.Loaded(name, len(opts))
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- Event{Source: name, Options: opts, Err: err}:
			return true
		}
	}

	if !emit() || w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
