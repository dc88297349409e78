// Package command delivers the select control's outbound events to the host.
package command

import (
	"sync"

	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/selection"
	tea "github.com/charmbracelet/bubbletea"
)

// Outbound event names.
const (
	EventInput  = selection.EventInput
	EventAdd    = selection.EventAdd
	EventRemove = selection.EventRemove
	EventFocus  = "focus"
	EventBlur   = "blur"
)

// Event is a notification for the host.
type Event struct {
	Name    string
	Payload any
}

// Listener receives outbound events in emission order.
type Listener func(Event)

// Bus queues events raised during an update and delivers them from a
// Bubble Tea command once the update has returned.
type Bus struct {
	control  string
	listener Listener

	mu      sync.Mutex
	pending []Event
	deliver sync.Mutex
}

// New initialises a bus for the control identified by control.
func New(control string, listener Listener) *Bus {
	return &Bus{control: control, listener: listener}
}

// Publish queues an event.
func (b *Bus) Publish(name string, payload any) {
	if b.listener == nil {
		events.Command.Skip(b.control, name)
		return
	}
	b.mu.Lock()
	b.pending = append(b.pending, Event{Name: name, Payload: payload})
	b.mu.Unlock()
}

// Flush returns a command delivering every queued event, or nil when none
// are waiting. Deliveries from successive flushes never interleave.
func (b *Bus) Flush() tea.Cmd {
	b.mu.Lock()
	empty := len(b.pending) == 0
	b.mu.Unlock()
	if empty {
		return nil
	}
	return func() tea.Msg {
		b.deliver.Lock()
		defer b.deliver.Unlock()
		for _, evt := range b.take() {
			events.Command.Emit(b.control, evt.Name)
			b.listener(evt)
		}
		return nil
	}
}

func (b *Bus) take() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	batch := b.pending
	b.pending = nil
	return batch
}
