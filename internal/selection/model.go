// Package selection owns the current selection of a select control and is
// the only place that emits selection-change notifications.
package selection

import (
	"fmt"

	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/option"
)

// MenuCloser closes the option menu once a single-mode toggle completes.
type MenuCloser interface {
	Close() bool
}

// Config describes selection behaviour.
type Config struct {
	Multiple bool
	// MaxValues caps multiple-mode selections; zero or less means unlimited.
	MaxValues int
	Equal     option.Equal
	Listener  Listener
	Menu      MenuCloser
	// Trace tags trace entries with the owning control.
	Trace string
}

// Model holds the selection. In single mode value is an option or nil; in
// multiple mode it is an ordered []any without duplicates.
type Model struct {
	cfg   Config
	value any
}

// New creates a selection model seeded with initial, which is not announced.
func New(cfg Config, initial any) *Model {
	if cfg.Equal == nil {
		cfg.Equal = option.DeepEqual
	}
	m := &Model{cfg: cfg}
	m.Reset(initial)
	return m
}

// Multiple reports whether the model is in multiple-selection mode.
func (m *Model) Multiple() bool {
	return m.cfg.Multiple
}

// MaxValues returns the configured cap, zero when unlimited.
func (m *Model) MaxValues() int {
	if m.cfg.MaxValues < 0 {
		return 0
	}
	return m.cfg.MaxValues
}

// Reset replaces the selection without emitting events. In multiple mode a
// non-slice value is treated as a one-element selection.
func (m *Model) Reset(value any) {
	if !m.cfg.Multiple {
		m.value = value
		return
	}
	switch v := value.(type) {
	case nil:
		m.value = []any(nil)
	case []any:
		m.value = append([]any(nil), v...)
	default:
		m.value = []any{v}
	}
}

// Value returns the selection in its external shape.
func (m *Model) Value() any {
	if m.cfg.Multiple {
		return m.Values()
	}
	return m.value
}

// Values projects the selection onto a sequence: empty when nothing is
// selected, one element in single mode. The result is a fresh slice.
func (m *Model) Values() []any {
	if !m.cfg.Multiple {
		if m.value == nil {
			return []any{}
		}
		return []any{m.value}
	}
	current, _ := m.value.([]any)
	return append([]any{}, current...)
}

// Len returns the number of selected options.
func (m *Model) Len() int {
	if !m.cfg.Multiple {
		if m.value == nil {
			return 0
		}
		return 1
	}
	current, _ := m.value.([]any)
	return len(current)
}

// Contains reports whether an entry with the same resolved key as opt is
// selected.
func (m *Model) Contains(opt any, key func(any) any) bool {
	if key == nil {
		key = func(v any) any { return v }
	}
	want := key(opt)
	for _, v := range m.Values() {
		if m.cfg.Equal(key(v), want) {
			return true
		}
	}
	return false
}

// Counter renders "len" or "len / max" in multiple mode, empty otherwise.
func (m *Model) Counter() string {
	if !m.cfg.Multiple {
		return ""
	}
	if max := m.MaxValues(); max > 0 {
		return fmt.Sprintf("%d / %d", m.Len(), max)
	}
	return fmt.Sprintf("%d", m.Len())
}

// Toggle is the only mutating entry point. It reports whether the selection
// changed. Disabled options and additions beyond MaxValues are ignored.
func (m *Model) Toggle(opt any) bool {
	if option.Disabled(opt) {
		events.Select.Ignored(m.cfg.Trace, "disabled")
		return false
	}
	if !m.cfg.Multiple {
		changed := false
		if !m.cfg.Equal(m.value, opt) {
			m.value = opt
			changed = true
			events.Select.Replace(m.cfg.Trace, 1)
			m.emit(Input{Value: opt})
		}
		if m.cfg.Menu != nil {
			m.cfg.Menu.Close()
		}
		return changed
	}

	current, _ := m.value.([]any)
	if len(current) == 0 {
		m.value = []any{opt}
		events.Select.Add(m.cfg.Trace, 0)
		m.emit(Add{Index: 0, Value: opt})
		m.emit(Input{Value: m.Values()})
		return true
	}

	model := append([]any(nil), current...)
	index := -1
	for i, v := range model {
		if m.cfg.Equal(v, opt) {
			index = i
			break
		}
	}
	if index > -1 {
		removed := []any{model[index]}
		model = append(model[:index], model[index+1:]...)
		m.value = model
		events.Select.Remove(m.cfg.Trace, index)
		m.emit(Remove{Index: index, Value: removed})
	} else {
		if max := m.MaxValues(); max > 0 && len(model) >= max {
			events.Select.Ignored(m.cfg.Trace, "max-values")
			return false
		}
		model = append(model, opt)
		m.value = model
		events.Select.Add(m.cfg.Trace, len(model)-1)
		m.emit(Add{Index: len(model) - 1, Value: opt})
	}
	events.Select.Replace(m.cfg.Trace, len(model))
	m.emit(Input{Value: m.Values()})
	return true
}

func (m *Model) emit(evt Event) {
	if m.cfg.Listener != nil {
		m.cfg.Listener(evt)
	}
}
