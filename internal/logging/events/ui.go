package events

import "github.com/atomicstack/tmux-popup-select/internal/logging"

type FilterTracer struct{}

type CommandTracer struct{}

type FocusTracer struct{}

var (
	Filter  = FilterTracer{}
	Command = CommandTracer{}
	Focus   = FocusTracer{}
)

func (FilterTracer) Cleared(control string) {
	logging.Trace("filter.clear", map[string]interface{}{"control": control})
}

func (FilterTracer) WordBackspace(control, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"control": control, "filter": filter})
}

func (FilterTracer) Cursor(control string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"control": control, "cursor": pos})
}

func (FilterTracer) Append(control, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"control": control, "filter": filter})
}

func (FilterTracer) Backspace(control, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"control": control, "filter": filter})
}

func (CommandTracer) Emit(control, name string) {
	logging.Trace("command.emit", map[string]interface{}{"control": control, "event": name})
}

func (CommandTracer) Skip(control, name string) {
	logging.Trace("command.skip", map[string]interface{}{"control": control, "event": name})
}

func (FocusTracer) Gained(control string) {
	logging.Trace("focus.gained", map[string]interface{}{"control": control})
}

func (FocusTracer) Lost(control string) {
	logging.Trace("focus.lost", map[string]interface{}{"control": control})
}
