package events

import "github.com/atomicstack/tmux-popup-select/internal/logging"

type SelectTracer struct{}

var Select = SelectTracer{}

func (SelectTracer) Add(control string, index int) {
	logging.Trace("select.add", map[string]interface{}{"control": control, "index": index})
}

func (SelectTracer) Remove(control string, index int) {
	logging.Trace("select.remove", map[string]interface{}{"control": control, "index": index})
}

func (SelectTracer) Replace(control string, size int) {
	logging.Trace("select.input", map[string]interface{}{"control": control, "size": size})
}

// Ignored records a toggle that did not change the selection.
func (SelectTracer) Ignored(control, reason string) {
	logging.Trace("select.ignored", map[string]interface{}{"control": control, "reason": reason})
}
