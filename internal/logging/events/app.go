package events

import "github.com/atomicstack/tmux-popup-select/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Finish(control string, selected int, aborted bool) {
	logging.Trace("app.finish", map[string]interface{}{"control": control, "selected": selected, "aborted": aborted})
}
