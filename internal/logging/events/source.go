package events

import "github.com/atomicstack/tmux-popup-select/internal/logging"

type SourceTracer struct{}

var Source = SourceTracer{}

func (SourceTracer) Loaded(name string, count int) {
	logging.Trace("source.loaded", map[string]interface{}{"source": name, "count": count})
}

func (SourceTracer) Failed(name string, err error) {
	if err == nil {
		return
	}
	logging.Trace("source.error", map[string]interface{}{"source": name, "error": err.Error()})
}

func (SourceTracer) Unchanged(name string) {
	logging.Trace("source.unchanged", map[string]interface{}{"source": name})
}
