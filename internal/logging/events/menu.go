package events

import "github.com/atomicstack/tmux-popup-select/internal/logging"

type MenuTracer struct{}

type NavTracer struct{}

type FeedTracer struct{}

type menuReason string

const (
	MenuReasonEmpty   menuReason = "empty"
	MenuReasonOutside menuReason = "outside"
	MenuReasonBlur    menuReason = "blur"
)

var (
	Menu = MenuTracer{}
	Nav  = NavTracer{}
	Feed = FeedTracer{}
)

func (MenuTracer) Open(control string) {
	logging.Trace("menu.open", map[string]interface{}{"control": control})
}

func (MenuTracer) Close(control string) {
	logging.Trace("menu.close", map[string]interface{}{"control": control})
}

func (MenuTracer) Skip(control string, reason menuReason) {
	logging.Trace("menu.skip", map[string]interface{}{"control": control, "reason": string(reason)})
}

func (MenuTracer) Dismiss(control string, reason menuReason) {
	logging.Trace("menu.dismiss", map[string]interface{}{"control": control, "reason": string(reason)})
}

func (NavTracer) Cursor(control string, index int) {
	logging.Trace("nav.cursor", map[string]interface{}{"control": control, "index": index})
}

func (NavTracer) Key(control, key string) {
	logging.Trace("nav.key", map[string]interface{}{"control": control, "key": key})
}

func (FeedTracer) Grow(control string, count, total int) {
	logging.Trace("feed.grow", map[string]interface{}{"control": control, "count": count, "total": total})
}

func (FeedTracer) Release(control string) {
	logging.Trace("feed.release", map[string]interface{}{"control": control})
}
