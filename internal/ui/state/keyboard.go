package state

import "github.com/atomicstack/tmux-popup-select/internal/logging/events"

// Key is a navigation key recognised by Keyboard.
type Key int

const (
	KeyOther Key = iota
	KeyConfirm
	KeyEscape
	KeyPrevious
	KeyNext
)

func (k Key) String() string {
	switch k {
	case KeyConfirm:
		return "confirm"
	case KeyEscape:
		return "escape"
	case KeyPrevious:
		return "previous"
	case KeyNext:
		return "next"
	default:
		return "other"
	}
}

// Toggler toggles an option in the selection.
type Toggler interface {
	Toggle(opt any) bool
}

// Keyboard is the key-driven state machine over the navigator.
type Keyboard struct {
	menu    *Menu
	nav     *Navigator
	toggler Toggler
	visible func() []Entry
	trace   string
}

// NewKeyboard wires the keyboard to its collaborators. visible returns the
// options currently revealed to the user.
func NewKeyboard(menu *Menu, nav *Navigator, toggler Toggler, visible func() []Entry, trace string) *Keyboard {
	return &Keyboard{menu: menu, nav: nav, toggler: toggler, visible: visible, trace: trace}
}

// Handle applies key. It reports false for keys left to other handlers,
// such as the filter.
func (k *Keyboard) Handle(key Key) bool {
	if key == KeyOther {
		return false
	}
	events.Nav.Key(k.trace, key.String())
	switch key {
	case KeyConfirm:
		options := k.options()
		if idx := k.nav.Index(); idx > NoIndex && idx < len(options) {
			k.toggler.Toggle(options[idx].Option)
		} else {
			k.menu.Toggle()
		}
	case KeyEscape:
		k.menu.Close()
	case KeyPrevious:
		if k.menu.IsOpen() {
			k.step(-1)
		}
		return true
	case KeyNext:
		if !k.menu.IsOpen() {
			k.menu.Open()
		} else {
			k.step(1)
		}
		return true
	}
	return true
}

func (k *Keyboard) step(delta int) {
	options := k.options()
	k.nav.Move(delta, len(options), func(i int) bool {
		return options[i].Disabled
	})
}

func (k *Keyboard) options() []Entry {
	if k.visible == nil {
		return nil
	}
	return k.visible()
}
