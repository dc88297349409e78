package state

import "github.com/atomicstack/tmux-popup-select/internal/option"

// Entry is an option resolved for display.
type Entry struct {
	// Index is the position in the full option list.
	Index    int
	Option   any
	Label    string
	Key      string
	Disabled bool
}

// List holds the host-supplied options and the subset matching the filter.
type List struct {
	Full         []Entry
	Items        []Entry
	Filter       string
	FilterCursor int
	resolver     option.Resolver
}

// NewList resolves options with resolver.
func NewList(resolver option.Resolver, options []any) *List {
	l := &List{resolver: resolver}
	l.Update(options)
	return l
}

// Update replaces the full option list and reapplies the filter.
func (l *List) Update(options []any) {
	l.Full = Entries(l.resolver, options)
	l.applyFilter()
}

// Empty reports whether the host supplied no options at all.
func (l *List) Empty() bool {
	return len(l.Full) == 0
}

// Window returns the first n filtered entries.
func (l *List) Window(n int) []Entry {
	if n < 0 {
		n = 0
	}
	if n > len(l.Items) {
		n = len(l.Items)
	}
	return l.Items[:n]
}

// Entries resolves labels, keys and disabled flags for options.
func Entries(resolver option.Resolver, options []any) []Entry {
	out := make([]Entry, len(options))
	for i, opt := range options {
		out[i] = Entry{
			Index:    i,
			Option:   opt,
			Label:    resolver.Text(opt),
			Key:      option.Stringify(resolver.Value(opt)),
			Disabled: option.Disabled(opt),
		}
	}
	return out
}

// CloneEntries produces a shallow copy of entries.
func CloneEntries(entries []Entry) []Entry {
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return dup
}
