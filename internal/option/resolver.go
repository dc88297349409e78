// Package option maps host-supplied option entries to the value used for
// comparison and the label used for display.
//
// Options are opaque: a scalar (string, number, bool) or a structured record
// (struct or string-keyed map). Resolution never fails; a missing property
// resolves to nil, which is itself a valid comparison value.
package option

import "fmt"

const (
	defaultValueKey = "value"
	defaultLabelKey = "label"
)

// Resolver derives values and labels from options. A configured function
// takes precedence over a configured key; with neither, records are read at
// "value" / "label" and scalars resolve to themselves.
type Resolver struct {
	ValueFunc func(any) any
	ValueKey  string
	LabelFunc func(any) any
	LabelKey  string
}

// Value returns the comparison value of opt.
func (r Resolver) Value(opt any) any {
	return resolve(opt, r.ValueFunc, r.ValueKey, defaultValueKey)
}

// Label returns the display label of opt.
func (r Resolver) Label(opt any) any {
	return resolve(opt, r.LabelFunc, r.LabelKey, defaultLabelKey)
}

// Text renders the label of opt as a string. Nil labels render empty.
func (r Resolver) Text(opt any) string {
	return Stringify(r.Label(opt))
}

// Stringify renders a resolved scalar for display.
func Stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

func resolve(opt any, fn func(any) any, key, fallback string) any {
	if fn != nil {
		return fn(opt)
	}
	if !IsRecord(opt) {
		return opt
	}
	if key == "" {
		key = fallback
	}
	v, _ := Property(opt, key)
	return v
}
