// Package source loads the full option list handed to the select control and
// keeps it fresh while the control is running.
package source

import "context"

// Loader produces the current full option list.
type Loader interface {
	// Name identifies the loader in trace logs and status messages.
	Name() string
	Load(ctx context.Context) ([]any, error)
}

// Static serves a fixed option list.
type Static struct {
	Label   string
	Options []any
}

func (s Static) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

func (s Static) Load(context.Context) ([]any, error) {
	out := make([]any, len(s.Options))
	copy(out, s.Options)
	return out, nil
}
