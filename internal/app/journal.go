package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/tmux-popup-select/internal/selection"
	"github.com/atomicstack/tmux-popup-select/internal/ui/command"
	"github.com/rs/zerolog"
)

// Journal appends outbound control events as JSON lines. A nil Journal
// drops everything.
type Journal struct {
	logger zerolog.Logger
	closer io.Closer
}

func openJournal(path string) (*Journal, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create events directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	j := NewJournal(f)
	j.closer = f
	return j, nil
}

// NewJournal writes events to w.
func NewJournal(w io.Writer) *Journal {
	return &Journal{logger: zerolog.New(w).With().Timestamp().Logger()}
}

// Record is a command.Listener.
func (j *Journal) Record(evt command.Event) {
	if j == nil {
		return
	}
	e := j.logger.Log().Str("event", evt.Name)
	switch p := evt.Payload.(type) {
	case selection.Input:
		e = e.Interface("value", p.Value)
	case selection.Add:
		e = e.Int("index", p.Index).Interface("value", p.Value)
	case selection.Remove:
		e = e.Int("index", p.Index).Interface("value", p.Value)
	}
	e.Send()
}

// Close releases the underlying file, if any.
func (j *Journal) Close() error {
	if j == nil || j.closer == nil {
		return nil
	}
	return j.closer.Close()
}
