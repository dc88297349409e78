package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readEntries(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read log: %v", err)
	}
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestTraceRespectsToggle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})

	SetTraceEnabled(false)
	Trace("menu.open", map[string]interface{}{"id": "x"})
	if entries := readEntries(t, path); len(entries) != 0 {
		t.Fatalf("expected no entries while tracing disabled, got %d", len(entries))
	}

	SetTraceEnabled(true)
	Trace("menu.open", map[string]interface{}{"id": "x"})
	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["event"] != "menu.open" {
		t.Fatalf("expected event menu.open, got %v", entries[0]["event"])
	}
	payload, ok := entries[0]["payload"].(map[string]interface{})
	if !ok || payload["id"] != "x" {
		t.Fatalf("unexpected payload %#v", entries[0]["payload"])
	}
}

func TestErrorAlwaysLogged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })
	SetTraceEnabled(false)

	Error(nil)
	Error(errors.New("boom"))
	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("expected a single error entry, got %d", len(entries))
	}
	if entries[0]["level"] != "error" || entries[0]["error"] != "boom" {
		t.Fatalf("unexpected entry %#v", entries[0])
	}
}
