package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Option file formats.
const (
	FormatAuto  = "auto"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTOML  = "toml"
	FormatLines = "lines"
)

// Formats lists every accepted format name.
var Formats = []string{FormatAuto, FormatJSON, FormatYAML, FormatTOML, FormatLines}

// StdinPath selects standard input as the option file.
const StdinPath = "-"

// ErrNoOptions is returned when a document holds no option list.
var ErrNoOptions = errors.New("no options list found")

// File reads options from a file or standard input. Standard input is read
// once and cached, so later loads return the same list.
type File struct {
	Path   string
	Format string
	Stdin  io.Reader

	cached []byte
	read   bool
}

func (f *File) Name() string {
	if f.Path == StdinPath {
		return "stdin"
	}
	return "file:" + f.Path
}

func (f *File) Load(ctx context.Context) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := f.readAll()
	if err != nil {
		return nil, err
	}
	format := f.Format
	if format == "" || format == FormatAuto {
		format = DetectFormat(f.Path, data)
	}
	opts, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	return opts, nil
}

func (f *File) readAll() ([]byte, error) {
	if f.Path != StdinPath {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("read options: %w", err)
		}
		return data, nil
	}
	if f.read {
		return f.cached, nil
	}
	in := f.Stdin
	if in == nil {
		in = os.Stdin
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read options from stdin: %w", err)
	}
	f.cached = data
	f.read = true
	return data, nil
}

// DetectFormat guesses the format from the file extension, falling back to
// sniffing the content.
func DetectFormat(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".txt":
		return FormatLines
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	return FormatLines
}

// Parse decodes an option list. Structured formats accept either a top-level
// list or a document with an "options" list; TOML requires the latter.
func Parse(data []byte, format string) ([]any, error) {
	switch format {
	case FormatJSON:
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return optionList(doc)
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		if doc == nil {
			return []any{}, nil
		}
		return optionList(doc)
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
		return optionList(doc)
	case FormatLines:
		opts, err := parseLines(data)
		if err != nil {
			return nil, fmt.Errorf("parse lines: %w", err)
		}
		return opts, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func optionList(doc any) ([]any, error) {
	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if list, ok := v["options"].([]any); ok {
			return list, nil
		}
		// go-toml decodes arrays of tables as []map[string]any.
		if list, ok := v["options"].([]map[string]any); ok {
			out := make([]any, len(list))
			for i, item := range list {
				out[i] = item
			}
			return out, nil
		}
	}
	return nil, ErrNoOptions
}

// maxLineSize bounds a single option line.
const maxLineSize = 1 << 20

func parseLines(data []byte) ([]any, error) {
	out := []any{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
