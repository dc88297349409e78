package config

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tmux-popup-select/internal/app"
	"github.com/atomicstack/tmux-popup-select/internal/source"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envMultiple     = "TMUX_POPUP_SELECT_MULTIPLE"
	envMaxValues    = "TMUX_POPUP_SELECT_MAX_VALUES"
	envOptionValue  = "TMUX_POPUP_SELECT_OPTION_VALUE"
	envOptionLabel  = "TMUX_POPUP_SELECT_OPTION_LABEL"
	envDisplayValue = "TMUX_POPUP_SELECT_DISPLAY_VALUE"
	envPlaceholder  = "TMUX_POPUP_SELECT_PLACEHOLDER"
	envCounter      = "TMUX_POPUP_SELECT_COUNTER"
	envFilter       = "TMUX_POPUP_SELECT_FILTER"
	envOptions      = "TMUX_POPUP_SELECT_OPTIONS"
	envFormat       = "TMUX_POPUP_SELECT_FORMAT"
	envTmux         = "TMUX_POPUP_SELECT_TMUX"
	envSocketPath   = "TMUX_POPUP_SELECT_SOCKET"
	envRefresh      = "TMUX_POPUP_SELECT_REFRESH"
	envValue        = "TMUX_POPUP_SELECT_VALUE"
	envEvents       = "TMUX_POPUP_SELECT_EVENTS"
	envWidth        = "TMUX_POPUP_SELECT_WIDTH"
	envHeight       = "TMUX_POPUP_SELECT_HEIGHT"
	envShowFooter   = "TMUX_POPUP_SELECT_FOOTER"
	envTrace        = "TMUX_POPUP_SELECT_TRACE"
	envLogFile      = "TMUX_POPUP_SELECT_LOG_FILE"
)

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tmux-popup-select", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	multiple := fs.Bool("multiple", envOrBool(env, envMultiple, false), "allow selecting more than one option")
	maxValues := fs.Int("max-values", envOrInt(env, envMaxValues, 0), "maximum number of selected options in multiple mode (0 is unlimited)")
	optionValue := fs.String("option-value", envOrDefault(env, envOptionValue, ""), "record property holding the option value (default \"value\")")
	optionLabel := fs.String("option-label", envOrDefault(env, envOptionLabel, ""), "record property holding the option label (default \"label\")")
	displayValue := fs.String("display-value", envOrDefault(env, envDisplayValue, ""), "text shown instead of the selected labels")
	placeholder := fs.String("placeholder", envOrDefault(env, envPlaceholder, ""), "text shown in the menu when there are no options")
	counter := fs.Bool("counter", envOrBool(env, envCounter, false), "show the selection counter in multiple mode")
	filter := fs.Bool("filter", envOrBool(env, envFilter, false), "enable type-to-filter")
	options := fs.String("options", envOrDefault(env, envOptions, ""), "option file path, or - for stdin")
	format := fs.String("format", envOrDefault(env, envFormat, source.FormatAuto), "option file format: auto, json, yaml, toml or lines")
	tmuxKind := fs.String("tmux", envOrDefault(env, envTmux, ""), "list tmux sessions or windows as options")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	refresh := fs.Duration("refresh", envOrDuration(env, envRefresh, 0), "reload options at this interval (0 loads once)")
	eventsPath := fs.String("events", envOrDefault(env, envEvents, ""), "append outbound events as JSON lines to this file")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	var values stringList
	fs.Var(&values, "value", "initially selected option value (repeatable)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if len(values) == 0 {
		values = envList(env, envValue)
	}

	cfg := Config{
		App: app.Config{
			Multiple:     *multiple,
			MaxValues:    *maxValues,
			OptionValue:  *optionValue,
			OptionLabel:  *optionLabel,
			DisplayValue: *displayValue,
			Placeholder:  *placeholder,
			Counter:      *counter,
			Filter:       *filter,
			OptionsPath:  *options,
			Format:       *format,
			Tmux:         *tmuxKind,
			SocketPath:   *socket,
			Refresh:      *refresh,
			Values:       []string(values),
			EventsPath:   *eventsPath,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"multiple":     strconv.FormatBool(*multiple),
			"maxValues":    strconv.Itoa(*maxValues),
			"optionValue":  *optionValue,
			"optionLabel":  *optionLabel,
			"displayValue": *displayValue,
			"placeholder":  *placeholder,
			"counter":      strconv.FormatBool(*counter),
			"filter":       strconv.FormatBool(*filter),
			"options":      *options,
			"format":       *format,
			"tmux":         *tmuxKind,
			"socket":       *socket,
			"refresh":      refresh.String(),
			"value":        values.String(),
			"events":       *eventsPath,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"trace":        strconv.FormatBool(*trace),
			"logFile":      *logFile,
		},
		Args: append([]string(nil), args...),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// envList splits a comma-separated variable, dropping empty entries.
func envList(env map[string]string, key string) stringList {
	var out stringList
	for _, part := range strings.Split(env[key], ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects configurations the application cannot run with.
func Validate(cfg Config) error {
	a := cfg.App
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	if a.MaxValues < 0 {
		return fmt.Errorf("max-values must be >= 0 (got %d)", a.MaxValues)
	}
	if a.Refresh < 0 {
		return fmt.Errorf("refresh must be >= 0 (got %s)", a.Refresh)
	}
	if a.Format != "" && !slices.Contains(source.Formats, a.Format) {
		return fmt.Errorf("unknown format %q (want one of %s)", a.Format, strings.Join(source.Formats, ", "))
	}
	if a.Tmux != "" && !slices.Contains(source.TmuxKinds, a.Tmux) {
		return fmt.Errorf("unknown tmux kind %q (want one of %s)", a.Tmux, strings.Join(source.TmuxKinds, ", "))
	}
	if a.Tmux != "" && a.OptionsPath != "" {
		return fmt.Errorf("-options and -tmux cannot be combined")
	}
	return nil
}
