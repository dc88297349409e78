package source

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
	"github.com/atomicstack/tmux-popup-select/internal/format/table"
)

// Tmux option kinds.
const (
	TmuxSessions = "sessions"
	TmuxWindows  = "windows"
)

// TmuxKinds lists every accepted tmux kind.
var TmuxKinds = []string{TmuxSessions, TmuxWindows}

type tmuxClient interface {
	ListSessions() ([]*gotmux.Session, error)
	ListAllWindows() ([]*gotmux.Window, error)
	ListClients() ([]*gotmux.Client, error)
	DisplayMessage(target, format string) (string, error)
	Close() error
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	if socketPath != "" {
		return gotmux.NewTmux(socketPath)
	}
	return gotmux.DefaultTmux()
}

// Tmux lists tmux sessions or windows as option records with "value",
// "label" and "disable" properties. The session or window the popup was
// launched from is disabled.
type Tmux struct {
	Socket string
	Kind   string
}

func (t Tmux) Name() string {
	return "tmux:" + t.Kind
}

func (t Tmux) Load(ctx context.Context) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	client, err := newTmux(t.Socket)
	if err != nil {
		return nil, fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()
	switch t.Kind {
	case TmuxSessions:
		return sessionOptions(client)
	case TmuxWindows:
		return windowOptions(client)
	default:
		return nil, fmt.Errorf("unknown tmux kind %q", t.Kind)
	}
}

func sessionOptions(client tmuxClient) ([]any, error) {
	sessions, err := client.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	current := currentSessionName(client)
	attached := attachedClients(client)
	out := make([]any, 0, len(sessions))
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		if s == nil {
			continue
		}
		isAttached := len(attached[s.Name]) > 0
		out = append(out, map[string]any{
			"value":    s.Name,
			"windows":  s.Windows,
			"attached": isAttached,
			"disable":  s.Name == current,
		})
		rows = append(rows, sessionColumns(s.Name, s.Windows, isAttached))
	}
	setLabels(out, table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight}))
	return out, nil
}

func windowOptions(client tmuxClient) ([]any, error) {
	windows, err := client.ListAllWindows()
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}
	current := currentSessionName(client)
	out := make([]any, 0, len(windows))
	rows := make([][]string, 0, len(windows))
	for _, w := range windows {
		if w == nil {
			continue
		}
		session := firstSession(w)
		id := fmt.Sprintf("%s:%d", session, w.Index)
		out = append(out, map[string]any{
			"value":   id,
			"session": session,
			"disable": session == current && w.Active,
		})
		rows = append(rows, []string{id, w.Name})
	}
	setLabels(out, table.Format(rows, nil))
	return out, nil
}

func sessionColumns(name string, windows int, attached bool) []string {
	count := fmt.Sprintf("%d window", windows)
	if windows != 1 {
		count += "s"
	}
	if attached {
		return []string{name, count, "(attached)"}
	}
	return []string{name, count}
}

func setLabels(options []any, labels []string) {
	for i, opt := range options {
		opt.(map[string]any)["label"] = labels[i]
	}
}

// attachedClients maps session names to real clients. Control-mode clients,
// including our own connection, are skipped.
func attachedClients(client tmuxClient) map[string][]string {
	clients, err := client.ListClients()
	if err != nil {
		return nil
	}
	result := make(map[string][]string)
	for _, c := range clients {
		if c == nil || c.ControlMode || c.Session == "" {
			continue
		}
		result[c.Session] = append(result[c.Session], c.Name)
	}
	return result
}

func currentSessionName(client tmuxClient) string {
	if pane := strings.TrimSpace(os.Getenv("TMUX_PANE")); pane != "" {
		if name, err := client.DisplayMessage(pane, "#{session_name}"); err == nil {
			if name = strings.TrimSpace(name); name != "" {
				return name
			}
		}
	}
	if clients, err := client.ListClients(); err == nil {
		for _, c := range clients {
			if c != nil && !c.ControlMode && c.Session != "" {
				return c.Session
			}
		}
	}
	return ""
}

func firstSession(w *gotmux.Window) string {
	if len(w.ActiveSessionsList) > 0 {
		return w.ActiveSessionsList[0]
	}
	if len(w.LinkedSessionsList) > 0 {
		return w.LinkedSessionsList[0]
	}
	return ""
}

// ResolveSocketPath picks the tmux socket: the flag value, then
// TMUX_POPUP_SELECT_SOCKET, then $TMUX, then the default socket location.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("TMUX_POPUP_SELECT_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}
