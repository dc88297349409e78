package source

import (
	"context"
	"errors"
	"testing"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

type fakeClient struct {
	sessions    []*gotmux.Session
	windows     []*gotmux.Window
	clients     []*gotmux.Client
	sessionsErr error
	current     string
	closed      bool
}

func (f *fakeClient) ListSessions() ([]*gotmux.Session, error) { return f.sessions, f.sessionsErr }

func (f *fakeClient) ListAllWindows() ([]*gotmux.Window, error) { return f.windows, nil }

func (f *fakeClient) ListClients() ([]*gotmux.Client, error) { return f.clients, nil }

func (f *fakeClient) DisplayMessage(target, format string) (string, error) {
	return f.current, nil
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func withStubTmux(t *testing.T, fake *fakeClient) {
	t.Helper()
	prev := newTmux
	newTmux = func(string) (tmuxClient, error) { return fake, nil }
	t.Cleanup(func() { newTmux = prev })
}

func TestTmuxSessions(t *testing.T) {
	fake := &fakeClient{
		sessions: []*gotmux.Session{
			{Name: "dev", Windows: 2, Attached: 1},
			{Name: "ops", Windows: 1, Attached: 1},
		},
		clients: []*gotmux.Client{
			{Name: "cc", Session: "ops", ControlMode: true},
			{Name: "tty", Session: "dev"},
		},
		current: "dev",
	}
	withStubTmux(t, fake)
	t.Setenv("TMUX_PANE", "%1")
	opts, err := Tmux{Kind: TmuxSessions}.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 2 {
		t.Fatalf("expected 2 options, got %d", len(opts))
	}
	dev := opts[0].(map[string]any)
	if dev["value"] != "dev" || dev["label"] != "dev  2 windows  (attached)" || dev["disable"] != true {
		t.Fatalf("unexpected dev option %v", dev)
	}
	ops := opts[1].(map[string]any)
	if ops["label"] != "ops   1 window" || ops["disable"] != false {
		t.Fatalf("unexpected ops option %v", ops)
	}
	if !fake.closed {
		t.Fatalf("expected client to be closed")
	}
}

func TestTmuxWindows(t *testing.T) {
	fake := &fakeClient{
		windows: []*gotmux.Window{
			{Id: "@1", Index: 0, Name: "main", Active: true, ActiveSessionsList: []string{"dev"}},
			{Id: "@2", Index: 1, Name: "logs", LinkedSessionsList: []string{"dev"}},
		},
		current: "dev",
	}
	withStubTmux(t, fake)
	t.Setenv("TMUX_PANE", "%1")
	opts, err := Tmux{Kind: TmuxWindows}.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	main := opts[0].(map[string]any)
	if main["value"] != "dev:0" || main["label"] != "dev:0  main" || main["disable"] != true {
		t.Fatalf("unexpected main window %v", main)
	}
	logs := opts[1].(map[string]any)
	if logs["value"] != "dev:1" || logs["disable"] != false {
		t.Fatalf("unexpected logs window %v", logs)
	}
}

func TestTmuxErrors(t *testing.T) {
	fake := &fakeClient{sessionsErr: errors.New("no server")}
	withStubTmux(t, fake)
	if _, err := (Tmux{Kind: TmuxSessions}).Load(context.Background()); err == nil {
		t.Fatalf("expected list error")
	}
	if _, err := (Tmux{Kind: "panes"}).Load(context.Background()); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestResolveSocketPath(t *testing.T) {
	t.Setenv("TMUX_POPUP_SELECT_SOCKET", "")
	t.Setenv("TMUX", "/tmp/tmux-1000/work,123,0")
	got, err := ResolveSocketPath("")
	if err != nil || got != "/tmp/tmux-1000/work" {
		t.Fatalf("expected socket from $TMUX, got %q (%v)", got, err)
	}
	t.Setenv("TMUX_POPUP_SELECT_SOCKET", "/custom")
	if got, _ := ResolveSocketPath(""); got != "/custom" {
		t.Fatalf("expected env socket, got %q", got)
	}
	if got, _ := ResolveSocketPath("/flag"); got != "/flag" {
		t.Fatalf("expected flag socket, got %q", got)
	}
}
