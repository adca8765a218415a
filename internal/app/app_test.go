package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peridot-shell/internal/ipc"
	"peridot-shell/internal/window"
	"peridot-shell/pkg/config"
	"peridot-shell/pkg/logger"
	"peridot-shell/pkg/notify"
)

type discardNotifier struct{}

func (discardNotifier) Show(string, notify.NotificationType) error { return nil }

func headlessConfig(t *testing.T, session interface{}) *config.Config {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()

	sessionFile := filepath.Join(dir, "session.json")
	if session != nil {
		data, err := json.Marshal(session)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(sessionFile, data, 0600))
	}

	path := filepath.Join(dir, "shell.yaml")
	body := "headless: true\n" +
		"socket_path: " + filepath.Join(dir, "shell.sock") + "\n" +
		"session_file: " + sessionFile + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := config.FindConfig(path, logger.Nop(), nil)
	require.NoError(t, err)
	return cfg
}

func runShell(t *testing.T, cfg *config.Config) *Shell {
	t.Helper()
	s, err := NewShell(cfg, logger.Nop(), discardNotifier{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	select {
	case <-s.Ready():
	case err := <-errc:
		t.Fatalf("shell exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("shell did not become ready")
	}

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-errc)
	})
	return s
}

func listWindows(t *testing.T, cfg *config.Config) ipc.WindowsData {
	t.Helper()
	resp, err := ipc.SendRequest(cfg.GetSocketPath(), &ipc.Request{Command: ipc.CommandListWindows})
	require.NoError(t, err)
	require.Equal(t, ipc.StatusOK, resp.Status, resp.Error)

	var data ipc.WindowsData
	require.NoError(t, resp.DecodeData(&data))
	return data
}

func TestShell_StartsOnLoginWithoutSession(t *testing.T) {
	cfg := headlessConfig(t, nil)
	runShell(t, cfg)

	data := listWindows(t, cfg)
	assert.Equal(t, []string{window.LoginLabel}, data.Labels)
	assert.Equal(t, window.StateLoginOpen.String(), data.State)
}

func TestShell_StartsOnMainWithSession(t *testing.T) {
	cfg := headlessConfig(t, map[string]string{"principal": "aaaaa-aa"})
	runShell(t, cfg)

	data := listWindows(t, cfg)
	assert.Equal(t, []string{window.MainLabel}, data.Labels)
}

func TestShell_LoginToMainOverSocket(t *testing.T) {
	cfg := headlessConfig(t, nil)
	runShell(t, cfg)

	resp, err := ipc.SendRequest(cfg.GetSocketPath(), &ipc.Request{Command: ipc.CommandOpenMainWindow})
	require.NoError(t, err)
	require.Equal(t, ipc.StatusOK, resp.Status, resp.Error)

	req, err := ipc.NewRequest(ipc.CommandOpenDynamicWindow, ipc.OpenDynamicPayload{URL: "https://game.example/play"})
	require.NoError(t, err)
	resp, err = ipc.SendRequest(cfg.GetSocketPath(), req)
	require.NoError(t, err)
	require.Equal(t, ipc.StatusOK, resp.Status, resp.Error)

	data := listWindows(t, cfg)
	assert.Equal(t, []string{window.MainLabel, window.DefaultGameLabel}, data.Labels)
	assert.Equal(t, window.StateMainOpen.String(), data.State)
}

func TestNewShell_RequiresDisplayWhenNotHeadless(t *testing.T) {
	cfg := headlessConfig(t, nil)
	cfg.SetHeadless(false)
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("DISPLAY", "")
	t.Setenv("XDG_SESSION_TYPE", "tty")

	_, err := NewShell(cfg, logger.Nop(), discardNotifier{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty")
}
