package desktop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peridot-shell/internal/wm"
	"peridot-shell/pkg/logger"
)

func envMap(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestDetectSession(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"wayland socket", map[string]string{"WAYLAND_DISPLAY": "wayland-0", "DISPLAY": ":0"}, "wayland"},
		{"x11 display", map[string]string{"DISPLAY": ":1", "XDG_SESSION_TYPE": "tty"}, "x11"},
		{"declared only", map[string]string{"XDG_SESSION_TYPE": "tty"}, "tty"},
		{"nothing", map[string]string{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectSession(envMap(tc.env)))
		})
	}
}

func TestNewManager_HeadlessUsesMemory(t *testing.T) {
	m, err := NewManager(logger.Nop(), Options{Headless: true, Getenv: envMap(nil)})
	require.NoError(t, err)
	assert.Equal(t, "headless", m.Name())
	_, ok := m.Substrate().(*wm.Memory)
	assert.True(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("headless loop did not stop on cancel")
	}
}

func TestNewManager_NoDisplayFails(t *testing.T) {
	_, err := NewManager(logger.Nop(), Options{Getenv: envMap(map[string]string{"XDG_SESSION_TYPE": "tty"})})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty")
}
