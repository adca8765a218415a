package commands

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peridot-shell/internal/ipc"
	"peridot-shell/internal/window"
	"peridot-shell/internal/wm"
	"peridot-shell/pkg/logger"
	"peridot-shell/pkg/notify"
)

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeNotifier) Show(message string, nType notify.NotificationType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, nType.String()+": "+message)
	return nil
}

func (f *fakeNotifier) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func (f *fakeNotifier) waitFor(t *testing.T, n int) []string {
	t.Helper()
	require.Eventually(t, func() bool { return len(f.all()) >= n }, 2*time.Second, 5*time.Millisecond)
	return f.all()
}

func startRouter(t *testing.T) (*Router, *wm.Memory, *fakeNotifier) {
	t.Helper()
	sub := wm.NewMemory()
	windows := window.NewManager(sub, logger.Nop(), window.WithTokenSource(&window.CounterTokens{}))
	n := &fakeNotifier{}
	r := NewRouter(windows, n, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return r, sub, n
}

func send(t *testing.T, r *Router, cmd ipc.CommandType, payload interface{}) *ipc.Response {
	t.Helper()
	req, err := ipc.NewRequest(cmd, payload)
	require.NoError(t, err)
	return r.Handle(context.Background(), req)
}

func TestRouter_OpenLoginThenMain(t *testing.T) {
	r, sub, n := startRouter(t)

	resp := send(t, r, ipc.CommandOpenLoginWindow, ipc.OpenLoginPayload{Stage: "updater"})
	require.Equal(t, ipc.StatusOK, resp.Status, resp.Error)
	assert.Equal(t, []string{window.LoginLabel}, sub.Labels())

	resp = send(t, r, ipc.CommandOpenMainWindow, nil)
	require.Equal(t, ipc.StatusOK, resp.Status, resp.Error)
	assert.Equal(t, []string{window.MainLabel}, sub.Labels())
	assert.Empty(t, n.all())
}

func TestRouter_OpenDynamicReturnsLabel(t *testing.T) {
	r, _, _ := startRouter(t)

	resp := send(t, r, ipc.CommandOpenDynamicWindow, ipc.OpenDynamicPayload{URL: "https://game.example/play"})
	require.Equal(t, ipc.StatusOK, resp.Status, resp.Error)

	var data ipc.OpenDynamicData
	require.NoError(t, resp.DecodeData(&data))
	assert.Equal(t, window.DefaultGameLabel, data.Label)

	resp = send(t, r, ipc.CommandOpenDynamicWindow, ipc.OpenDynamicPayload{URL: "https://game.example/play"})
	require.NoError(t, resp.DecodeData(&data))
	assert.Equal(t, window.DefaultGameLabel+"-1", data.Label)
}

func TestRouter_InvalidAddressNotifies(t *testing.T) {
	r, sub, n := startRouter(t)

	resp := send(t, r, ipc.CommandOpenDynamicWindow, ipc.OpenDynamicPayload{URL: "not a url"})
	assert.Equal(t, ipc.StatusError, resp.Status)
	assert.NotEmpty(t, resp.Error)
	assert.Empty(t, sub.Labels())

	msgs := n.waitFor(t, 1)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "ERROR: ")
}

func TestRouter_CreationFailureIsReported(t *testing.T) {
	r, sub, n := startRouter(t)
	sub.CreateHook = func(wm.WindowSpec) error { return errors.New("no display") }

	resp := send(t, r, ipc.CommandOpenMainWindow, nil)
	assert.Equal(t, ipc.StatusError, resp.Status)
	assert.Contains(t, resp.Error, "no display")
	assert.Len(t, n.waitFor(t, 1), 1)
}

func TestRouter_ListWindows(t *testing.T) {
	r, _, _ := startRouter(t)

	resp := send(t, r, ipc.CommandListWindows, nil)
	require.Equal(t, ipc.StatusOK, resp.Status)
	var data ipc.WindowsData
	require.NoError(t, resp.DecodeData(&data))
	assert.Empty(t, data.Labels)
	assert.Equal(t, window.StateNoneOpen.String(), data.State)

	send(t, r, ipc.CommandOpenMainWindow, nil)
	send(t, r, ipc.CommandOpenDynamicWindow, ipc.OpenDynamicPayload{URL: "https://game.example", Label: "arena"})

	resp = send(t, r, ipc.CommandListWindows, nil)
	require.NoError(t, resp.DecodeData(&data))
	assert.Equal(t, []string{window.MainLabel, "arena"}, data.Labels)
	assert.Equal(t, window.StateMainOpen.String(), data.State)
}

func TestRouter_UnknownCommand(t *testing.T) {
	r, _, n := startRouter(t)

	resp := r.Handle(context.Background(), &ipc.Request{Command: "greet"})
	assert.Equal(t, ipc.StatusError, resp.Status)
	assert.Contains(t, resp.Error, "unknown command")
	assert.Empty(t, n.all())
}

func TestRouter_BadPayload(t *testing.T) {
	r, _, _ := startRouter(t)

	resp := r.Handle(context.Background(), &ipc.Request{
		Command: ipc.CommandOpenDynamicWindow,
		Payload: []byte(`{"url": 42}`),
	})
	assert.Equal(t, ipc.StatusError, resp.Status)
}

func TestRouter_SerializesConcurrentCommands(t *testing.T) {
	r, sub, _ := startRouter(t)

	var inFlight, maxInFlight int
	var mu sync.Mutex
	sub.CreateHook = func(wm.WindowSpec) error {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()
		time.Sleep(time.Millisecond)
		mu.Lock()
		inFlight--
		mu.Unlock()
		return nil
	}

	req, err := ipc.NewRequest(ipc.CommandOpenDynamicWindow, ipc.OpenDynamicPayload{URL: "https://game.example"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Handle(context.Background(), req)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInFlight)
	assert.Len(t, sub.Labels(), 8)
}

func TestRouter_HandleAfterShutdown(t *testing.T) {
	r := NewRouter(nil, nil, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := r.Handle(ctx, &ipc.Request{Command: ipc.CommandOpenMainWindow})
	assert.Equal(t, ipc.StatusError, resp.Status)
}

// blockingNotifier holds every Show call until release is closed, like a
// modal dialog nobody has dismissed yet.
type blockingNotifier struct {
	shown   chan string
	release chan struct{}
}

func (b *blockingNotifier) Show(message string, _ notify.NotificationType) error {
	b.shown <- message
	<-b.release
	return nil
}

func TestRouter_BlockedNotificationDoesNotStallLoop(t *testing.T) {
	sub := wm.NewMemory()
	windows := window.NewManager(sub, logger.Nop())
	n := &blockingNotifier{shown: make(chan string, 1), release: make(chan struct{})}
	r := NewRouter(windows, n, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Run(ctx)
	}()
	t.Cleanup(func() {
		close(n.release)
		cancel()
		<-done
	})

	resp := send(t, r, ipc.CommandOpenDynamicWindow, ipc.OpenDynamicPayload{URL: "garbage"})
	assert.Equal(t, ipc.StatusError, resp.Status)

	select {
	case <-n.shown:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was never shown")
	}

	reqCtx, reqCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer reqCancel()
	resp = r.Handle(reqCtx, &ipc.Request{Command: ipc.CommandOpenMainWindow})
	require.Equal(t, ipc.StatusOK, resp.Status, resp.Error)
	assert.True(t, sub.WindowExists(window.MainLabel))
}
