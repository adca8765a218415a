// Package desktop picks the window substrate for the current session and
// implements the fyne-backed one.
package desktop

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"

	"peridot-shell/internal/wm"
	"peridot-shell/pkg/core"
)

const AppID = "io.peridotvault.shell"

// Options selects and configures the substrate.
type Options struct {
	// Headless forces the in-memory substrate.
	Headless bool
	// ContentDir is where bundled documents live.
	ContentDir string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Manager owns the substrate chosen for the current session and its event
// loop.
type Manager struct {
	substrate wm.Substrate
	run       func(ctx context.Context) error
}

// NewManager creates a substrate based on the session type
func NewManager(log core.Logger, opts Options) (*Manager, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	sessionType := DetectSession(getenv)
	log.Info("Session type detected", "session", sessionType, "headless", opts.Headless)

	if opts.Headless {
		log.Debug("Initializing substrate", "type", "headless")
		return newHeadlessManager(), nil
	}

	switch sessionType {
	case "wayland", "x11":
		log.Debug("Initializing substrate", "type", "fyne", "session", sessionType)
		a := app.NewWithID(AppID)
		f := NewFyne(a, opts.ContentDir, log)
		m := &Manager{
			substrate: f,
			run: func(ctx context.Context) error {
				go func() {
					<-ctx.Done()
					a.Quit()
				}()
				a.Run()
				return nil
			},
		}
		log.Info("Window substrate initialized", "name", f.Name())
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported session type %q: no graphical display found (run with headless enabled)", sessionType)
	}
}

func newHeadlessManager() *Manager {
	return &Manager{
		substrate: wm.NewMemory(),
		run: func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		},
	}
}

// DetectSession reports "wayland", "x11" or the raw XDG_SESSION_TYPE value.
// A display socket wins over the declared session type.
func DetectSession(getenv func(string) string) string {
	if getenv("WAYLAND_DISPLAY") != "" {
		return "wayland"
	}
	if getenv("DISPLAY") != "" {
		return "x11"
	}
	return getenv("XDG_SESSION_TYPE")
}

// Substrate returns the underlying substrate
func (m *Manager) Substrate() wm.Substrate {
	return m.substrate
}

// Name returns the name of the current substrate
func (m *Manager) Name() string {
	return m.substrate.Name()
}

// Run blocks in the substrate event loop until ctx is cancelled or, for
// desktop substrates, the last window is closed.
func (m *Manager) Run(ctx context.Context) error {
	return m.run(ctx)
}
