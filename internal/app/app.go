package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"peridot-shell/internal/commands"
	"peridot-shell/internal/ipc"
	"peridot-shell/internal/session"
	"peridot-shell/internal/window"
	"peridot-shell/internal/wm/desktop"
	"peridot-shell/pkg/config"
	"peridot-shell/pkg/logger"
)

// Shell wires the window lifecycle manager to its substrate, the session gate
// and the command transport.
type Shell struct {
	cfg *config.Config
	log *logger.Logger

	wm      *desktop.Manager
	windows *window.Manager
	gate    *session.Gate
	router  *commands.Router
	server  *ipc.Server
}

// NewShell builds every component from cfg. Nothing is shown until Run.
func NewShell(cfg *config.Config, log *logger.Logger, notifier commands.Notifier) (*Shell, error) {
	log.Debug("Initializing shell",
		"socket_path", cfg.GetSocketPath(),
		"content_dir", cfg.GetContentDir(),
		"headless", cfg.IsHeadless())

	manager, err := desktop.NewManager(log, desktop.Options{
		Headless:   cfg.IsHeadless(),
		ContentDir: cfg.GetContentDir(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize window substrate: %w", err)
	}

	windows := window.NewManager(manager.Substrate(), log)
	router := commands.NewRouter(windows, notifier, log)

	return &Shell{
		cfg:     cfg,
		log:     log,
		wm:      manager,
		windows: windows,
		gate:    session.NewGate(session.NewFileOracle(cfg.GetSessionFile(), log), log),
		router:  router,
		server:  ipc.NewServer(cfg.GetSocketPath(), router, log),
	}, nil
}

// Ready is closed once the command socket accepts connections.
func (s *Shell) Ready() <-chan struct{} {
	return s.server.Ready()
}

// Windows exposes the lifecycle manager.
func (s *Shell) Windows() *window.Manager {
	return s.windows
}

// Run opens the initial window, then serves commands until ctx is cancelled
// or the substrate event loop ends. The substrate loop runs on the calling
// goroutine.
func (s *Shell) Run(ctx context.Context) error {
	s.log.Info("Starting shell", "substrate", s.wm.Name())

	kind, err := s.gate.Route(s.windows)
	if err != nil {
		return fmt.Errorf("failed to open %s window: %w", kind, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.router.Run(gctx)
	})
	g.Go(func() error {
		if err := s.server.Serve(gctx); err != nil {
			return fmt.Errorf("command server: %w", err)
		}
		return nil
	})

	loopErr := s.wm.Run(gctx)
	s.log.Info("Shutting down shell")
	cancel()

	return errors.Join(loopErr, g.Wait())
}
