package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"peridot-shell/internal/app"
	"peridot-shell/pkg/config"
	"peridot-shell/pkg/global"
	"peridot-shell/pkg/logger"
)

var (
	configPath string
	debugMode  bool
	headless   bool
)

var rootCmd = &cobra.Command{
	Use:   "peridot-shell",
	Short: "PeridotVault desktop shell",
	Long: `peridot-shell opens the PeridotVault login or main window depending on
whether a session exists, then serves window commands on a local socket.`,
	RunE:          runShell,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (JSON or YAML)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "run without a display, keeping windows in memory")
}

func newLogger() (*logger.Logger, error) {
	// Setup logging level
	logLevel := zerolog.InfoLevel
	if debugMode {
		logLevel = zerolog.DebugLevel
	}

	log, err := logger.NewLogger(
		logger.WithConsole(),
		logger.WithLevel(logLevel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

func runShell(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting PeridotVault shell",
		"version", version,
		"pid", os.Getpid(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
		"debug", debugMode)

	// Load configuration
	log.Debug("Loading configuration", "provided_path", configPath)
	cfg, err := config.FindConfig(configPath, log, embeddedAssets)
	if err != nil {
		log.Error("Failed to load configuration", err, "provided_path", configPath)
		return err
	}
	if headless {
		cfg.SetHeadless(true)
	}
	log.Info("Configuration loaded successfully",
		"socket_path", cfg.GetSocketPath(),
		"session_file", cfg.GetSessionFile(),
		"headless", cfg.IsHeadless())

	global.InitGlobals(cfg, log)

	shell, err := app.NewShell(cfg, log, global.GetNotifier())
	if err != nil {
		log.Error("Failed to create shell", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := shell.Run(ctx); err != nil {
		log.Error("Shell stopped with error", err)
		return err
	}
	log.Info("Shell stopped")
	return nil
}
