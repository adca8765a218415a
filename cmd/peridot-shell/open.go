package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"peridot-shell/internal/ipc"
	"peridot-shell/pkg/config"
	"peridot-shell/pkg/global"
	"peridot-shell/pkg/logger"
)

var (
	socketPath string
	loginStage string
	gameLabel  string
	gameTitle  string
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Ask the running shell to open a window",
}

var openMainCmd = &cobra.Command{
	Use:   "main",
	Short: "Open the main window and close the login window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := send(cmd, ipc.CommandOpenMainWindow, nil)
		return err
	},
}

var openLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Open the login window and close the main window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := send(cmd, ipc.CommandOpenLoginWindow, ipc.OpenLoginPayload{Stage: loginStage})
		return err
	},
}

var openGameCmd = &cobra.Command{
	Use:   "game <url>",
	Short: "Open a game window on an absolute URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := send(cmd, ipc.CommandOpenDynamicWindow, ipc.OpenDynamicPayload{
			URL:   args[0],
			Label: gameLabel,
			Title: gameTitle,
		})
		if err != nil {
			return err
		}
		var data ipc.OpenDynamicData
		if err := resp.DecodeData(&data); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), data.Label)
		return nil
	},
}

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List the windows of the running shell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := send(cmd, ipc.CommandListWindows, nil)
		if err != nil {
			return err
		}
		var data ipc.WindowsData
		if err := resp.DecodeData(&data); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "state: %s\n", data.State)
		if len(data.Labels) > 0 {
			fmt.Fprintf(out, "windows: %s\n", strings.Join(data.Labels, ", "))
		}
		return nil
	},
}

func init() {
	openCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "shell socket path (defaults to the configured one)")
	windowsCmd.Flags().StringVar(&socketPath, "socket", "", "shell socket path (defaults to the configured one)")

	openLoginCmd.Flags().StringVar(&loginStage, "stage", "", "stage hint passed to the login window")
	openGameCmd.Flags().StringVar(&gameLabel, "label", "", "requested window label")
	openGameCmd.Flags().StringVar(&gameTitle, "title", "", "window title")

	openCmd.AddCommand(openMainCmd, openLoginCmd, openGameCmd)
	rootCmd.AddCommand(openCmd, windowsCmd)
}

// newClientLogger writes to w, normally stderr, so stdout carries only
// command results. Below warn level is shown with --debug only.
func newClientLogger(w io.Writer) (*logger.Logger, error) {
	logLevel := zerolog.WarnLevel
	if debugMode {
		logLevel = zerolog.DebugLevel
	}
	return logger.NewLogger(
		logger.WithOutput(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}),
		logger.WithLevel(logLevel),
	)
}

// resolveSocket prefers --socket and falls back to the configured path.
func resolveSocket(log *logger.Logger) (string, error) {
	if socketPath != "" {
		return socketPath, nil
	}
	cfg, err := config.FindConfig(configPath, log, nil)
	if err != nil {
		return "", err
	}
	return cfg.GetSocketPath(), nil
}

func send(cmd *cobra.Command, command ipc.CommandType, payload interface{}) (*ipc.Response, error) {
	log, err := newClientLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	defer log.Close()

	path, err := resolveSocket(log)
	if err != nil {
		return nil, err
	}
	cfg := config.New(log)
	global.InitGlobals(cfg, log)

	req, err := ipc.NewRequest(command, payload)
	if err != nil {
		return nil, err
	}
	resp, err := ipc.SendRequest(path, req)
	if err != nil {
		return nil, err
	}
	if resp.Status != ipc.StatusOK {
		return nil, errors.New(resp.Error)
	}
	return resp, nil
}
