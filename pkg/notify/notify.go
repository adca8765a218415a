package notify

import (
	"context"
	"os/exec"
	"time"

	"peridot-shell/pkg/core"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	Error NotificationType = iota
	Info
)

func (t NotificationType) String() string {
	if t == Info {
		return "INFO"
	}
	return "ERROR"
}

// Title is the summary line shown by desktop notification tools.
const Title = "PeridotVault"

// DefaultTimeout bounds each external notification command.
const DefaultTimeout = 10 * time.Second

// NotifyService surfaces shell failures to the desktop user.
type NotifyService struct {
	log           core.Logger
	notifyCommand string
	timeout       time.Duration

	lookPath func(file string) (string, error)
	run      func(cmd *exec.Cmd) error
	terminal func() bool
}

// NewNotifyService creates a new notification service
func NewNotifyService(notifyCommand string, log core.Logger) *NotifyService {
	return &NotifyService{
		log:           log,
		notifyCommand: notifyCommand,
		timeout:       DefaultTimeout,
		lookPath:      exec.LookPath,
		run:           (*exec.Cmd).Run,
		terminal:      isRunningInTerminal,
	}
}

// Show displays a notification of the specified type. The configured command
// is tried first, then the desktop tools, then the terminal. When all of them
// fail the message only reaches the log. Every external command is killed
// after the service timeout.
func (n *NotifyService) Show(message string, nType NotificationType) error {
	if n.notifyCommand != "" {
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		err := n.executeNotifyCommand(ctx, message, nType)
		cancel()
		if err == nil {
			return nil
		}
		n.log.Warn("Custom notification command failed", "command", n.notifyCommand, "error", err.Error())
	}

	if err := n.trySystemNotification(Title, message, nType); err == nil {
		return nil
	}

	if n.terminal() {
		return n.printToTerminal(Title, message, nType)
	}

	n.writeToLog(message, nType)
	return nil
}

// executeNotifyCommand runs the configured command with the type and message
// as separate arguments, so the message is never interpreted by a shell.
func (n *NotifyService) executeNotifyCommand(ctx context.Context, message string, nType NotificationType) error {
	n.log.Debug("Executing notify command", "command", n.notifyCommand, "type", nType.String())
	return n.run(exec.CommandContext(ctx, n.notifyCommand, nType.String(), message))
}
