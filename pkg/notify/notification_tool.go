package notify

import (
	"context"
	"errors"
	"os/exec"
)

var errNoNotificationTool = errors.New("no notification tools available")

type notificationTool struct {
	name         string
	buildCommand func(ctx context.Context, tool string, title string, message string, nType NotificationType) *exec.Cmd
}

var notificationTools = []notificationTool{
	{
		name: "dunstify",
		buildCommand: func(ctx context.Context, tool string, title string, message string, nType NotificationType) *exec.Cmd {
			urgency := "normal"
			if nType == Error {
				urgency = "critical"
				title += " Error"
			}
			return exec.CommandContext(ctx, tool, "-a", Title, "-u", urgency, "-t", "5000", title, message)
		},
	},
	{
		name: "notify-send",
		buildCommand: func(ctx context.Context, tool string, title string, message string, nType NotificationType) *exec.Cmd {
			urgency := "normal"
			if nType == Error {
				urgency = "critical"
				title += " Error"
			}
			return exec.CommandContext(ctx, tool, "-a", Title, "-u", urgency, title, message)
		},
	},
	{
		name: "zenity",
		buildCommand: func(ctx context.Context, tool string, title string, message string, nType NotificationType) *exec.Cmd {
			flag := "--info"
			if nType == Error {
				flag = "--error"
			}
			return exec.CommandContext(ctx, tool, flag, "--text", message, "--title", title)
		},
	},
}

func (n *NotifyService) trySystemNotification(title string, message string, nType NotificationType) error {
	for _, tool := range notificationTools {
		path, err := n.lookPath(tool.name)
		if err != nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		err = n.run(tool.buildCommand(ctx, path, title, message, nType))
		cancel()
		if err != nil {
			n.log.Debug("Notification tool failed", "tool", tool.name, "error", err.Error())
			continue
		}
		n.log.Debug("Notification sent successfully",
			"tool", tool.name,
			"type", nType.String())
		return nil
	}
	return errNoNotificationTool
}
