package notify

import (
	"fmt"
	"io"
	"os"
)

var terminalOut io.Writer = os.Stderr

func (n *NotifyService) printToTerminal(title string, message string, nType NotificationType) error {
	var colorCode string
	var prefix string

	switch nType {
	case Error:
		colorCode = "\x1b[31m" // Red
		prefix = fmt.Sprintf("%s - Error", title)
	case Info:
		colorCode = "\x1b[32m" // Green
		prefix = fmt.Sprintf("%s - Info", title)
	}

	_, err := fmt.Fprintf(terminalOut, "%s%s: %s\x1b[0m\n", colorCode, prefix, message)
	return err
}

func (n *NotifyService) writeToLog(message string, nType NotificationType) {
	if nType == Error {
		n.log.Warn("Notification", "type", nType.String(), "message", message)
		return
	}
	n.log.Info("Notification", "type", nType.String(), "message", message)
}

func isRunningInTerminal() bool {
	// Check if stderr is connected to a terminal
	fileInfo, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
