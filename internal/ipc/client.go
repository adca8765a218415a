package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"peridot-shell/pkg/global"
)

const dialTimeout = 2 * time.Second

// SendRequest delivers req to the shell listening on socketPath and waits for
// its response.
func SendRequest(socketPath string, req *Request) (*Response, error) {
	log := global.GetLogger()

	log.Debug("Attempting to connect to socket server", "path", socketPath)

	conn, err := net.DialTimeout("unix", socketPath, dialTimeout)
	if err != nil {
		log.Error("Failed to connect to socket server", err)
		return nil, fmt.Errorf("failed to connect to shell at %s: %w", socketPath, err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(connDeadline))

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		log.Error("Failed to encode request", err)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	log.Debug("Request sent successfully", "command", string(req.Command))

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		log.Error("Failed to decode response", err)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug("Response received", "status", resp.Status, "error", resp.Error)
	return &resp, nil
}
