package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType names a command understood by the shell
type CommandType string

const (
	CommandOpenMainWindow    CommandType = "open_main_window"
	CommandOpenLoginWindow   CommandType = "open_login_window"
	CommandOpenDynamicWindow CommandType = "open_dynamic_window"
	CommandListWindows       CommandType = "list_windows"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Request is sent by a client, one per connection
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response answers a single Request
type Response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// OpenLoginPayload carries the optional stage hint of open_login_window.
type OpenLoginPayload struct {
	Stage string `json:"stage,omitempty"`
}

// OpenDynamicPayload carries the arguments of open_dynamic_window.
type OpenDynamicPayload struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
	Title string `json:"title,omitempty"`
}

type OpenDynamicData struct {
	Label string `json:"label"`
}

type WindowsData struct {
	Labels []string `json:"labels"`
	State  string   `json:"state"`
}

// NewRequest builds a request with an optional JSON payload
func NewRequest(command CommandType, payload interface{}) (*Request, error) {
	req := &Request{Command: command}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request payload: %w", err)
		}
		req.Payload = data
	}
	return req, nil
}

// DecodePayload unmarshals the request payload into v. An absent payload
// leaves v untouched.
func (r *Request) DecodePayload(v interface{}) error {
	if len(r.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Payload, v); err != nil {
		return fmt.Errorf("failed to parse %s payload: %w", r.Command, err)
	}
	return nil
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: StatusOK,
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: StatusError,
		Error:  errMsg,
	}
}

// DecodeData unmarshals the response data into v.
func (r *Response) DecodeData(v interface{}) error {
	if len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}
