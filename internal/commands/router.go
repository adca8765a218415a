package commands

import (
	"context"
	"errors"
	"fmt"

	"peridot-shell/internal/ipc"
	"peridot-shell/internal/window"
	"peridot-shell/pkg/core"
	"peridot-shell/pkg/notify"
)

// ErrUnknownCommand is returned for command names the router does not serve.
var ErrUnknownCommand = errors.New("unknown command")

// Windows is the part of the lifecycle manager the router drives.
type Windows interface {
	OpenReserved(kind window.Kind) error
	OpenDynamic(address, label, title string) (string, error)
	State() window.State
	Labels() ([]string, bool)
}

// Notifier reports command failures to the desktop user.
type Notifier interface {
	Show(message string, nType notify.NotificationType) error
}

type job struct {
	req   *ipc.Request
	reply chan *ipc.Response
}

// Router is the shell's event loop. Every command runs on the goroutine that
// called Run, one at a time, in arrival order.
type Router struct {
	windows  Windows
	notifier Notifier
	log      core.Logger
	jobs     chan job
}

func NewRouter(windows Windows, notifier Notifier, log core.Logger) *Router {
	return &Router{
		windows:  windows,
		notifier: notifier,
		log:      log,
		jobs:     make(chan job),
	}
}

// Run executes queued commands until ctx is cancelled.
func (r *Router) Run(ctx context.Context) error {
	r.log.Debug("Command loop started")
	for {
		select {
		case <-ctx.Done():
			r.log.Debug("Command loop stopped")
			return nil
		case j := <-r.jobs:
			j.reply <- r.execute(j.req)
		}
	}
}

// Handle queues req on the event loop and waits for its response.
func (r *Router) Handle(ctx context.Context, req *ipc.Request) *ipc.Response {
	j := job{req: req, reply: make(chan *ipc.Response, 1)}
	select {
	case r.jobs <- j:
	case <-ctx.Done():
		return ipc.NewErrorResponse("shell is shutting down")
	}
	select {
	case resp := <-j.reply:
		return resp
	case <-ctx.Done():
		return ipc.NewErrorResponse("shell is shutting down")
	}
}

func (r *Router) execute(req *ipc.Request) *ipc.Response {
	data, err := r.dispatch(req)
	if err != nil {
		r.log.Error("Command failed", err, "command", string(req.Command))
		if !errors.Is(err, ErrUnknownCommand) && r.notifier != nil {
			go r.notify(err.Error())
		}
		return ipc.NewErrorResponse(err.Error())
	}

	resp, err := ipc.NewOKResponse(data)
	if err != nil {
		r.log.Error("Failed to build response", err, "command", string(req.Command))
		return ipc.NewErrorResponse(err.Error())
	}
	return resp
}

// notify runs off the event loop: notification tools may block until the
// user dismisses them.
func (r *Router) notify(message string) {
	if err := r.notifier.Show(message, notify.Error); err != nil {
		r.log.Warn("Failed to show notification", "error", err.Error())
	}
}

func (r *Router) dispatch(req *ipc.Request) (interface{}, error) {
	switch req.Command {
	case ipc.CommandOpenMainWindow:
		return nil, r.windows.OpenReserved(window.KindMain)

	case ipc.CommandOpenLoginWindow:
		var p ipc.OpenLoginPayload
		if err := req.DecodePayload(&p); err != nil {
			return nil, err
		}
		if p.Stage != "" {
			r.log.Debug("Login window requested", "stage", p.Stage)
		}
		return nil, r.windows.OpenReserved(window.KindLogin)

	case ipc.CommandOpenDynamicWindow:
		var p ipc.OpenDynamicPayload
		if err := req.DecodePayload(&p); err != nil {
			return nil, err
		}
		label, err := r.windows.OpenDynamic(p.URL, p.Label, p.Title)
		if err != nil {
			return nil, err
		}
		return ipc.OpenDynamicData{Label: label}, nil

	case ipc.CommandListWindows:
		labels, _ := r.windows.Labels()
		if labels == nil {
			labels = []string{}
		}
		return ipc.WindowsData{Labels: labels, State: r.windows.State().String()}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, req.Command)
	}
}
