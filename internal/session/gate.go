package session

import (
	"peridot-shell/internal/window"
	"peridot-shell/pkg/core"
)

// Opener is the part of the window manager the gate drives.
type Opener interface {
	OpenReserved(kind window.Kind) error
}

// Gate picks the first window at process start.
type Gate struct {
	oracle Oracle
	log    core.Logger
}

func NewGate(oracle Oracle, log core.Logger) *Gate {
	return &Gate{oracle: oracle, log: log}
}

// DecideInitialSurface asks the oracle once: main with a valid session,
// login otherwise.
func (g *Gate) DecideInitialSurface() window.Kind {
	if g.oracle.IsLoggedIn() {
		g.log.Info("Valid session found, starting on main window")
		return window.KindMain
	}
	g.log.Info("No valid session, starting on login window")
	return window.KindLogin
}

// Route decides the initial kind and opens it.
func (g *Gate) Route(o Opener) (window.Kind, error) {
	kind := g.DecideInitialSurface()
	if err := o.OpenReserved(kind); err != nil {
		g.log.Error("Failed to open initial window", err, "kind", kind.String())
		return kind, err
	}
	return kind, nil
}
