package window

import (
	"fmt"

	"peridot-shell/internal/wm"
	"peridot-shell/pkg/core"
)

// Manager opens and retires top-level windows. It keeps no registry of its
// own: every existence check asks the substrate. Calls are expected to be
// serialized by the caller's event loop.
type Manager struct {
	substrate wm.Substrate
	labels    *LabelAllocator
	log       core.Logger
}

type Option func(*Manager)

// WithTokenSource replaces the wall-clock disambiguator.
func WithTokenSource(tokens TokenSource) Option {
	return func(m *Manager) {
		m.labels = NewLabelAllocator(tokens)
	}
}

func NewManager(substrate wm.Substrate, log core.Logger, opts ...Option) *Manager {
	m := &Manager{
		substrate: substrate,
		labels:    NewLabelAllocator(nil),
		log:       log,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OpenReserved opens the login or main window. When the window is already
// live nothing happens. Otherwise the window is created first and the other
// reserved window, if live, is closed on a best-effort basis: a close failure
// is logged and never returned.
func (m *Manager) OpenReserved(kind Kind) error {
	if !kind.Reserved() {
		return fmt.Errorf("%w: %s", ErrNotReserved, kind)
	}

	label := kind.Label()
	if m.substrate.WindowExists(label) {
		m.log.Debug("Window already open, nothing to do", "kind", kind.String(), "label", label)
		return nil
	}

	preset := PresetFor(kind)
	spec := wm.WindowSpec{
		Label:    label,
		Title:    preset.Title,
		Geometry: preset.Geometry,
		Content:  wm.Bundled(preset.Document),
	}
	if err := m.create(kind, spec); err != nil {
		return err
	}

	m.retire(kind.counterpart().Label())
	return nil
}

// OpenDynamic opens a game window on address and returns its label. The
// address is validated before anything is built; an empty title falls back to
// DefaultGameTitle.
func (m *Manager) OpenDynamic(address, label, title string) (string, error) {
	u, err := ValidateAddress(address)
	if err != nil {
		m.log.Error("Rejected game window address", err, "address", address)
		return "", err
	}

	resolved := m.labels.Allocate(label, m.labelTaken)
	if label != "" && resolved != label {
		m.log.Debug("Adjusted requested label", "requested", label, "label", resolved)
	}
	if title == "" {
		title = DefaultGameTitle
	}

	preset := PresetFor(KindGame)
	spec := wm.WindowSpec{
		Label:    resolved,
		Title:    title,
		Geometry: preset.Geometry,
		Content:  wm.External(u),
	}
	if err := m.create(KindGame, spec); err != nil {
		return "", err
	}
	return resolved, nil
}

// labelTaken treats the reserved labels as busy even when their windows are
// closed, so a game window can never take over login or main.
func (m *Manager) labelTaken(label string) bool {
	return IsReservedLabel(label) || m.substrate.WindowExists(label)
}

// State reports which reserved windows are live right now.
func (m *Manager) State() State {
	login := m.substrate.WindowExists(LoginLabel)
	main := m.substrate.WindowExists(MainLabel)
	switch {
	case login && main:
		return StateHandoff
	case login:
		return StateLoginOpen
	case main:
		return StateMainOpen
	default:
		return StateNoneOpen
	}
}

// Labels lists the live windows when the substrate supports it.
func (m *Manager) Labels() ([]string, bool) {
	l, ok := m.substrate.(wm.Lister)
	if !ok {
		return nil, false
	}
	return l.Labels(), true
}

func (m *Manager) create(kind Kind, spec wm.WindowSpec) error {
	m.log.Debug("Creating window",
		"kind", kind.String(),
		"label", spec.Label,
		"content", spec.Content.String(),
		"substrate", m.substrate.Name())

	if err := m.substrate.CreateWindow(spec); err != nil {
		err = &SurfaceError{Op: opCreate, Label: spec.Label, Err: err}
		m.log.Error("Failed to create window", err, "kind", kind.String(), "label", spec.Label)
		return err
	}

	m.log.Info("Window opened", "kind", kind.String(), "label", spec.Label, "title", spec.Title)
	return nil
}

// retire closes label if it is live. Failures only reach the log.
func (m *Manager) retire(label string) {
	if !m.substrate.WindowExists(label) {
		return
	}
	if err := m.substrate.CloseWindow(label); err != nil {
		err = &SurfaceError{Op: opClose, Label: label, Err: err}
		m.log.Error("Failed to close window", err, "label", label)
		return
	}
	m.log.Info("Window closed", "label", label)
}
