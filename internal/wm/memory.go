package wm

import (
	"fmt"
	"sync"
)

// Memory is a headless substrate that keeps windows in a table. It backs the
// shell when no graphical session is available.
type Memory struct {
	mu      sync.Mutex
	windows map[string]WindowSpec
	order   []string

	// CreateHook, when set, runs before a window is registered. A non-nil
	// error aborts the creation.
	CreateHook func(spec WindowSpec) error
	// CloseHook, when set, runs before a window is removed. A non-nil error
	// aborts the close and leaves the window live.
	CloseHook func(label string) error
}

func NewMemory() *Memory {
	return &Memory{windows: make(map[string]WindowSpec)}
}

func (m *Memory) Name() string {
	return "headless"
}

func (m *Memory) WindowExists(label string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.windows[label]
	return ok
}

func (m *Memory) CreateWindow(spec WindowSpec) error {
	if err := spec.Geometry.Validate(); err != nil {
		return err
	}
	if m.CreateHook != nil {
		if err := m.CreateHook(spec); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.windows[spec.Label]; ok {
		return fmt.Errorf("%w: %s", ErrLabelTaken, spec.Label)
	}
	m.windows[spec.Label] = spec
	m.order = append(m.order, spec.Label)
	return nil
}

func (m *Memory) CloseWindow(label string) error {
	if m.CloseHook != nil {
		if err := m.CloseHook(label); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.windows[label]; !ok {
		return fmt.Errorf("%w: %s", ErrWindowNotFound, label)
	}
	delete(m.windows, label)
	for i, l := range m.order {
		if l == label {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Labels returns the live labels in creation order.
func (m *Memory) Labels() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// Spec returns the spec a live window was created with.
func (m *Memory) Spec(label string) (WindowSpec, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	spec, ok := m.windows[label]
	return spec, ok
}
