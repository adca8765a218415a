package window

import (
	"errors"
	"fmt"
)

var (
	// ErrWindowCreation is the generic category of every failed open.
	ErrWindowCreation = errors.New("window creation failed")
	// ErrInvalidAddress marks addresses rejected before any surface exists.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrSurfaceCreation marks failures reported by the substrate on create.
	ErrSurfaceCreation = errors.New("surface creation failed")
	// ErrSurfaceClose marks failures reported by the substrate on close.
	ErrSurfaceClose = errors.New("surface close failed")
	// ErrNotReserved is returned when OpenReserved gets a dynamic kind.
	ErrNotReserved = errors.New("kind is not reserved")
)

// AddressError reports a rejected content address. The parse diagnostic is
// kept as text only.
type AddressError struct {
	Raw    string
	Reason string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s: invalid address %q: %s", ErrWindowCreation, e.Raw, e.Reason)
}

func (e *AddressError) Is(target error) bool {
	return target == ErrInvalidAddress || target == ErrWindowCreation
}

type surfaceOp string

const (
	opCreate surfaceOp = "create"
	opClose  surfaceOp = "close"
)

// SurfaceError wraps a substrate failure for one label.
type SurfaceError struct {
	Op    surfaceOp
	Label string
	Err   error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("failed to %s window %q: %v", e.Op, e.Label, e.Err)
}

func (e *SurfaceError) Unwrap() error {
	return e.Err
}

func (e *SurfaceError) Is(target error) bool {
	switch e.Op {
	case opCreate:
		return target == ErrSurfaceCreation || target == ErrWindowCreation
	case opClose:
		return target == ErrSurfaceClose
	}
	return false
}
