package wm

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrWindowNotFound is returned when no live window carries the label.
	ErrWindowNotFound = errors.New("window not found")
	// ErrLabelTaken is returned when a live window already carries the label.
	ErrLabelTaken = errors.New("window label already in use")
	// ErrInvalidGeometry is returned for specs with non-positive sizes.
	ErrInvalidGeometry = errors.New("invalid window geometry")
)

// Substrate is the windowing system that owns the live windows. It is the
// single source of truth for which labels are currently in use.
type Substrate interface {
	// WindowExists reports whether a live window carries label
	WindowExists(label string) bool
	// CreateWindow builds and shows a window described by spec
	CreateWindow(spec WindowSpec) error
	// CloseWindow closes the live window carrying label
	CloseWindow(label string) error
	// Name returns the substrate name for logging/display
	Name() string
}

// Lister is implemented by substrates that can enumerate live windows.
type Lister interface {
	Labels() []string
}

// Geometry holds the size and chrome parameters of a window.
type Geometry struct {
	Width       float32
	Height      float32
	MinWidth    float32
	MinHeight   float32
	Resizable   bool
	Decorations bool
	Centered    bool
}

// Validate checks that every dimension is positive and that the minimum size
// fits inside the initial size.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 || g.MinWidth <= 0 || g.MinHeight <= 0 {
		return fmt.Errorf("%w: sizes must be positive (%gx%g, min %gx%g)",
			ErrInvalidGeometry, g.Width, g.Height, g.MinWidth, g.MinHeight)
	}
	if g.MinWidth > g.Width || g.MinHeight > g.Height {
		return fmt.Errorf("%w: minimum %gx%g exceeds size %gx%g",
			ErrInvalidGeometry, g.MinWidth, g.MinHeight, g.Width, g.Height)
	}
	return nil
}

type ContentKind int

const (
	// ContentBundled is a document shipped with the application.
	ContentBundled ContentKind = iota
	// ContentExternal is a validated absolute address.
	ContentExternal
)

// Content is what a window loads: a bundled document or an external address.
type Content struct {
	Kind ContentKind
	Path string
	URL  *url.URL
}

func Bundled(path string) Content {
	return Content{Kind: ContentBundled, Path: path}
}

func External(u *url.URL) Content {
	return Content{Kind: ContentExternal, URL: u}
}

func (c Content) String() string {
	switch c.Kind {
	case ContentExternal:
		if c.URL == nil {
			return ""
		}
		return c.URL.String()
	default:
		return "app://" + c.Path
	}
}

// WindowSpec describes a window to create.
type WindowSpec struct {
	Label    string
	Title    string
	Geometry Geometry
	Content  Content
}
