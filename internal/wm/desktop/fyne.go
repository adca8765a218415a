package desktop

import (
	"fmt"
	"image/color"
	"path/filepath"
	"sort"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	fynedesktop "fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"peridot-shell/internal/wm"
	"peridot-shell/pkg/core"
)

// Fyne creates real desktop windows through a fyne application. Windows are
// tracked by label; a window closed by the user drops out of the table from
// the fyne close callback.
type Fyne struct {
	app        fyne.App
	contentDir string
	log        core.Logger

	mu      sync.Mutex
	windows map[string]fyne.Window
}

func NewFyne(a fyne.App, contentDir string, log core.Logger) *Fyne {
	return &Fyne{
		app:        a,
		contentDir: contentDir,
		log:        log,
		windows:    make(map[string]fyne.Window),
	}
}

func (f *Fyne) Name() string {
	return "fyne"
}

func (f *Fyne) WindowExists(label string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.windows[label]
	return ok
}

func (f *Fyne) CreateWindow(spec wm.WindowSpec) error {
	if err := spec.Geometry.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	if _, ok := f.windows[spec.Label]; ok {
		f.mu.Unlock()
		return fmt.Errorf("%w: %s", wm.ErrLabelTaken, spec.Label)
	}
	w := f.newWindow(spec)
	f.windows[spec.Label] = w
	f.mu.Unlock()

	g := spec.Geometry
	w.SetTitle(spec.Title)
	w.SetContent(f.render(spec))
	w.Resize(fyne.NewSize(g.Width, g.Height))
	w.SetFixedSize(!g.Resizable)
	if g.Centered {
		w.CenterOnScreen()
	}

	label := spec.Label
	w.SetOnClosed(func() {
		f.forget(label, w)
	})
	w.Show()

	f.log.Debug("Fyne window shown",
		"label", spec.Label,
		"size", fmt.Sprintf("%gx%g", g.Width, g.Height),
		"decorations", g.Decorations)
	return nil
}

func (f *Fyne) CloseWindow(label string) error {
	f.mu.Lock()
	w, ok := f.windows[label]
	if ok {
		delete(f.windows, label)
	}
	f.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", wm.ErrWindowNotFound, label)
	}
	w.Close()
	return nil
}

// Labels returns the live labels in lexical order.
func (f *Fyne) Labels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	labels := make([]string, 0, len(f.windows))
	for label := range f.windows {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// forget drops label only while it still points at w, so a stale callback
// cannot remove a newer window that reuses the label.
func (f *Fyne) forget(label string, w fyne.Window) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cur, ok := f.windows[label]; ok && cur == w {
		delete(f.windows, label)
		f.log.Debug("Fyne window closed externally", "label", label)
	}
}

// newWindow uses a splash window for borderless specs when the driver
// supports it.
func (f *Fyne) newWindow(spec wm.WindowSpec) fyne.Window {
	if !spec.Geometry.Decorations {
		if drv, ok := f.app.Driver().(fynedesktop.Driver); ok {
			return drv.CreateSplashWindow()
		}
	}
	return f.app.NewWindow(spec.Title)
}

func (f *Fyne) render(spec wm.WindowSpec) fyne.CanvasObject {
	g := spec.Geometry
	floor := canvas.NewRectangle(color.Transparent)
	floor.SetMinSize(fyne.NewSize(g.MinWidth, g.MinHeight))

	var body fyne.CanvasObject
	switch spec.Content.Kind {
	case wm.ContentExternal:
		body = widget.NewHyperlink(spec.Content.URL.String(), spec.Content.URL)
	default:
		body = widget.NewLabel(filepath.Join(f.contentDir, spec.Content.Path))
	}

	return container.NewStack(floor, container.NewCenter(body))
}
