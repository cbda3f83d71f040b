package shell

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

// ErrUnknownApp is returned for window ids outside the fixed app set.
var ErrUnknownApp = errors.New("shell: unknown app")

// AppID identifies one of the desktop applications.
type AppID string

// The fixed set of single-instance applications.
const (
	AppBrowser AppID = "browser"
	AppSnake   AppID = "snake"
	AppAbout   AppID = "about"
)

// App describes a launcher icon.
type App struct {
	ID          AppID
	Title       string
	Icon        string
	Description string
}

var apps = []App{
	{ID: AppBrowser, Title: "Browser", Icon: "[www]", Description: "Load a web page as text"},
	{ID: AppSnake, Title: "Snake", Icon: "[~o~]", Description: "Classic wraparound snake"},
	{ID: AppAbout, Title: "About DexOS", Icon: "[ i ]", Description: "System information and history"},
}

// Apps returns the launcher entries in display order.
func Apps() []App {
	return slices.Clone(apps)
}

// LookupApp returns the app with the given id.
func LookupApp(id AppID) (App, bool) {
	for _, a := range apps {
		if a.ID == id {
			return a, true
		}
	}
	return App{}, false
}

// WindowManager tracks which app windows are visible and their stacking
// order. Each app has at most one window. Interested parties register
// observers instead of wrapping the manager's methods.
type WindowManager struct {
	order      []AppID // Bottom to top; the last entry has focus
	onOpen     map[AppID][]func()
	onClose    map[AppID][]func()
	onInteract map[AppID][]func()
	logger     *log.Logger
}

// NewWindowManager creates a manager with every window hidden.
// A nil logger discards output.
func NewWindowManager(logger *log.Logger) *WindowManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &WindowManager{
		onOpen:     make(map[AppID][]func()),
		onClose:    make(map[AppID][]func()),
		onInteract: make(map[AppID][]func()),
		logger:     logger,
	}
}

// OnOpen registers fn to run every time the app's window is opened,
// including when an already open window is opened again.
func (wm *WindowManager) OnOpen(id AppID, fn func()) {
	wm.onOpen[id] = append(wm.onOpen[id], fn)
}

// OnClose registers fn to run when the app's window is closed.
func (wm *WindowManager) OnClose(id AppID, fn func()) {
	wm.onClose[id] = append(wm.onClose[id], fn)
}

// OnInteract registers fn to run when the user interacts with the window.
func (wm *WindowManager) OnInteract(id AppID, fn func()) {
	wm.onInteract[id] = append(wm.onInteract[id], fn)
}

// Open shows the app's window on top of the others and notifies observers.
func (wm *WindowManager) Open(id AppID) error {
	if _, ok := LookupApp(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownApp, id)
	}

	wm.order = slices.DeleteFunc(wm.order, func(a AppID) bool { return a == id })
	wm.order = append(wm.order, id)
	wm.logger.Debug("window opened", "app", id)

	notify(wm.onOpen[id])
	return nil
}

// Close hides the app's window. Closing a hidden window does nothing.
func (wm *WindowManager) Close(id AppID) error {
	if _, ok := LookupApp(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownApp, id)
	}
	if !wm.IsOpen(id) {
		return nil
	}

	wm.order = slices.DeleteFunc(wm.order, func(a AppID) bool { return a == id })
	wm.logger.Debug("window closed", "app", id)

	notify(wm.onClose[id])
	return nil
}

// Interact records a user interaction with an open window and focuses it.
// Interactions with hidden windows are ignored.
func (wm *WindowManager) Interact(id AppID) {
	if !wm.IsOpen(id) {
		return
	}
	wm.raise(id)
	notify(wm.onInteract[id])
}

// IsOpen reports whether the app's window is visible.
func (wm *WindowManager) IsOpen(id AppID) bool {
	return slices.Contains(wm.order, id)
}

// Focused returns the top window, if any.
func (wm *WindowManager) Focused() (AppID, bool) {
	if len(wm.order) == 0 {
		return "", false
	}
	return wm.order[len(wm.order)-1], true
}

// FocusNext raises the bottom-most window, cycling through open windows.
func (wm *WindowManager) FocusNext() {
	if len(wm.order) < 2 {
		return
	}
	wm.raise(wm.order[0])
}

// OpenWindows returns the visible windows from bottom to top.
func (wm *WindowManager) OpenWindows() []AppID {
	return slices.Clone(wm.order)
}

// CloseAll hides every window, topmost first.
func (wm *WindowManager) CloseAll() {
	for len(wm.order) > 0 {
		//nolint:errcheck // ids in order are always known
		wm.Close(wm.order[len(wm.order)-1])
	}
}

func (wm *WindowManager) raise(id AppID) {
	wm.order = slices.DeleteFunc(wm.order, func(a AppID) bool { return a == id })
	wm.order = append(wm.order, id)
}

func notify(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
