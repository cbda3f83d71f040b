package shell

import (
	"errors"
	"slices"
	"testing"
)

func TestWindowOpenNotifies(t *testing.T) {
	wm := NewWindowManager(nil)
	opened := 0
	wm.OnOpen(AppSnake, func() { opened++ })

	if err := wm.Open(AppSnake); err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if !wm.IsOpen(AppSnake) {
		t.Error("snake window should be open")
	}
	if id, ok := wm.Focused(); !ok || id != AppSnake {
		t.Errorf("Focused() = %q, %v", id, ok)
	}

	// Reopening refocuses and notifies again.
	if err := wm.Open(AppBrowser); err != nil {
		t.Fatal(err)
	}
	if err := wm.Open(AppSnake); err != nil {
		t.Fatal(err)
	}
	if opened != 2 {
		t.Errorf("open observer called %d times, want 2", opened)
	}
	want := []AppID{AppBrowser, AppSnake}
	if got := wm.OpenWindows(); !slices.Equal(got, want) {
		t.Errorf("OpenWindows() = %v, want %v", got, want)
	}
}

func TestWindowObserversArePerApp(t *testing.T) {
	wm := NewWindowManager(nil)
	var calls []string
	wm.OnOpen(AppSnake, func() { calls = append(calls, "snake-open") })
	wm.OnOpen(AppBrowser, func() { calls = append(calls, "browser-open") })
	wm.OnClose(AppSnake, func() { calls = append(calls, "snake-close") })

	wm.Open(AppBrowser)
	wm.Open(AppSnake)
	wm.Close(AppSnake)
	wm.Close(AppSnake) // already hidden

	want := []string{"browser-open", "snake-open", "snake-close"}
	if !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestWindowUnknownApp(t *testing.T) {
	wm := NewWindowManager(nil)

	if err := wm.Open("paint"); !errors.Is(err, ErrUnknownApp) {
		t.Errorf("Open(paint) error = %v, want ErrUnknownApp", err)
	}
	if err := wm.Close("paint"); !errors.Is(err, ErrUnknownApp) {
		t.Errorf("Close(paint) error = %v, want ErrUnknownApp", err)
	}
	if len(wm.OpenWindows()) != 0 {
		t.Error("unknown app should not open a window")
	}
}

func TestWindowInteract(t *testing.T) {
	wm := NewWindowManager(nil)
	interactions := 0
	wm.OnInteract(AppSnake, func() { interactions++ })

	wm.Interact(AppSnake)
	if interactions != 0 {
		t.Error("interaction with a hidden window should be ignored")
	}

	wm.Open(AppSnake)
	wm.Open(AppAbout)
	wm.Interact(AppSnake)
	if interactions != 1 {
		t.Errorf("interactions = %d, want 1", interactions)
	}
	if id, _ := wm.Focused(); id != AppSnake {
		t.Errorf("Interact should focus the window, focused = %q", id)
	}
}

func TestWindowFocusNext(t *testing.T) {
	wm := NewWindowManager(nil)
	wm.FocusNext() // no windows, no panic

	wm.Open(AppBrowser)
	wm.Open(AppSnake)
	wm.Open(AppAbout)

	want := []AppID{AppBrowser, AppSnake, AppAbout}
	for _, id := range want {
		wm.FocusNext()
		if got, _ := wm.Focused(); got != id {
			t.Errorf("FocusNext() focused %q, want %q", got, id)
		}
	}
}

func TestWindowCloseAll(t *testing.T) {
	wm := NewWindowManager(nil)
	var closed []AppID
	for _, a := range Apps() {
		wm.OnClose(a.ID, func() { closed = append(closed, a.ID) })
		wm.Open(a.ID)
	}

	wm.CloseAll()

	if len(wm.OpenWindows()) != 0 {
		t.Errorf("OpenWindows() = %v after CloseAll", wm.OpenWindows())
	}
	want := []AppID{AppAbout, AppSnake, AppBrowser}
	if !slices.Equal(closed, want) {
		t.Errorf("close order = %v, want %v", closed, want)
	}
	if _, ok := wm.Focused(); ok {
		t.Error("nothing should be focused")
	}
}

func TestLookupApp(t *testing.T) {
	if _, ok := LookupApp(AppAbout); !ok {
		t.Error("about app missing")
	}
	if _, ok := LookupApp("x"); ok {
		t.Error("unexpected app x")
	}

	list := Apps()
	list[0].Title = "changed"
	if Apps()[0].Title == "changed" {
		t.Error("Apps() must return a copy")
	}
}
