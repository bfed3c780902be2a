package main

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// beforeQuitEvent is the fire-and-forget shutdown notification the frontend
// may subscribe to for cleanup. It carries no payload and cannot delay or
// veto termination.
const beforeQuitEvent = "app:before-quit"

// wailsWindow is the production windowBackend. Each call resolves the Wails
// context through the App so anything racing startup blocks until the
// runtime is ready. The runtime calls report no errors; visibility is a
// best-effort physical reflection of the logical lifecycle state.
type wailsWindow struct {
	app *App
}

func (w *wailsWindow) ctx() context.Context {
	return w.app.waitForStartup()
}

func (w *wailsWindow) Show() {
	runtime.WindowShow(w.ctx())
}

func (w *wailsWindow) Hide() {
	runtime.WindowHide(w.ctx())
}

// Focus re-fronts the window. Wails has no discrete focus call;
// unminimise-then-show is how it asserts focus.
func (w *wailsWindow) Focus() {
	ctx := w.ctx()
	runtime.WindowUnminimise(ctx)
	runtime.WindowShow(ctx)
}

func (w *wailsWindow) EmitBeforeQuit() {
	runtime.EventsEmit(w.ctx(), beforeQuitEvent)
}

// Terminate asks the runtime to exit. Called at most once per process; the
// lifecycle is already StateTerminated, so the close callback this
// triggers lets the window close through.
func (w *wailsWindow) Terminate() {
	runtime.Quit(w.ctx())
}
