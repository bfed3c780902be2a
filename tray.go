package main

import (
	_ "embed"
	"log"

	"github.com/energye/systray"
)

//go:embed assets/icon.png
var iconBytes []byte

// Stable menu identifiers: the contract between the tray's UI layer and
// its dispatch logic.
const (
	trayMenuShow = "show"
	trayMenuQuit = "quit"
)

// trayButton identifies which mouse button hit the tray icon.
type trayButton int

const (
	trayButtonLeft trayButton = iota
	trayButtonOther
)

// lifecycleActions is the slice of the Lifecycle the tray is allowed to drive.
type lifecycleActions interface {
	Activate()
	RequestQuit()
}

// StartSystray launches the system-tray icon in a background goroutine.
// It must be called AFTER Wails startup() fires so the native run loop is
// already running; calling it earlier deadlocks on macOS.
func StartSystray(app *App) {
	go systray.Run(
		func() { onSystrayReady(app) },
		func() { log.Printf("tray: exited") },
	)
}

func onSystrayReady(app *App) {
	systray.SetIcon(iconBytes)
	systray.SetTooltip("Nodes")

	// Fixed two-entry menu, built once and never mutated.
	mShow := systray.AddMenuItem("Show Nodes", "Show the main window")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit Nodes")

	// Left click surfaces the window. The menu stays on the platform's own
	// gesture (right click); the controller never opens it on activation.
	systray.SetOnClick(func(menu systray.IMenu) {
		dispatchTrayClick(app.lifecycle, trayButtonLeft)
	})
	systray.SetOnRClick(func(menu systray.IMenu) {
		if menu != nil {
			_ = menu.ShowMenu()
		}
	})

	mShow.Click(func() {
		dispatchTrayMenu(app.lifecycle, trayMenuShow)
	})
	mQuit.Click(func() {
		dispatchTrayMenu(app.lifecycle, trayMenuQuit)
		// Unwind the tray loop while the grace period runs.
		systray.Quit()
	})
}

// dispatchTrayMenu maps a stable menu identifier to a lifecycle action.
// Unknown identifiers are ignored: a forward-compatible no-op, not an error.
func dispatchTrayMenu(lc lifecycleActions, id string) {
	switch id {
	case trayMenuShow:
		log.Printf("tray: show selected")
		lc.Activate()
	case trayMenuQuit:
		log.Printf("tray: quit selected")
		lc.RequestQuit()
	default:
		log.Printf("tray: ignoring unknown menu id %q", id)
	}
}

// dispatchTrayClick maps an icon click to a lifecycle action. Only the
// left button activates; anything else is left to the platform.
func dispatchTrayClick(lc lifecycleActions, b trayButton) {
	if b != trayButtonLeft {
		return
	}
	lc.Activate()
}
