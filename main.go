package main

import (
	"context"
	"embed"
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	// Close policy and hotkey are read once; neither is reconfigurable at
	// runtime.
	cfg := NewConfigService().Load()

	app := NewApp(cfg)

	if hk, err := NewHotkeyService(cfg.Hotkey); err != nil {
		log.Printf("hotkey: %q: %v, continuing without a global hotkey", cfg.Hotkey, err)
	} else {
		app.SetHotkeyService(hk)
	}

	// Application menu mirrors the tray entries for keyboard access while
	// the window is focused.
	appMenu := menu.NewMenu()
	fileMenu := appMenu.AddSubmenu("Nodes")
	fileMenu.AddText("Show Nodes", keys.CmdOrCtrl("n"), func(_ *menu.CallbackData) {
		app.lifecycle.Activate()
	})
	fileMenu.AddSeparator()
	fileMenu.AddText("Quit", keys.CmdOrCtrl("q"), func(_ *menu.CallbackData) {
		app.lifecycle.RequestQuit()
	})

	err := wails.Run(&options.App{
		Title:  "Nodes",
		Width:  1024,
		Height: 700,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 18, G: 18, B: 22, A: 1},
		OnStartup: func(ctx context.Context) {
			app.startup(ctx)
			// Tray must come up after the native run loop is live.
			StartSystray(app)
		},
		OnBeforeClose: app.beforeClose,
		// Single-instance guard: the losing process forwards its argv via
		// the platform lock's IPC and exits before any window is created;
		// the OS releases the lock on crash.
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               "nodes-desktop-instance",
			OnSecondInstanceLaunch: app.onSecondInstanceLaunch,
		},
		Bind: []interface{}{
			app,
		},
		Menu: appMenu,
		Mac: &mac.Options{
			TitleBar:   mac.TitleBarDefault(),
			Appearance: mac.NSAppearanceNameDarkAqua,
			About: &mac.AboutInfo{
				Title:   "Nodes",
				Message: "Nodes desktop shell",
			},
		},
	})

	if err != nil {
		log.Fatalf("fatal: wails.Run failed: %v", err)
	}
}
