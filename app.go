package main

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/options"
)

// hotkeyStarter is the minimal interface the App needs from HotkeyService.
// Using an interface keeps real CGo goroutines out of unit tests.
type hotkeyStarter interface {
	Start(ctx context.Context, onTrigger func()) error
	IsRegistered() bool
}

// App is the process-wide application instance. It owns the Wails context,
// the lifecycle state machine and the supporting services. ctx is guarded
// by mu. startupCh is closed once startup() fires so callers that arrive
// before Wails is ready can wait.
type App struct {
	mu        sync.RWMutex
	ctx       context.Context
	startupCh chan struct{}
	once      sync.Once

	lifecycle  *Lifecycle
	config     Config
	loginItems *LoginItemService
	hotkeys    hotkeyStarter // nil in unit tests; main.go injects the real service
}

// NewApp wires the application instance for the given startup config. The
// window backend resolves its context lazily, so the lifecycle exists (and
// is testable) before Wails runs.
func NewApp(cfg Config) *App {
	svc, err := NewLoginItemService()
	if err != nil {
		log.Printf("warning: failed to create LoginItemService: %v", err)
	}
	a := &App{
		startupCh:  make(chan struct{}),
		config:     cfg,
		loginItems: svc,
	}
	a.lifecycle = NewLifecycle(&wailsWindow{app: a}, cfg.QuitOnClose())
	return a
}

// SetHotkeyService injects the hotkey service (called by main.go before wails.Run).
func (a *App) SetHotkeyService(hs hotkeyStarter) {
	a.hotkeys = hs
}

// startup is called by Wails when the runtime is ready.
func (a *App) startup(ctx context.Context) {
	a.mu.Lock()
	a.ctx = ctx
	a.mu.Unlock()
	a.once.Do(func() { close(a.startupCh) })

	// Global hotkey funnels into the same activation entry point as the
	// tray. Registration failure is non-fatal; the tray remains the
	// canonical way back to the window.
	if a.hotkeys != nil {
		if err := a.hotkeys.Start(ctx, a.lifecycle.Activate); err != nil {
			if errors.Is(err, ErrHotkeyConflict) {
				log.Printf("hotkey: %s is already registered by another app, continuing without it", a.config.Hotkey)
			} else {
				log.Printf("hotkey: failed to register: %v", err)
			}
		}
	}
}

// beforeClose intercepts the OS close gesture. Returning true prevents the
// native close; the lifecycle decides whether that means hide or shutdown.
func (a *App) beforeClose(_ context.Context) bool {
	return a.lifecycle.RequestClose()
}

// onSecondInstanceLaunch runs in the primary instance when a duplicate
// launch is detected. The duplicate has already forwarded its arguments
// and exited without creating a window; all that is left is to surface ours.
func (a *App) onSecondInstanceLaunch(data options.SecondInstanceData) {
	log.Printf("instance: duplicate launch detected (args: %v), activating", data.Args)
	a.lifecycle.Activate()
}

// waitForStartup blocks until Wails has initialised (startup() has been called).
func (a *App) waitForStartup() context.Context {
	<-a.startupCh
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ctx
}

// ShowWindow surfaces the main window. Bound to the frontend.
func (a *App) ShowWindow() {
	go a.lifecycle.Activate()
}

// Quit starts the graceful shutdown. Bound to the frontend.
func (a *App) Quit() {
	go a.lifecycle.RequestQuit()
}

// GetCloseAction returns the close policy the shell was started with.
func (a *App) GetCloseAction() string {
	return a.config.CloseAction
}

// GetLaunchAtLogin reports whether the app is registered as a login item.
func (a *App) GetLaunchAtLogin() bool {
	if a.loginItems == nil {
		return false
	}
	return a.loginItems.IsEnabled()
}

// SetLaunchAtLogin enables or disables the launch-at-login login item.
func (a *App) SetLaunchAtLogin(enabled bool) error {
	if a.loginItems == nil {
		return nil
	}
	if enabled {
		execPath, err := os.Executable()
		if err != nil {
			return err
		}
		return a.loginItems.Enable(execPath)
	}
	return a.loginItems.Disable()
}
