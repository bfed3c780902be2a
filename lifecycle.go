package main

import (
	"log"
	"sync"
	"time"
)

// LifecycleState is the single source of truth for window visibility and
// the shutdown phase. All mutations funnel through the Lifecycle methods.
type LifecycleState int

const (
	StateVisible LifecycleState = iota
	StateHidden
	StateShuttingDown
	StateTerminated
)

func (s LifecycleState) String() string {
	switch s {
	case StateVisible:
		return "running-visible"
	case StateHidden:
		return "running-hidden"
	case StateShuttingDown:
		return "shutting-down"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Grace periods between the before-quit notification and forced process
// termination. Policy constants: a close-driven quit gets a shorter window
// than an explicit tray/menu quit.
const (
	closeQuitGrace = 200 * time.Millisecond
	trayQuitGrace  = 500 * time.Millisecond
)

// windowBackend abstracts the platform window so the state machine is
// testable without a running webview. All operations are best-effort; the
// logical state advances whether or not the platform call lands.
type windowBackend interface {
	Show()
	Hide()
	Focus()
	EmitBeforeQuit()
	Terminate()
}

// Lifecycle owns the window-visibility/shutdown state machine. Wails
// callbacks, the systray click loop, the hotkey listener and the
// second-instance handler all arrive on different goroutines, so the mutex
// is the single arbitration point for every transition.
type Lifecycle struct {
	mu          sync.Mutex
	state       LifecycleState
	quitOnClose bool
	window      windowBackend

	// schedule arms the one-shot shutdown timer. Swapped for a recorder in
	// tests so grace durations are inspected, not slept on.
	schedule func(time.Duration, func())
}

// NewLifecycle creates the controller in StateVisible. quitOnClose selects
// the close policy: false hides to tray, true starts the shutdown protocol.
func NewLifecycle(window windowBackend, quitOnClose bool) *Lifecycle {
	return &Lifecycle{
		state:       StateVisible,
		quitOnClose: quitOnClose,
		window:      window,
		schedule:    func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() LifecycleState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// RequestClose handles the OS close gesture. The gesture is always
// intercepted while the app is running: under minimize-to-tray the window
// hides, under quit-on-close the shutdown protocol starts. A close that
// races an in-flight shutdown is a no-op. Returns true when the native
// close must be suppressed; only the terminate path lets it through.
func (l *Lifecycle) RequestClose() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case StateTerminated:
		// Terminate() re-enters here via the runtime's close callback.
		return false
	case StateShuttingDown:
		return true
	}

	if l.quitOnClose {
		l.beginShutdownLocked(closeQuitGrace)
		return true
	}

	l.state = StateHidden
	l.window.Hide()
	log.Printf("lifecycle: close intercepted, window hidden to tray")
	return true
}

// Activate shows and focuses the window. Idempotent: from StateVisible it
// only re-asserts focus. No-op once shutdown has begun.
func (l *Lifecycle) Activate() {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case StateShuttingDown, StateTerminated:
		return
	case StateHidden:
		l.state = StateVisible
		l.window.Show()
		log.Printf("lifecycle: window restored from tray")
	}
	l.window.Focus()
}

// RequestQuit starts the shutdown protocol with the tray-quit grace period.
// No-op if shutdown is already in flight.
func (l *Lifecycle) RequestQuit() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateShuttingDown || l.state == StateTerminated {
		return
	}
	l.beginShutdownLocked(trayQuitGrace)
}

// beginShutdownLocked enters StateShuttingDown, notifies the frontend and
// arms the termination timer. Caller holds mu. The notification is
// fire-and-forget and is emitted before the timer is armed; termination
// never waits for the frontend to react.
func (l *Lifecycle) beginShutdownLocked(grace time.Duration) {
	l.state = StateShuttingDown
	l.window.EmitBeforeQuit()
	log.Printf("lifecycle: shutting down, forced exit in %v", grace)
	l.schedule(grace, l.terminate)
}

// terminate runs on the timer goroutine once the grace period elapses.
// Termination is unconditional and never retried. The state flips to
// StateTerminated before the platform call so the re-entrant close
// callback lets the window close through; Terminate itself runs outside
// the lock for the same reason.
func (l *Lifecycle) terminate() {
	l.mu.Lock()
	if l.state == StateTerminated {
		l.mu.Unlock()
		return
	}
	l.state = StateTerminated
	l.mu.Unlock()

	log.Printf("lifecycle: grace period elapsed, terminating")
	l.window.Terminate()
}
