package main

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// mockHotkeyBackend simulates hotkey registration without touching OS APIs.
type mockHotkeyBackend struct {
	registered   atomic.Bool
	conflictMode bool          // if true, Register() returns an error
	keydownCh    chan struct{} // caller can send to simulate a keypress
}

func newMockBackend() *mockHotkeyBackend {
	return &mockHotkeyBackend{keydownCh: make(chan struct{}, 1)}
}

func (m *mockHotkeyBackend) Register() error {
	if m.conflictMode {
		return ErrHotkeyConflict
	}
	m.registered.Store(true)
	return nil
}

func (m *mockHotkeyBackend) Unregister() error {
	m.registered.Store(false)
	return nil
}

func (m *mockHotkeyBackend) Keydown() <-chan struct{} {
	return m.keydownCh
}

// simulatePress sends a synthetic keydown event to the mock backend.
func (m *mockHotkeyBackend) simulatePress() {
	m.keydownCh <- struct{}{}
}

func TestHotkeyServiceStart(t *testing.T) {
	mock := newMockBackend()
	svc := newHotkeyServiceWithBackend(mock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := svc.Start(ctx, func() {}); err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	if !svc.IsRegistered() {
		t.Error("IsRegistered() = false after Start(); want true")
	}
}

func TestHotkeyServiceStopViaContext(t *testing.T) {
	mock := newMockBackend()
	svc := newHotkeyServiceWithBackend(mock)

	ctx, cancel := context.WithCancel(context.Background())

	if err := svc.Start(ctx, func() {}); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	cancel()
	time.Sleep(20 * time.Millisecond)

	if svc.IsRegistered() {
		t.Error("IsRegistered() = true after context cancel; want false")
	}
}

func TestHotkeyServiceConflict(t *testing.T) {
	mock := newMockBackend()
	mock.conflictMode = true
	svc := newHotkeyServiceWithBackend(mock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := svc.Start(ctx, func() {})
	if err == nil {
		t.Fatal("Start() expected error for conflict; got nil")
	}
	if !errors.Is(err, ErrHotkeyConflict) {
		t.Errorf("Start() error = %v; want ErrHotkeyConflict", err)
	}
	if svc.IsRegistered() {
		t.Error("IsRegistered() = true after conflict; want false")
	}
}

func TestHotkeyServiceCallback(t *testing.T) {
	mock := newMockBackend()
	svc := newHotkeyServiceWithBackend(mock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	triggered := make(chan struct{}, 1)
	if err := svc.Start(ctx, func() { triggered <- struct{}{} }); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	// Give the listener goroutine a moment to start
	time.Sleep(10 * time.Millisecond)
	mock.simulatePress()

	select {
	case <-triggered:
		// callback was invoked
	case <-time.After(500 * time.Millisecond):
		t.Fatal("callback not invoked after simulated keypress")
	}
}

func TestNewHotkeyServiceInvalidCombo(t *testing.T) {
	if _, err := NewHotkeyService("bogus"); !errors.Is(err, ErrHotkeyInvalid) {
		t.Errorf("NewHotkeyService(\"bogus\") error = %v; want ErrHotkeyInvalid", err)
	}
}

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		combo   string
		wantErr bool
	}{
		{combo: "ctrl+shift+n"},
		{combo: "ctrl+space"},
		{combo: "shift+z"},
		{combo: "CTRL+SHIFT+N"},
		{combo: "n", wantErr: true},          // no modifier
		{combo: "ctrl+", wantErr: true},      // no key
		{combo: "hyper+n", wantErr: true},    // unknown modifier
		{combo: "ctrl+enter", wantErr: true}, // unsupported key
		{combo: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			_, _, err := parseHotkey(tt.combo)
			if tt.wantErr && err == nil {
				t.Errorf("parseHotkey(%q) = nil error; want ErrHotkeyInvalid", tt.combo)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("parseHotkey(%q) error = %v; want nil", tt.combo, err)
			}
		})
	}
}
