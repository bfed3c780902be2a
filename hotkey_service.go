package main

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"golang.design/x/hotkey"
)

// ErrHotkeyConflict is returned when the hotkey is already registered by another app.
var ErrHotkeyConflict = errors.New("hotkey: key combination already registered by another application")

// ErrHotkeyInvalid is returned when the hotkey string cannot be parsed.
var ErrHotkeyInvalid = errors.New("hotkey: invalid key combination")

// hotkeyBackend abstracts the real hotkey implementation so tests can use a mock.
type hotkeyBackend interface {
	Register() error
	Unregister() error
	Keydown() <-chan struct{}
}

// realHotkeyBackend wraps golang.design/x/hotkey for production use.
// The hotkey.Hotkey is created lazily in Register() to avoid spawning CGo
// goroutines at construction time, which would leak into unit tests.
type realHotkeyBackend struct {
	hk    *hotkey.Hotkey
	mods  []hotkey.Modifier
	key   hotkey.Key
	keyCh chan struct{} // buffered relay; filled once in Register()
}

func newRealBackend(combo string) (*realHotkeyBackend, error) {
	mods, key, err := parseHotkey(combo)
	if err != nil {
		return nil, err
	}
	return &realHotkeyBackend{mods: mods, key: key}, nil
}

func (r *realHotkeyBackend) Register() error {
	r.hk = hotkey.New(r.mods, r.key)
	if err := r.hk.Register(); err != nil {
		// Clean up any OS-level state before abandoning the object.
		_ = r.hk.Unregister()
		r.hk = nil
		return ErrHotkeyConflict
	}
	// Relay keydowns through a buffered channel; rapid presses beyond the
	// buffer are dropped rather than queued.
	r.keyCh = make(chan struct{}, 4)
	src := r.hk.Keydown()
	go func() {
		for range src {
			select {
			case r.keyCh <- struct{}{}:
			default:
			}
		}
		close(r.keyCh)
	}()
	return nil
}

func (r *realHotkeyBackend) Unregister() error {
	if r.hk == nil {
		return nil
	}
	return r.hk.Unregister()
}

func (r *realHotkeyBackend) Keydown() <-chan struct{} {
	return r.keyCh
}

// HotkeyService registers the global show-window hotkey. The combo is read
// once at startup alongside the close policy; there is no runtime rebind.
type HotkeyService struct {
	mu         sync.Mutex
	backend    hotkeyBackend
	combo      string
	registered atomic.Bool
}

// NewHotkeyService creates a HotkeyService for the given combo, backed by
// the real OS hotkey API. Returns ErrHotkeyInvalid for unparseable combos.
func NewHotkeyService(combo string) (*HotkeyService, error) {
	b, err := newRealBackend(combo)
	if err != nil {
		return nil, err
	}
	return &HotkeyService{backend: b, combo: combo}, nil
}

// newHotkeyServiceWithBackend wires in a custom backend (tests only).
func newHotkeyServiceWithBackend(b hotkeyBackend) *HotkeyService {
	return &HotkeyService{backend: b, combo: "ctrl+shift+n"}
}

// Start registers the hotkey and launches a listener goroutine that calls
// onTrigger on every press. The goroutine exits and the key is released
// when ctx is cancelled. Returns ErrHotkeyConflict if the key is taken.
func (s *HotkeyService) Start(ctx context.Context, onTrigger func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Register(); err != nil {
		return err
	}
	s.registered.Store(true)
	log.Printf("hotkey: %s registered", s.combo)

	keydown := s.backend.Keydown()
	go func() {
		defer func() {
			_ = s.backend.Unregister()
			s.registered.Store(false)
			log.Printf("hotkey: %s unregistered", s.combo)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-keydown:
				if !ok {
					return
				}
				log.Printf("hotkey: %s triggered", s.combo)
				onTrigger()
			}
		}
	}()
	return nil
}

// IsRegistered reports whether the hotkey is currently registered.
func (s *HotkeyService) IsRegistered() bool {
	return s.registered.Load()
}

// hotkeyNamedKeys maps key names to hotkey codes. Letter codes are not
// contiguous on macOS, so the table is explicit.
var hotkeyNamedKeys = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"space": hotkey.KeySpace,
}

// parseHotkey parses a combo like "ctrl+shift+n" into modifiers and a key.
// Only the cross-platform modifiers (ctrl, shift) are accepted; the final
// token must be a letter or "space".
func parseHotkey(combo string) ([]hotkey.Modifier, hotkey.Key, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(combo)), "+")
	if len(parts) < 2 {
		return nil, 0, ErrHotkeyInvalid
	}

	var mods []hotkey.Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.TrimSpace(p) {
		case "ctrl", "control":
			mods = append(mods, hotkey.ModCtrl)
		case "shift":
			mods = append(mods, hotkey.ModShift)
		default:
			return nil, 0, ErrHotkeyInvalid
		}
	}

	key, ok := hotkeyNamedKeys[strings.TrimSpace(parts[len(parts)-1])]
	if !ok {
		return nil, 0, ErrHotkeyInvalid
	}
	return mods, key, nil
}
