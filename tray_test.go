package main

import "testing"

// recordingActions counts the lifecycle calls the tray dispatch makes.
type recordingActions struct {
	activates int
	quits     int
}

func (r *recordingActions) Activate()    { r.activates++ }
func (r *recordingActions) RequestQuit() { r.quits++ }

func TestDispatchTrayMenu(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		wantActivates int
		wantQuits     int
	}{
		{name: "show activates", id: trayMenuShow, wantActivates: 1},
		{name: "quit requests shutdown", id: trayMenuQuit, wantQuits: 1},
		{name: "unknown id is ignored", id: "settings"},
		{name: "empty id is ignored", id: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingActions{}
			dispatchTrayMenu(rec, tt.id)
			if rec.activates != tt.wantActivates {
				t.Errorf("activates = %d; want %d", rec.activates, tt.wantActivates)
			}
			if rec.quits != tt.wantQuits {
				t.Errorf("quits = %d; want %d", rec.quits, tt.wantQuits)
			}
		})
	}
}

func TestDispatchTrayClickLeftActivates(t *testing.T) {
	rec := &recordingActions{}
	dispatchTrayClick(rec, trayButtonLeft)
	if rec.activates != 1 {
		t.Errorf("activates = %d; want 1", rec.activates)
	}
	if rec.quits != 0 {
		t.Errorf("quits = %d; want 0", rec.quits)
	}
}

func TestDispatchTrayClickOtherButtonsNoOp(t *testing.T) {
	rec := &recordingActions{}
	dispatchTrayClick(rec, trayButtonOther)
	if rec.activates != 0 || rec.quits != 0 {
		t.Errorf("non-left click produced effects: activates=%d quits=%d", rec.activates, rec.quits)
	}
}

// Dispatch drives the real state machine the same way it drives the
// recorder: tray quit from hidden still reaches ShuttingDown.
func TestDispatchQuitFromHidden(t *testing.T) {
	lc, w, s := newTestLifecycle(false)

	lc.RequestClose() // hide to tray first
	dispatchTrayMenu(lc, trayMenuQuit)

	if got := lc.State(); got != StateShuttingDown {
		t.Errorf("state = %v; want %v", got, StateShuttingDown)
	}
	if w.beforeQuits != 1 {
		t.Errorf("beforeQuits = %d; want 1", w.beforeQuits)
	}
	if len(s.durations) != 1 || s.durations[0] != trayQuitGrace {
		t.Errorf("armed durations = %v; want [%v]", s.durations, trayQuitGrace)
	}
}
