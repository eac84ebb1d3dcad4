package toggler_test

import (
	"testing"

	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/terminal"
	"github.com/grovetools/launcher/testutil"
	"github.com/grovetools/launcher/toggler"
)

func newToggler() *config.TogglerCommand {
	return &config.TogglerCommand{
		Group:    "Serve",
		Command1: config.ToggleSide{Label: "Start", Command: "npm start"},
		Command2: config.ToggleSide{Label: "Stop"},
	}
}

func TestToggleAlternatesSides(t *testing.T) {
	host := testutil.NewFakeHost()
	r := toggler.NewRunner(toggler.NewState(), terminal.NewManager(host))
	tg := newToggler()

	if got := r.NextLabel(tg); got != "Start" {
		t.Fatalf("NextLabel() = %q, want Start", got)
	}

	// First invocation runs command1.
	if err := r.Toggle(tg); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	sess := host.LastSession(t)
	sent := sess.Sent()
	if len(sent) != 1 || sent[0] != "npm start\n" {
		t.Fatalf("sent = %q, want npm start", sent)
	}
	if got := r.NextLabel(tg); got != "Stop" {
		t.Errorf("NextLabel() after first toggle = %q, want Stop", got)
	}

	// Second invocation runs command2; empty command sends the interrupt.
	if err := r.Toggle(tg); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	sent = sess.Sent()
	if len(sent) != 2 || sent[1] != string([]byte{terminal.InterruptByte}) {
		t.Fatalf("sent = %q, want trailing interrupt byte", sent)
	}
	if got := r.NextLabel(tg); got != "Start" {
		t.Errorf("NextLabel() after second toggle = %q, want Start", got)
	}

	// Both invocations reuse one terminal and reveal it.
	if len(host.Sessions()) != 1 {
		t.Errorf("created %d sessions, want 1", len(host.Sessions()))
	}
	if sess.Revealed() != 2 {
		t.Errorf("Revealed() = %d, want 2", sess.Revealed())
	}
}

func TestToggleNotifiesDisplay(t *testing.T) {
	host := testutil.NewFakeHost()
	r := toggler.NewRunner(toggler.NewState(), terminal.NewManager(host))
	tg := newToggler()

	var states []bool
	r.SetOnChange(func(_ *config.TogglerCommand, first bool) {
		states = append(states, first)
	})

	if err := r.Toggle(tg); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if err := r.Toggle(tg); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	if len(states) != 2 || states[0] != false || states[1] != true {
		t.Errorf("onChange states = %v, want [false true]", states)
	}
}

func TestToggleRunTaskSide(t *testing.T) {
	host := testutil.NewFakeHost()
	r := toggler.NewRunner(toggler.NewState(), terminal.NewManager(host))
	tg := &config.TogglerCommand{
		Group:    "Test",
		Command1: config.ToggleSide{Label: "watch", RunTask: "test watch"},
		Command2: config.ToggleSide{Label: "stop"},
	}

	var ranTask string
	r.SetRunTask(func(label string) error {
		ranTask = label
		return nil
	})

	if err := r.Toggle(tg); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if ranTask != "test watch" {
		t.Errorf("ranTask = %q, want %q", ranTask, "test watch")
	}
	if len(host.Sessions()) != 0 {
		t.Error("runTask side created a terminal session")
	}
}

func TestTogglersKeepIndependentState(t *testing.T) {
	state := toggler.NewState()
	host := testutil.NewFakeHost()
	r := toggler.NewRunner(state, terminal.NewManager(host))

	a := newToggler()
	b := &config.TogglerCommand{
		Group:    "Build",
		Command1: config.ToggleSide{Label: "watch", Command: "make watch"},
		Command2: config.ToggleSide{Label: "stop"},
	}

	if err := r.Toggle(a); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !state.IsFirst(b) {
		t.Error("toggling one toggler affected another's state")
	}
	if state.IsFirst(a) {
		t.Error("toggled toggler still reports first state")
	}
}
