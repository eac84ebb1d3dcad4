package terminal_test

import (
	"testing"

	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/terminal"
	"github.com/grovetools/launcher/testutil"
)

func TestManagerReusesLiveSession(t *testing.T) {
	host := testutil.NewFakeHost()
	m := terminal.NewManager(host)
	action := &config.Action{Command: "make", Label: "build", Group: "Build"}

	first, err := m.ForAction(action)
	if err != nil {
		t.Fatalf("ForAction() error = %v", err)
	}
	second, err := m.ForAction(action)
	if err != nil {
		t.Fatalf("ForAction() error = %v", err)
	}
	if first != second {
		t.Error("a second request created a new session while the first was live")
	}
	if len(host.Sessions()) != 1 {
		t.Errorf("host created %d sessions, want 1", len(host.Sessions()))
	}
}

func TestManagerReplacesExitedSession(t *testing.T) {
	host := testutil.NewFakeHost()
	m := terminal.NewManager(host)
	action := &config.Action{Command: "make", Label: "build", Group: "Build"}

	first, err := m.ForAction(action)
	if err != nil {
		t.Fatalf("ForAction() error = %v", err)
	}
	first.(*testutil.FakeSession).MarkExited()

	second, err := m.ForAction(action)
	if err != nil {
		t.Fatalf("ForAction() error = %v", err)
	}
	if first == second {
		t.Error("an exited session was handed out again")
	}
	if len(host.Sessions()) != 2 {
		t.Errorf("host created %d sessions, want 2", len(host.Sessions()))
	}
}

func TestManagerKeysByIdentity(t *testing.T) {
	host := testutil.NewFakeHost()
	m := terminal.NewManager(host)

	a := &config.Action{Command: "make", Label: "build", Group: "Frontend"}
	b := &config.Action{Command: "make", Label: "build", Group: "Backend"}

	sa, err := m.ForAction(a)
	if err != nil {
		t.Fatalf("ForAction() error = %v", err)
	}
	sb, err := m.ForAction(b)
	if err != nil {
		t.Fatalf("ForAction() error = %v", err)
	}
	if sa == sb {
		t.Error("actions with the same label but different groups shared a session")
	}
}

func TestManagerTogglerTerminals(t *testing.T) {
	host := testutil.NewFakeHost()
	m := terminal.NewManager(host)
	toggler := &config.TogglerCommand{
		Group:    "Serve",
		Command1: config.ToggleSide{Label: "start", Command: "npm start"},
		Command2: config.ToggleSide{Label: "stop"},
	}

	if _, ok := m.TogglerTerminal(toggler); ok {
		t.Error("TogglerTerminal() reported a session before one was created")
	}

	s, err := m.ForToggler(toggler)
	if err != nil {
		t.Fatalf("ForToggler() error = %v", err)
	}
	if s.Name() != "Serve:start" {
		t.Errorf("toggler terminal name = %q, want %q", s.Name(), "Serve:start")
	}

	got, ok := m.TogglerTerminal(toggler)
	if !ok || got != s {
		t.Error("TogglerTerminal() did not return the live session")
	}
}

func TestManagerCleansUpOnClose(t *testing.T) {
	host := testutil.NewFakeHost()
	m := terminal.NewManager(host)
	action := &config.Action{Command: "make", Label: "build", Group: "Build"}

	s, err := m.ForAction(action)
	if err != nil {
		t.Fatalf("ForAction() error = %v", err)
	}
	fake := s.(*testutil.FakeSession)

	// The close event may arrive more than once.
	fake.MarkExited()
	fake.MarkExited()

	replacement, err := m.ForAction(action)
	if err != nil {
		t.Fatalf("ForAction() error = %v", err)
	}
	if replacement == s {
		t.Error("closed session was not removed from the manager")
	}
}
