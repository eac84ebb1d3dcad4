// Package toggler implements two-state flip commands: each invocation
// alternates between a toggler's two sides and sends the active side's
// command to a dedicated terminal.
package toggler

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/errors"
	"github.com/grovetools/launcher/logging"
	"github.com/grovetools/launcher/terminal"
)

// State holds the process-lifetime flip flags, keyed by toggler key. The
// zero flag means the first side runs on the next invocation.
type State struct {
	mu      sync.Mutex
	flipped map[string]bool
}

// NewState creates empty toggler state.
func NewState() *State {
	return &State{flipped: make(map[string]bool)}
}

// IsFirst reports whether the toggler is in its initial state, i.e. the
// first side has not run (or has been run an even number of times since).
func (s *State) IsFirst(t *config.TogglerCommand) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.flipped[t.Key()]
}

// Toggle flips the flag and returns the new value.
func (s *State) Toggle(t *config.TogglerCommand) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := !s.flipped[t.Key()]
	s.flipped[t.Key()] = next
	return next
}

// Set forces the flag.
func (s *State) Set(t *config.TogglerCommand, flipped bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flipped[t.Key()] = flipped
}

// Runner executes togglers against terminal sessions.
type Runner struct {
	state     *State
	terminals *terminal.Manager
	log       *logrus.Entry

	// runTask, when set, runs an action by label instead of sending
	// command text for sides declaring runTask.
	runTask func(label string) error

	// onChange is notified after each flip with the toggler and whether it
	// is back in its first state.
	onChange func(t *config.TogglerCommand, first bool)
}

// NewRunner creates a toggler runner.
func NewRunner(state *State, terminals *terminal.Manager) *Runner {
	return &Runner{
		state:     state,
		terminals: terminals,
		log:       logging.NewLogger("toggler"),
	}
}

// IsFirst reports whether the toggler's next invocation runs the first side.
func (r *Runner) IsFirst(t *config.TogglerCommand) bool {
	return r.state.IsFirst(t)
}

// SetRunTask installs the hook used for sides that declare runTask.
func (r *Runner) SetRunTask(fn func(label string) error) {
	r.runTask = fn
}

// SetOnChange installs the display callback.
func (r *Runner) SetOnChange(fn func(t *config.TogglerCommand, first bool)) {
	r.onChange = fn
}

// Toggle flips the toggler and runs the side that became active: the first
// side on the first invocation, then alternating. A side with command text
// sends it to the toggler's terminal; a side without command text sends the
// interrupt byte; a side with runTask delegates to the installed hook. The
// flip is rolled back when the side cannot be run.
func (r *Runner) Toggle(t *config.TogglerCommand) error {
	flipped := r.state.Toggle(t)

	side := t.Command2
	if flipped {
		side = t.Command1
	}

	if err := r.runSide(t, side); err != nil {
		r.state.Set(t, !flipped)
		return err
	}

	r.log.WithFields(logrus.Fields{
		"toggler": t.Key(),
		"side":    side.Label,
	}).Debug("Toggled")

	if r.onChange != nil {
		r.onChange(t, r.state.IsFirst(t))
	}
	return nil
}

func (r *Runner) runSide(t *config.TogglerCommand, side config.ToggleSide) error {
	if side.RunTask != "" {
		if r.runTask == nil {
			return errors.New(errors.ErrCodeTogglerInvalid, "runTask is not available in this context")
		}
		return r.runTask(side.RunTask)
	}

	sess, err := r.terminals.ForToggler(t)
	if err != nil {
		return err
	}
	if side.Command == "" {
		if err := sess.SendBytes([]byte{terminal.InterruptByte}); err != nil {
			return err
		}
	} else {
		if err := sess.SendText(side.Command); err != nil {
			return err
		}
	}
	sess.Show()
	return nil
}

// NextLabel returns the label describing what the next invocation will run,
// for tree view and status bar display.
func (r *Runner) NextLabel(t *config.TogglerCommand) string {
	if r.state.IsFirst(t) {
		return t.Command1.Label
	}
	return t.Command2.Label
}
