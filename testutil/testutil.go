// Package testutil holds shared fixtures and fakes for launcher tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grovetools/launcher/terminal"
)

// WriteConfig writes a launcher.yml with the given content into dir.
func WriteConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "launcher.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// SeedStorage writes a values.json under dir/.launcher from the given record.
func SeedStorage(t *testing.T, dir string, record map[string]interface{}) string {
	t.Helper()
	stateDir := filepath.Join(dir, ".launcher")
	require.NoError(t, os.MkdirAll(stateDir, 0755))
	data, err := json.MarshalIndent(record, "", "  ")
	require.NoError(t, err)
	path := filepath.Join(stateDir, "values.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// FakeSession records everything sent to it instead of running a shell.
type FakeSession struct {
	mu       sync.Mutex
	name     string
	host     *FakeHost
	sent     []string
	sendErr  error
	exited   bool
	revealed int
}

func (s *FakeSession) Name() string { return s.name }

func (s *FakeSession) SendText(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, text+"\n")
	return nil
}

func (s *FakeSession) SendBytes(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, string(data))
	return nil
}

func (s *FakeSession) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revealed++
}

func (s *FakeSession) Exited() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exited
}

func (s *FakeSession) Close() error {
	s.MarkExited()
	return nil
}

// Wait returns immediately; the fake has no shell to wait for.
func (s *FakeSession) Wait() error { return nil }

// Sent returns a copy of everything written to the session as it would reach
// the shell, SendText entries with their trailing newline.
func (s *FakeSession) Sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

// Revealed reports how many times Show was called.
func (s *FakeSession) Revealed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revealed
}

// MarkExited flags the session as ended and fires the host's close
// callbacks, simulating the shell exiting.
func (s *FakeSession) MarkExited() {
	s.mu.Lock()
	if s.exited {
		s.mu.Unlock()
		return
	}
	s.exited = true
	host := s.host
	s.mu.Unlock()
	if host != nil {
		host.fireClose(s)
	}
}

// SetSendError makes every subsequent SendText fail with err, simulating a
// session whose pty has gone away. A nil err restores normal sends.
func (s *FakeSession) SetSendError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendErr = err
}

// FakeHost creates FakeSessions and remembers them for inspection.
type FakeHost struct {
	mu       sync.Mutex
	sessions []*FakeSession
	sendErr  error
	closeFns []func(terminal.Session)
}

// NewFakeHost creates an empty fake host.
func NewFakeHost() *FakeHost {
	return &FakeHost{}
}

func (h *FakeHost) CreateTerminal(name, cwd string) (terminal.Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := &FakeSession{name: name, host: h, sendErr: h.sendErr}
	h.sessions = append(h.sessions, s)
	return s, nil
}

// SetSendError makes sessions created from now on fail their sends with err.
func (h *FakeHost) SetSendError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sendErr = err
}

func (h *FakeHost) OnClose(fn func(terminal.Session)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closeFns = append(h.closeFns, fn)
}

func (h *FakeHost) fireClose(s terminal.Session) {
	h.mu.Lock()
	fns := append([]func(terminal.Session){}, h.closeFns...)
	h.mu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}

// Sessions returns every session the host has created, in creation order.
func (h *FakeHost) Sessions() []*FakeSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*FakeSession(nil), h.sessions...)
}

// LastSession returns the most recently created session.
func (h *FakeHost) LastSession(t *testing.T) *FakeSession {
	t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	require.NotEmpty(t, h.sessions, "no terminal session was created")
	return h.sessions[len(h.sessions)-1]
}
