package terminal

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/launcher/config"
	"github.com/grovetools/launcher/logging"
)

// Manager owns the mapping from action identities and toggler keys to live
// sessions. A session is reused while its shell is running; an ended session
// is replaced on the next request and its map entries are cleaned up when
// the host reports the close, whichever comes first.
type Manager struct {
	host Host
	log  *logrus.Entry

	mu       sync.Mutex
	actions  map[string]Session
	togglers map[string]Session
}

// NewManager creates a manager on the given host and subscribes to its
// close events.
func NewManager(host Host) *Manager {
	m := &Manager{
		host:     host,
		log:      logging.NewLogger("terminal"),
		actions:  make(map[string]Session),
		togglers: make(map[string]Session),
	}
	host.OnClose(m.remove)
	return m
}

// ForAction returns the live session for the action, creating one when none
// exists or the previous one has exited. The terminal is named after the
// action's label and started in the action's cwd.
func (m *Manager) ForAction(action *config.Action) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getOrCreate(m.actions, action.Identity(), action.EffectiveLabel(), action.Cwd)
}

// ForToggler returns the live session for the toggler, creating one when
// needed. Toggler terminals are keyed and named by the toggler key.
func (m *Manager) ForToggler(t *config.TogglerCommand) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getOrCreate(m.togglers, t.Key(), t.Key(), "")
}

// TogglerTerminal returns the toggler's current live session without
// creating one.
func (m *Manager) TogglerTerminal(t *config.TogglerCommand) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.togglers[t.Key()]
	if !ok || s.Exited() {
		return nil, false
	}
	return s, true
}

func (m *Manager) getOrCreate(byKey map[string]Session, key, name, cwd string) (Session, error) {
	if s, ok := byKey[key]; ok && !s.Exited() {
		return s, nil
	}
	s, err := m.host.CreateTerminal(name, cwd)
	if err != nil {
		return nil, err
	}
	byKey[key] = s
	return s, nil
}

// remove drops every map entry pointing at the ended session. Safe to call
// more than once for the same session.
func (m *Manager) remove(ended Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, s := range m.actions {
		if s == ended {
			delete(m.actions, key)
			m.log.WithField("terminal", key).Debug("Removed closed action terminal")
		}
	}
	for key, s := range m.togglers {
		if s == ended {
			delete(m.togglers, key)
			m.log.WithField("terminal", key).Debug("Removed closed toggler terminal")
		}
	}
}

// CloseAll ends every live session. Used on process shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]Session, 0, len(m.actions)+len(m.togglers))
	for _, s := range m.actions {
		sessions = append(sessions, s)
	}
	for _, s := range m.togglers {
		sessions = append(sessions, s)
	}
	m.actions = make(map[string]Session)
	m.togglers = make(map[string]Session)
	m.mu.Unlock()

	for _, s := range sessions {
		_ = s.Close()
	}
}
