package state

import (
	"fmt"
	"sync"

	contractx "github.com/avelichko/shkolabot/bot/contract"
)

// Manager owns every Session, keyed by user id. All access goes through the
// mutex so two events for the same user never race on one session.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

// Get returns a copy of the user's session, or an empty StageNone session if
// none exists. Callers never receive a pointer into the manager's map.
func (m *Manager) Get(userID int64) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return Session{UserID: userID}
	}
	return cloneSession(s)
}

// Start begins a form for the user, unconditionally discarding any form
// already in progress.
func (m *Manager) Start(userID int64, form FormKind) error {
	first, ok := FirstStage(form)
	if !ok {
		return fmt.Errorf("unknown form kind %q", form)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[userID] = &Session{
		UserID:  userID,
		Form:    form,
		Stage:   first,
		Partial: make(map[string]string),
	}
	return nil
}

// Advance records value under field and moves the session one stage forward.
// The terminal stage advances to StageNone but keeps Partial so the caller
// can read the collected fields before Clear.
func (m *Manager) Advance(userID int64, field, value string) (Stage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok || s.Stage == StageNone {
		return StageNone, contractx.ErrNoActiveSession
	}

	next, ok := nextStage(s.Form, s.Stage)
	if !ok {
		return StageNone, fmt.Errorf("%w: form=%s stage=%s", contractx.ErrUnknownStage, s.Form, s.Stage)
	}

	if s.Partial == nil {
		s.Partial = make(map[string]string)
	}
	s.Partial[field] = value
	s.Stage = next
	return next, nil
}

// Clear drops the user's session entirely.
func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

func cloneSession(s *Session) Session {
	out := *s
	if s.Partial != nil {
		out.Partial = make(map[string]string, len(s.Partial))
		for k, v := range s.Partial {
			out.Partial[k] = v
		}
	}
	return out
}
