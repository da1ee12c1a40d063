// Package session holds all mutable per-session state and the manager
// that tracks live sessions by ID.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/optifin/optifin/internal/models"
)

// State is the explicit session context for one user session. Zero values
// are the documented defaults: consent not accepted, not logged in, no
// segment chosen, empty drafts. CurrentPage starts at the consent gate.
//
// One logical owner mutates a State per interaction cycle; Lock/Unlock
// guard against overlapping HTTP requests for the same session.
type State struct {
	mu sync.Mutex

	// ID is the session identifier carried in the session cookie.
	ID string

	// ConsentAccepted gates every other page.
	ConsentAccepted bool

	// LoggedIn and Username reflect the authenticated user, if any.
	LoggedIn bool
	Username string

	// Profile is the working copy loaded at login. Edits are provisional
	// until explicitly saved back to the credential store.
	Profile models.Profile

	// Segment is the chosen user segment, SegmentUnset until picked.
	Segment models.Segment

	// CurrentPage selects the active render function.
	CurrentPage models.PageID

	// DraftGoals is the transient goal list under edit.
	DraftGoals []models.Goal

	// Chat is the assistant conversation history.
	Chat []models.ChatMessage

	// Statement holds the rows of the last uploaded bank statement.
	Statement []models.StatementRow

	// Notice is a one-cycle user-visible message; the router clears it
	// after rendering.
	Notice string

	// lastSeen is read by the sweeper concurrently with request handling.
	lastSeen atomic.Int64
}

// Lock takes ownership of the state for one interaction cycle.
func (s *State) Lock() { s.mu.Lock() }

// Unlock releases ownership.
func (s *State) Unlock() { s.mu.Unlock() }

// Touch records activity so the sweeper keeps the session alive.
func (s *State) Touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// ResetAuth clears authentication and the profile working copy,
// returning the session to the logged-out defaults.
func (s *State) ResetAuth() {
	s.LoggedIn = false
	s.Username = ""
	s.Profile = models.Profile{}
	s.DraftGoals = nil
}

// Manager tracks live sessions keyed by session ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*State
	ttl      time.Duration
	defaults models.Profile
}

// NewManager creates a Manager. Idle sessions older than ttl are removed
// by the sweeper. defaults seeds the profile of anonymous sessions.
func NewManager(ttl time.Duration, defaults models.Profile) *Manager {
	return &Manager{
		sessions: make(map[string]*State),
		ttl:      ttl,
		defaults: defaults,
	}
}

// Get returns the session with the given ID, if it is still alive.
func (m *Manager) Get(id string) (*State, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Create makes a new session with a fresh ID, positioned at the
// consent gate.
func (m *Manager) Create() *State {
	s := &State{
		ID:          uuid.NewString(),
		CurrentPage: models.PageConsent,
		Profile:     m.defaults,
	}
	s.Touch(time.Now())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// expire removes sessions idle longer than ttl and returns how many
// were removed.
func (m *Manager) expire(now time.Time) int {
	cutoff := now.Add(-m.ttl).UnixNano()

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.lastSeen.Load() < cutoff {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
