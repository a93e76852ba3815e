// Package session carries the per-session context that replaces the
// process-wide mode flag: which identity is signed in, which mode the
// session runs in, and the repository set bound to that mode. The mode is
// fixed when the session is created and only sign-out discards it, so no
// operation can silently cross modes mid-session.
package session

import (
	"sync"

	"aimaster-store/internal/model"
	"aimaster-store/internal/repository"
)

type Mode int

const (
	ModeUnset Mode = iota
	// ModeLocal serves everything from the embedded demo store.
	ModeLocal
	// ModeRemote serves everything from the remote backend.
	ModeRemote
)

func (m Mode) String() string {
	switch m {
	case ModeLocal:
		return "local"
	case ModeRemote:
		return "remote"
	default:
		return "unset"
	}
}

type Session struct {
	ID      string
	Profile model.Profile
	Mode    Mode
	Repos   *repository.Set

	// AccessToken is the backend-issued token for remote-mode sessions,
	// forwarded to the payment function. Empty in local mode.
	AccessToken string
}

// Registry maps session ids to live sessions. Sessions are server-side
// state; the client only holds the signed id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
