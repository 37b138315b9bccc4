package handler

import (
	"sync"
	"time"

	"tire-service/internal/variant"

	"github.com/google/uuid"
)

// SessionStore keeps one selection session per storefront client, keyed by
// an opaque token the client carries in X-Selection-Token. Idle sessions are
// swept in the background.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*variant.Session

	confirmTTL time.Duration
	idleTTL    time.Duration
	stop       chan struct{}
}

// NewSessionStore creates a store and starts its idle sweeper
func NewSessionStore(confirmTTL, idleTTL time.Duration) *SessionStore {
	st := &SessionStore{
		sessions:   make(map[string]*variant.Session),
		confirmTTL: confirmTTL,
		idleTTL:    idleTTL,
		stop:       make(chan struct{}),
	}
	go st.sweepLoop()
	return st
}

// Create mints a token and a fresh closed session for it
func (st *SessionStore) Create() (string, *variant.Session) {
	token := uuid.NewString()
	session := variant.NewSession(st.confirmTTL)

	st.mu.Lock()
	st.sessions[token] = session
	st.mu.Unlock()

	return token, session
}

// Get returns the session for a token, if any
func (st *SessionStore) Get(token string) (*variant.Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	session, ok := st.sessions[token]
	return session, ok
}

// Delete closes and drops the session for a token
func (st *SessionStore) Delete(token string) {
	st.mu.Lock()
	session, ok := st.sessions[token]
	delete(st.sessions, token)
	st.mu.Unlock()

	if ok {
		session.Close()
	}
}

// Stop terminates the idle sweeper
func (st *SessionStore) Stop() {
	close(st.stop)
}

func (st *SessionStore) sweepLoop() {
	ticker := time.NewTicker(st.idleTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st.sweep()
		case <-st.stop:
			return
		}
	}
}

func (st *SessionStore) sweep() {
	cutoff := time.Now().Add(-st.idleTTL)

	st.mu.Lock()
	var stale []*variant.Session
	for token, session := range st.sessions {
		if session.LastUsed().Before(cutoff) {
			stale = append(stale, session)
			delete(st.sessions, token)
		}
	}
	st.mu.Unlock()

	for _, session := range stale {
		session.Close()
	}
}
