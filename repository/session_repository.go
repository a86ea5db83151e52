package repository

import (
	"errors"
	"log"
	"sync"

	"github.com/purge-dev/CliniCord/models"
)

// SessionRegistry owns the mapping from user to their assessment session.
// It guarantees at most one active session per user: Register is the single
// atomic gate for session creation. Mutation of a session's contents is the
// flow controller's job, serialized per user via UserLock.
type SessionRegistry interface {
	// Register installs a new active session for its user. It fails with
	// models.ErrSessionAlreadyActive if the user already has an active
	// session. Callers must hold the user's lock: Register inspects the
	// current session's status, and status writes happen under that lock.
	Register(session *models.Session) error

	// Get returns the user's current session, terminal or not.
	Get(userID string) (*models.Session, bool)

	// Remove drops the user's session from the registry. Removing an
	// absent session is a no-op.
	Remove(userID string)

	// UserIDs lists every user currently holding a session, terminal or
	// not. The expiry sweep walks this and inspects status under the
	// per-user lock, so the registry never reads session state itself.
	UserIDs() []string

	// UserLock returns the mutex serializing all state transitions for one
	// user. Callers hold it across the whole read-mutate-write of a
	// HandleAnswer/Cancel/Expire so racing calls cannot corrupt a session.
	UserLock(userID string) *sync.Mutex
}

// sessionRegistry is the in-memory implementation. The registry mutex only
// guards the maps; per-session work happens under the per-user lock.
type sessionRegistry struct {
	sessions  map[string]*models.Session
	userLocks map[string]*sync.Mutex
	mu        sync.RWMutex
}

// NewSessionRegistry creates an empty in-memory session registry.
func NewSessionRegistry() SessionRegistry {
	return &sessionRegistry{
		sessions:  make(map[string]*models.Session),
		userLocks: make(map[string]*sync.Mutex),
	}
}

func (r *sessionRegistry) Register(session *models.Session) error {
	if session == nil || session.UserID == "" {
		log.Println("ERROR: [SessionRegistry] Register called with nil session or empty UserID.")
		return errors.New("session must have a user ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.sessions[session.UserID]; ok && existing.Status == models.SessionStatusActive {
		log.Printf("INFO: [SessionRegistry] Rejected new session for userID '%s': session %s is still active.", session.UserID, existing.ID)
		return models.ErrSessionAlreadyActive
	}

	r.sessions[session.UserID] = session
	log.Printf("INFO: [SessionRegistry] Registered session %s for userID '%s' (instrument '%s').", session.ID, session.UserID, session.InstrumentID)
	return nil
}

func (r *sessionRegistry) Get(userID string) (*models.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[userID]
	return session, ok
}

func (r *sessionRegistry) Remove(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[userID]; ok {
		delete(r.sessions, userID)
		log.Printf("INFO: [SessionRegistry] Removed session for userID '%s'.", userID)
	}
}

func (r *sessionRegistry) UserIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for userID := range r.sessions {
		ids = append(ids, userID)
	}
	return ids
}

func (r *sessionRegistry) UserLock(userID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		r.userLocks[userID] = lock
	}
	return lock
}
