// Package session owns the process-wide token registry. Sessions live only
// in memory: the registry starts empty and every session dies with the
// process. A token resolves to the role-scoped client bound at login and
// that binding never changes for the session's lifetime.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"couponmart/internal/apperr"
	"couponmart/internal/models"
)

// tokenLength is the size of issued bearer tokens: a random UUID with the
// hyphens stripped, truncated to 15 hex characters.
const tokenLength = 15

// Client is the role-scoped capability set bound to a session at login.
// The three implementations live in the service package.
type Client interface {
	Role() models.Role
}

// Session binds a token to one authenticated identity. Token, Role,
// IdentityID and Client are immutable after Issue; LastAccessed is read and
// written only under the registry lock.
type Session struct {
	Token        string
	Role         models.Role
	IdentityID   int64 // company or customer id; 0 for the operator
	Client       Client
	LastAccessed time.Time
}

// Registry maps live tokens to sessions. All mutations are serialized under
// a single lock; operations are O(1) and contention is low, so one lock is
// enough.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Issue generates a token unique among live sessions, binds the client to it
// and returns the stored session. The token space is 16^15; a collision with
// a live token is effectively impossible but checked anyway since the check
// is free under the lock.
func (r *Registry) Issue(client Client, identityID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	token := newToken()
	for _, taken := r.sessions[token]; taken; _, taken = r.sessions[token] {
		token = newToken()
	}

	s := &Session{
		Token:        token,
		Role:         client.Role(),
		IdentityID:   identityID,
		Client:       client,
		LastAccessed: r.now(),
	}
	r.sessions[token] = s
	return s
}

// Resolve looks up a live session by exact token match and refreshes its
// last-access time.
func (r *Registry) Resolve(token string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return nil, apperr.New(apperr.CodeInvalidToken, "invalid token")
	}
	s.LastAccessed = r.now()
	return s, nil
}

// Invalidate drops the session. Invalidating an absent token is a no-op.
func (r *Registry) Invalidate(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}

// EvictIdle drops every session whose last access is older than ttl and
// reports how many were dropped.
func (r *Registry) EvictIdle(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	evicted := 0
	for token, s := range r.sessions {
		if s.LastAccessed.Before(cutoff) {
			delete(r.sessions, token)
			evicted++
		}
	}
	return evicted
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
}
