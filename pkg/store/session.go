package store

import (
	"encoding/json"
	"sync"
)

// AuthUser is the identity slice held by the session store. It is created
// on successful authentication and destroyed on logout.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"` // admin | compliance_expert | analyst | viewer
}

// AuthChange is one event on an auth-change feed: a set (User != nil) or a
// logout (User == nil).
type AuthChange struct {
	User  *AuthUser
	Token string
}

// AuthFeed is an external auth-change notification stream the store can
// re-derive its state from. Subscribe returns a deterministic unsubscribe
// func; after it returns, the handler is never invoked again.
type AuthFeed interface {
	Subscribe(func(AuthChange)) (unsubscribe func())
}

// SessionStore holds the current identity and bearer token.
//
// Invariant: IsAuthenticated ⇔ user != nil && token != "". The store
// performs no validation; trust is delegated to whatever produced the
// token. It cannot fail: auth failures are the collaborator's to report.
type SessionStore struct {
	mu    sync.RWMutex
	user  *AuthUser
	token string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// SetAuth replaces the current identity.
func (s *SessionStore) SetAuth(user AuthUser, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.user = &u
	s.token = token
}

// Logout clears user and token regardless of prior state.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}

func (s *SessionStore) User() *AuthUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// Bind subscribes the store to an auth-change feed, the reactive variant
// that performs no independent persistence. The returned func detaches the
// store from the feed.
func (s *SessionStore) Bind(feed AuthFeed) (unbind func()) {
	return feed.Subscribe(func(change AuthChange) {
		if change.User == nil {
			s.Logout()
			return
		}
		s.SetAuth(*change.User, change.Token)
	})
}

type sessionSnapshot struct {
	User  *AuthUser `json:"user"`
	Token string    `json:"token"`
}

func (s *SessionStore) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(sessionSnapshot{User: s.user, Token: s.token})
}

func (s *SessionStore) Restore(data []byte) error {
	var snap sessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = snap.User
	s.token = snap.Token
	return nil
}
