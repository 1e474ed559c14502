package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAuthAndLogout(t *testing.T) {
	s := NewSessionStore()
	assert.False(t, s.IsAuthenticated())

	s.SetAuth(AuthUser{ID: "1", Email: "maria@bank.es", Name: "María", Role: "compliance_expert"}, "tok")
	assert.True(t, s.IsAuthenticated())
	require.NotNil(t, s.User())
	assert.Equal(t, "compliance_expert", s.User().Role)
	assert.Equal(t, "tok", s.Token())

	s.Logout()
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())

	// Logout is idempotent regardless of prior state.
	s.Logout()
	assert.False(t, s.IsAuthenticated())
}

func TestSessionSnapshotRoundTrip(t *testing.T) {
	s := NewSessionStore()
	s.SetAuth(AuthUser{ID: "7", Email: "ana@bank.es", Name: "Ana", Role: "analyst"}, "jwt-token")

	data, err := s.Snapshot()
	require.NoError(t, err)

	restored := NewSessionStore()
	require.NoError(t, restored.Restore(data))
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, s.User(), restored.User())
	assert.Equal(t, s.Token(), restored.Token())
}

// fakeFeed is a hand-cranked auth-change stream.
type fakeFeed struct {
	handler func(AuthChange)
}

func (f *fakeFeed) Subscribe(fn func(AuthChange)) func() {
	f.handler = fn
	return func() { f.handler = nil }
}

func (f *fakeFeed) emit(c AuthChange) {
	if f.handler != nil {
		f.handler(c)
	}
}

func TestSessionStoreBindFollowsFeed(t *testing.T) {
	feed := &fakeFeed{}
	s := NewSessionStore()
	unbind := s.Bind(feed)

	feed.emit(AuthChange{User: &AuthUser{ID: "1", Email: "x@bank.es", Role: "viewer"}, Token: "t1"})
	assert.True(t, s.IsAuthenticated())

	feed.emit(AuthChange{User: nil})
	assert.False(t, s.IsAuthenticated())

	// After unsubscribe the store no longer reacts.
	feed.emit(AuthChange{User: &AuthUser{ID: "2"}, Token: "t2"})
	assert.True(t, s.IsAuthenticated())
	unbind()
	feed.emit(AuthChange{User: nil})
	assert.True(t, s.IsAuthenticated(), "changes after unsubscribe must not reach the store")
}
