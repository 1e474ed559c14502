package store

import (
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeed(t *testing.T) *ChannelAuthFeed {
	t.Helper()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })
	return NewChannelAuthFeed(pubSub, "auth_changes_test")
}

func TestChannelAuthFeedDeliversChanges(t *testing.T) {
	feed := newTestFeed(t)

	received := make(chan AuthChange, 2)
	unsubscribe := feed.Subscribe(func(c AuthChange) { received <- c })
	defer unsubscribe()

	require.NoError(t, feed.Publish(AuthChange{
		User:  &AuthUser{ID: "1", Email: "maria@bank.es", Role: "analyst"},
		Token: "tok",
	}))
	require.NoError(t, feed.Publish(AuthChange{}))

	select {
	case c := <-received:
		require.NotNil(t, c.User)
		assert.Equal(t, "maria@bank.es", c.User.Email)
		assert.Equal(t, "tok", c.Token)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for auth change")
	}

	select {
	case c := <-received:
		assert.Nil(t, c.User, "logout change carries no user")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for logout change")
	}
}

func TestChannelAuthFeedUnsubscribeStopsDelivery(t *testing.T) {
	feed := newTestFeed(t)

	received := make(chan AuthChange, 1)
	unsubscribe := feed.Subscribe(func(c AuthChange) { received <- c })
	unsubscribe()

	require.NoError(t, feed.Publish(AuthChange{Token: "late"}))

	select {
	case <-received:
		t.Fatal("handler invoked after unsubscribe")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestChannelAuthFeedDrivesBoundSessionStore(t *testing.T) {
	feed := newTestFeed(t)

	s := NewSessionStore()
	unbind := s.Bind(feed)
	defer unbind()

	require.NoError(t, feed.Publish(AuthChange{
		User:  &AuthUser{ID: "9", Email: "ana@bank.es", Role: "viewer"},
		Token: "jwt",
	}))

	require.Eventually(t, s.IsAuthenticated, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "ana@bank.es", s.User().Email)

	require.NoError(t, feed.Publish(AuthChange{}))
	require.Eventually(t, func() bool { return !s.IsAuthenticated() }, 2*time.Second, 10*time.Millisecond)
}
