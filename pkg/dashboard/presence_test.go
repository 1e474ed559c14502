package dashboard

import (
	"context"
	"testing"
	"time"

	"banking-rag-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authEvent(code, userId string) events.Event {
	return events.BaseEvent{
		Type:       "events." + code,
		Data:       map[string]interface{}{"user_id": userId},
		OccurredAt: time.Now(),
	}
}

func TestPresenceTracksLoginAndLogout(t *testing.T) {
	tr := NewPresenceTracker()
	ctx := context.Background()

	require.NoError(t, tr.HandleEvent(ctx, authEvent(events.TypeUserLogin, "u1")))
	require.NoError(t, tr.HandleEvent(ctx, authEvent(events.TypeUserLogin, "u2")))
	assert.Equal(t, 2, tr.ActiveCount())

	// Duplicate logins do not double-count.
	require.NoError(t, tr.HandleEvent(ctx, authEvent(events.TypeUserLogin, "u1")))
	assert.Equal(t, 2, tr.ActiveCount())

	require.NoError(t, tr.HandleEvent(ctx, authEvent(events.TypeUserLogout, "u1")))
	assert.Equal(t, 1, tr.ActiveCount())
}

func TestPresenceIgnoresOtherEvents(t *testing.T) {
	tr := NewPresenceTracker()
	ctx := context.Background()

	require.NoError(t, tr.HandleEvent(ctx, authEvent(events.TypeUpdatePublished, "u1")))
	assert.Equal(t, 0, tr.ActiveCount())

	// Missing user_id is a no-op, not an error.
	require.NoError(t, tr.HandleEvent(ctx, events.BaseEvent{Type: "events." + events.TypeUserLogin}))
	assert.Equal(t, 0, tr.ActiveCount())
}

func TestPresenceTouch(t *testing.T) {
	tr := NewPresenceTracker()
	tr.Touch("u1")
	assert.Equal(t, 1, tr.ActiveCount())
}
