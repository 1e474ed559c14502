package dashboard

import (
	"context"
	"strings"
	"time"

	"banking-rag-be/pkg/events"

	"github.com/patrickmn/go-cache"
)

const presenceTTL = 30 * time.Minute

// PresenceTracker derives who is currently signed in from the login and
// logout events on the bus. Entries expire after presenceTTL so stale
// sessions fall off without an explicit logout.
type PresenceTracker struct {
	sessions *cache.Cache
}

func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{
		sessions: cache.New(presenceTTL, 10*time.Minute),
	}
}

// HandleEvent consumes one auth event. Non-auth events are ignored.
func (t *PresenceTracker) HandleEvent(ctx context.Context, event events.Event) error {
	code := strings.TrimPrefix(event.EventType(), "events.")

	userId, _ := event.Payload()["user_id"].(string)
	if userId == "" {
		return nil
	}

	switch code {
	case events.TypeUserLogin:
		t.sessions.Set(userId, time.Now(), presenceTTL)
	case events.TypeUserLogout:
		t.sessions.Delete(userId)
	}
	return nil
}

// Touch refreshes a session, typically on authenticated API activity.
func (t *PresenceTracker) Touch(userId string) {
	t.sessions.Set(userId, time.Now(), presenceTTL)
}

// ActiveCount returns how many distinct users are currently present.
func (t *PresenceTracker) ActiveCount() int {
	return t.sessions.ItemCount()
}
