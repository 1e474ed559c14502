package memory

import (
	"time"

	"banking-rag-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// StateRepository keeps the per-user conversation working state in memory.
// The authoritative copy lives in the database; this mirror backs the
// dashboard state endpoint without a round trip per request.
type StateRepository struct {
	cache *cache.Cache
}

func NewStateRepository() *StateRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &StateRepository{
		cache: c,
	}
}

func (r *StateRepository) Save(userID string, s *store.ConversationStore) {
	r.cache.Set(userID, s, cache.DefaultExpiration)
}

func (r *StateRepository) Get(userID string) (*store.ConversationStore, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.ConversationStore), true
	}
	return nil, false
}

func (r *StateRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
