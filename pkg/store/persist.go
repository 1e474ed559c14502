package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Fixed snapshot keys, matching the client's durable-storage naming.
const (
	KeyChat     = "banking-rag-chat"
	KeyAuth     = "banking-rag-auth"
	KeyTheme    = "banking-rag-theme"
	KeyLanguage = "banking-rag-language"
)

// Snapshotter is implemented by every store in this package.
type Snapshotter interface {
	Snapshot() ([]byte, error)
	Restore([]byte) error
}

// Persistor is the explicit snapshot persistence boundary. The host
// application invokes Save after a batch of mutations; stores themselves
// never perform I/O.
type Persistor interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// ErrSnapshotNotFound is returned by Load when no snapshot exists yet.
var ErrSnapshotNotFound = fmt.Errorf("store: snapshot not found")

// RedisPersistor keeps snapshots in Redis under fixed keys, scoped per
// user so sessions on different accounts never read each other's state.
type RedisPersistor struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisPersistor(rdb *redis.Client, ttl time.Duration) *RedisPersistor {
	return &RedisPersistor{rdb: rdb, ttl: ttl}
}

func (p *RedisPersistor) Save(ctx context.Context, key string, data []byte) error {
	return p.rdb.Set(ctx, key, data, p.ttl).Err()
}

func (p *RedisPersistor) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := p.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (p *RedisPersistor) Delete(ctx context.Context, key string) error {
	return p.rdb.Del(ctx, key).Err()
}

// UserKey scopes one of the fixed keys to a user id.
func UserKey(key, userID string) string {
	return fmt.Sprintf("%s:%s", key, userID)
}

// SaveSnapshot is the snapshot-then-save convenience the host calls after
// finishing a batch of store mutations.
func SaveSnapshot(ctx context.Context, p Persistor, key string, s Snapshotter) error {
	data, err := s.Snapshot()
	if err != nil {
		return err
	}
	return p.Save(ctx, key, data)
}

// LoadSnapshot restores a store from its persisted snapshot. A missing
// snapshot is not an error: the store is simply left in its zero state.
func LoadSnapshot(ctx context.Context, p Persistor, key string, s Snapshotter) error {
	data, err := p.Load(ctx, key)
	if err == ErrSnapshotNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	return s.Restore(data)
}
