package jwt

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore remembers logged-out token ids until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type memoryRevocationStore struct {
	revokedTokens map[string]time.Time
	mu            sync.RWMutex
	now           func() time.Time
}

// NewMemoryRevocationStore keeps revocations in process; they are lost on restart.
func NewMemoryRevocationStore() RevocationStore {
	return &memoryRevocationStore{
		revokedTokens: make(map[string]time.Time),
		now:           time.Now,
	}
}

func (m *memoryRevocationStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, until := range m.revokedTokens {
		if !until.After(now) {
			delete(m.revokedTokens, id)
		}
	}
	m.revokedTokens[tokenID] = now.Add(ttl)
	return nil
}

func (m *memoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	until, revoked := m.revokedTokens[tokenID]
	return revoked && until.After(m.now()), nil
}

const redisKeyPrefix = "hr-portal:revoked-token:"

type redisRevocationStore struct {
	rdb *redis.Client
}

// NewRedisRevocationStore shares revocations between API instances.
func NewRedisRevocationStore(rdb *redis.Client) RevocationStore {
	return &redisRevocationStore{rdb: rdb}
}

func (r *redisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return r.rdb.Set(ctx, redisKeyPrefix+tokenID, 1, ttl).Err()
}

func (r *redisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.rdb.Get(ctx, redisKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
