// Package lock provides a Redis-backed lease so that exactly one indexer
// instance advances the ledger at a time.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/chorusnet/discovery-indexer/internal/adapter"
	"github.com/chorusnet/discovery-indexer/internal/domain"
)

// releaseScript deletes the lease only when the caller still holds it
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

// Config holds lease settings
type Config struct {
	// Key is the Redis key the lease lives under
	Key string
	// TTL expires a lease whose holder died without releasing it
	TTL time.Duration
}

// Lease is a non-blocking distributed lock
//
//go:generate mockgen -source=lock.go -destination=../mocks/lock.go -package=mocks -mock_names=Lease=MockLease
type Lease interface {
	// Acquire takes the lease, returning domain.ErrLockHeld when another
	// holder has it
	Acquire(ctx context.Context) error
	// Release gives the lease back; releasing a lease lost to TTL expiry
	// is not an error
	Release(ctx context.Context) error
}

type redisLease struct {
	client adapter.RedisClient
	config Config
	token  string
}

// NewLease creates a lease on client under cfg.Key
func NewLease(client adapter.RedisClient, cfg Config) Lease {
	return &redisLease{
		client: client,
		config: cfg,
		token:  uuid.NewString(),
	}
}

func (l *redisLease) Acquire(ctx context.Context) error {
	ok, err := l.client.SetNX(ctx, l.config.Key, l.token, l.config.TTL).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire lease %s: %w", l.config.Key, err)
	}
	if !ok {
		return domain.ErrLockHeld
	}
	return nil
}

func (l *redisLease) Release(ctx context.Context) error {
	err := l.client.Eval(ctx, releaseScript, []string{l.config.Key}, l.token).Err()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release lease %s: %w", l.config.Key, err)
	}
	return nil
}
