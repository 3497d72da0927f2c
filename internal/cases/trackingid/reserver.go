package trackingid

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultMemoryTTL is how long a MemoryReserver remembers an identifier.
// Generated IDs embed the millisecond they were minted in, so once the clock
// has moved past that window the same ID cannot be produced again.
const DefaultMemoryTTL = time.Minute

// MemoryReserver claims identifiers within one process. Claims expire after
// a ttl and are swept at most once per ttl, so memory stays proportional to
// the IDs issued in the last window.
type MemoryReserver struct {
	mu        sync.Mutex
	taken     map[string]time.Time
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
}

// MemoryOption configures a MemoryReserver.
type MemoryOption func(*MemoryReserver)

// WithTTL sets how long a claim is held. Non-positive values are ignored.
func WithTTL(d time.Duration) MemoryOption {
	return func(r *MemoryReserver) {
		if d > 0 {
			r.ttl = d
		}
	}
}

func withClock(now func() time.Time) MemoryOption {
	return func(r *MemoryReserver) {
		r.now = now
	}
}

// NewMemoryReserver creates an empty MemoryReserver.
func NewMemoryReserver(opts ...MemoryOption) *MemoryReserver {
	r := &MemoryReserver{
		taken: make(map[string]time.Time),
		ttl:   DefaultMemoryTTL,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *MemoryReserver) Reserve(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweep(now)
	if expires, ok := r.taken[id]; ok && now.Before(expires) {
		return false, nil
	}
	r.taken[id] = now.Add(r.ttl)
	return true, nil
}

// Len reports how many claims are currently held.
func (r *MemoryReserver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.taken)
}

func (r *MemoryReserver) sweep(now time.Time) {
	if now.Before(r.nextSweep) {
		return
	}
	for id, expires := range r.taken {
		if !now.Before(expires) {
			delete(r.taken, id)
		}
	}
	r.nextSweep = now.Add(r.ttl)
}

const redisKeyPrefix = "trackingid:"

// RedisReserver claims identifiers across replicas with SET NX. Keys expire
// after ttl; a collision can only happen between cases created that far apart,
// which the millisecond component already rules out.
type RedisReserver struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisReserver creates a reserver on client. A zero ttl keeps keys forever.
func NewRedisReserver(client redis.Cmdable, ttl time.Duration) *RedisReserver {
	return &RedisReserver{client: client, ttl: ttl}
}

func (r *RedisReserver) Reserve(ctx context.Context, id string) (bool, error) {
	ok, err := r.client.SetNX(ctx, redisKeyPrefix+id, 1, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}
