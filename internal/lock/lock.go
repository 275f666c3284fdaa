package lock

import (
	"campaign-gateway/internal/observability"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrLocked means another operation holds the key for longer than the caller
// was willing to wait.
var ErrLocked = errors.New("resource is locked by another operation")

// Locker serialises operations on the same key. The returned release function
// must be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// CampaignKey is the lock key of one campaign.
func CampaignKey(id uuid.UUID) string {
	return "campaign-lock:" + id.String()
}

// MemoryLocker is an in-process keyed mutex.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{slots: make(map[string]*slot)}
}

// Acquire blocks until key is free or ctx is done.
func (l *MemoryLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(key, s)
		return nil, fmt.Errorf("%w: %v", ErrLocked, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.unref(key, s)
		})
	}, nil
}

func (l *MemoryLocker) unref(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// KeyValueStore is the subset of Redis the distributed lock needs.
type KeyValueStore interface {
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	DeleteIfValue(ctx context.Context, key, value string) (bool, error)
}

// RedisConfig tunes the distributed lock.
type RedisConfig struct {
	// TTL bounds how long a crashed holder keeps the key.
	TTL time.Duration
	// Wait is how long Acquire retries before returning ErrLocked.
	Wait time.Duration
	// RetryInterval is the pause between attempts.
	RetryInterval time.Duration
}

// RedisLocker is a distributed lock: SET NX PX with a random token and a
// token-checked release, so a holder never deletes someone else's lock.
type RedisLocker struct {
	store  KeyValueStore
	cfg    RedisConfig
	logger *observability.Logger
}

func NewRedisLocker(store KeyValueStore, cfg RedisConfig, logger *observability.Logger) *RedisLocker {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Minute
	}
	if cfg.Wait <= 0 {
		cfg.Wait = 5 * time.Second
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 100 * time.Millisecond
	}
	return &RedisLocker{store: store, cfg: cfg, logger: logger}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.NewTimer(l.cfg.Wait)
	defer deadline.Stop()

	for {
		ok, err := l.store.SetNX(ctx, key, token, l.cfg.TTL)
		if err != nil {
			l.logger.Error(ctx, "failed to acquire lock", err)
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return l.releaser(ctx, key, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrLocked, ctx.Err())
		case <-deadline.C:
			return nil, ErrLocked
		case <-time.After(l.cfg.RetryInterval):
		}
	}
}

func (l *RedisLocker) releaser(ctx context.Context, key, token string) func() {
	logCtx := observability.WithFields(context.WithoutCancel(ctx), observability.Field{Key: "lock_key", Value: key})
	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(logCtx, 3*time.Second)
			defer cancel()
			released, err := l.store.DeleteIfValue(releaseCtx, key, token)
			if err != nil {
				l.logger.Error(logCtx, "failed to release lock", err)
				return
			}
			if !released {
				l.logger.Warn(logCtx, "lock expired before release")
			}
		})
	}
}
