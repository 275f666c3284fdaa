package lock

import (
	"campaign-gateway/internal/observability"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocker_SerialisesSameKey(t *testing.T) {
	t.Parallel()

	locker := NewMemoryLocker()
	key := CampaignKey(uuid.New())

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Acquire(context.Background(), key)
			if err != nil {
				t.Errorf("acquire: %v", err)
				return
			}
			n := inside.Add(1)
			for {
				m := maxInside.Load()
				if n <= m || maxInside.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			inside.Add(-1)
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
	assert.Empty(t, locker.slots)
}

func TestMemoryLocker_DifferentKeysDoNotBlock(t *testing.T) {
	t.Parallel()

	locker := NewMemoryLocker()
	releaseA, err := locker.Acquire(context.Background(), "a")
	require.NoError(t, err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	releaseB, err := locker.Acquire(ctx, "b")
	require.NoError(t, err)
	releaseB()
}

func TestMemoryLocker_ContextCancelled(t *testing.T) {
	t.Parallel()

	locker := NewMemoryLocker()
	release, err := locker.Acquire(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(ctx, "k")
	assert.ErrorIs(t, err, ErrLocked)

	release()
	release()

	again, err := locker.Acquire(context.Background(), "k")
	require.NoError(t, err)
	again()
	assert.Empty(t, locker.slots)
}

type fakeKV struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: make(map[string]string)}
}

func (f *fakeKV) SetNX(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return false, f.setErr
	}
	if _, ok := f.values[key]; ok {
		return false, nil
	}
	f.values[key] = value
	return true, nil
}

func (f *fakeKV) DeleteIfValue(_ context.Context, key, value string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values[key] != value {
		return false, nil
	}
	delete(f.values, key)
	return true, nil
}

func TestRedisLocker(t *testing.T) {
	t.Parallel()

	logger := observability.NewLogger()
	cfg := RedisConfig{Wait: 30 * time.Millisecond, RetryInterval: 5 * time.Millisecond}

	t.Run("acquire and release", func(t *testing.T) {
		t.Parallel()
		kv := newFakeKV()
		locker := NewRedisLocker(kv, cfg, logger)

		release, err := locker.Acquire(context.Background(), "k")
		require.NoError(t, err)
		assert.Contains(t, kv.values, "k")

		release()
		assert.NotContains(t, kv.values, "k")
	})

	t.Run("held key times out", func(t *testing.T) {
		t.Parallel()
		kv := newFakeKV()
		kv.values["k"] = "someone-else"
		locker := NewRedisLocker(kv, cfg, logger)

		_, err := locker.Acquire(context.Background(), "k")
		assert.ErrorIs(t, err, ErrLocked)
	})

	t.Run("release does not delete a foreign token", func(t *testing.T) {
		t.Parallel()
		kv := newFakeKV()
		locker := NewRedisLocker(kv, cfg, logger)

		release, err := locker.Acquire(context.Background(), "k")
		require.NoError(t, err)

		// simulate expiry and takeover
		kv.mu.Lock()
		kv.values["k"] = "new-holder"
		kv.mu.Unlock()

		release()
		assert.Equal(t, "new-holder", kv.values["k"])
	})

	t.Run("acquired after holder releases", func(t *testing.T) {
		t.Parallel()
		kv := newFakeKV()
		locker := NewRedisLocker(kv, RedisConfig{Wait: time.Second, RetryInterval: 5 * time.Millisecond}, logger)

		first, err := locker.Acquire(context.Background(), "k")
		require.NoError(t, err)
		go func() {
			time.Sleep(20 * time.Millisecond)
			first()
		}()

		second, err := locker.Acquire(context.Background(), "k")
		require.NoError(t, err)
		second()
	})

	t.Run("store error", func(t *testing.T) {
		t.Parallel()
		kv := newFakeKV()
		kv.setErr = errors.New("connection refused")
		locker := NewRedisLocker(kv, cfg, logger)

		_, err := locker.Acquire(context.Background(), "k")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrLocked)
	})
}
