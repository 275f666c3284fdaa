package targeting

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls   atomic.Int32
	err     error
	entries []Category
}

func (s *countingSource) ListCategories(context.Context) ([]Category, error) {
	s.calls.Add(1)
	time.Sleep(5 * time.Millisecond)
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func TestCachedCatalog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("concurrent first loads hit the source once", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{entries: []Category{{Domain: DomainShopping, Code: "S01", Name: "Fashion"}}}
		catalog := NewCachedCatalog(src, time.Minute)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				name, ok, err := catalog.CategoryName(ctx, DomainShopping, "S01")
				assert.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, "Fashion", name)
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), src.calls.Load())

		_, ok, err := catalog.CategoryName(ctx, DomainApp, "A01")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int32(1), src.calls.Load())
	})

	t.Run("reloads after ttl and keeps stale copy on failure", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{entries: []Category{{Domain: DomainApp, Code: "A01", Name: "Games"}}}
		catalog := NewCachedCatalog(src, time.Minute)
		now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		catalog.now = func() time.Time { return now }

		_, _, err := catalog.CategoryName(ctx, DomainApp, "A01")
		require.NoError(t, err)

		now = now.Add(2 * time.Minute)
		src.err = errors.New("db down")
		name, ok, err := catalog.CategoryName(ctx, DomainApp, "A01")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Games", name)
		assert.Equal(t, int32(2), src.calls.Load())
	})

	t.Run("first load failure is returned", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{err: errors.New("db down")}
		catalog := NewCachedCatalog(src, time.Minute)

		_, _, err := catalog.CategoryName(ctx, DomainApp, "A01")
		require.Error(t, err)
	})
}
