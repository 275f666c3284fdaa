package targeting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CategoryCatalog resolves category codes to the display names the vendor expects.
type CategoryCatalog interface {
	CategoryName(ctx context.Context, domain CategoryDomain, code string) (string, bool, error)
}

// Category is one catalog entry.
type Category struct {
	Domain CategoryDomain `db:"domain"`
	Code   string         `db:"code"`
	Name   string         `db:"name"`
}

// StaticCatalog is an in-memory catalog keyed by domain then code.
type StaticCatalog map[CategoryDomain]map[string]string

func (c StaticCatalog) CategoryName(_ context.Context, domain CategoryDomain, code string) (string, bool, error) {
	name, ok := c[domain][code]
	return name, ok, nil
}

// CategorySource lists every known category.
type CategorySource interface {
	ListCategories(ctx context.Context) ([]Category, error)
}

// CachedCatalog loads the catalog from a CategorySource and keeps it for ttl.
// Concurrent reloads are collapsed into one source call.
type CachedCatalog struct {
	source CategorySource
	ttl    time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	names    StaticCatalog
	loadedAt time.Time
	group    singleflight.Group
}

func NewCachedCatalog(source CategorySource, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (c *CachedCatalog) CategoryName(ctx context.Context, domain CategoryDomain, code string) (string, bool, error) {
	names, err := c.current(ctx)
	if err != nil {
		return "", false, err
	}
	return names.CategoryName(ctx, domain, code)
}

func (c *CachedCatalog) current(ctx context.Context) (StaticCatalog, error) {
	c.mu.RLock()
	names, loadedAt := c.names, c.loadedAt
	c.mu.RUnlock()
	if names != nil && c.now().Sub(loadedAt) < c.ttl {
		return names, nil
	}

	v, err, _ := c.group.Do("categories", func() (any, error) {
		c.mu.RLock()
		cached, at := c.names, c.loadedAt
		c.mu.RUnlock()
		if cached != nil && c.now().Sub(at) < c.ttl {
			return cached, nil
		}

		entries, err := c.source.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		fresh := make(StaticCatalog)
		for _, e := range entries {
			if fresh[e.Domain] == nil {
				fresh[e.Domain] = make(map[string]string)
			}
			fresh[e.Domain][e.Code] = e.Name
		}
		c.mu.Lock()
		c.names = fresh
		c.loadedAt = c.now()
		c.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		if names != nil {
			// keep serving the previous load
			return names, nil
		}
		return nil, fmt.Errorf("failed to load category catalog: %w", err)
	}
	return v.(StaticCatalog), nil
}
