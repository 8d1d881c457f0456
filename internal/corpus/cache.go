package corpus

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache loads each corpus once and keeps it for the life of the process.
// Concurrent first requests for the same key share a single load. Failed
// loads are not remembered.
type Cache struct {
	group singleflight.Group

	mu     sync.Mutex
	loaded map[string][]string
}

func NewCache() *Cache {
	return &Cache{loaded: make(map[string][]string)}
}

// Get returns the words for key, loading them from src on first use. The
// returned slice is shared; callers must not modify it.
//
// The shared load is not cancelled with any one caller's ctx. A caller whose
// ctx is done stops waiting and gets ctx's error, while the load carries on
// for everyone else.
func (c *Cache) Get(ctx context.Context, key string, src Source) ([]string, error) {
	c.mu.Lock()
	words, ok := c.loaded[key]
	c.mu.Unlock()
	if ok {
		return words, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		c.mu.Lock()
		words, ok := c.loaded[key]
		c.mu.Unlock()
		if ok {
			return words, nil
		}

		words, err := src.Words(loadCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.loaded[key] = words
		c.mu.Unlock()
		return words, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, key, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, key, res.Err)
		}
		return res.Val.([]string), nil
	}
}

// Loaded reports whether key has been loaded successfully.
func (c *Cache) Loaded(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.loaded[key]
	return ok
}
