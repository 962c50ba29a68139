// Package assets attaches model data to bodies off the frame loop.
//
// Bodies are created without assets. The loader resolves each body's model
// concurrently and publishes its bounds; the simulation only ever observes
// the result through Body.IsLoaded.
package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Faultbox/sakura-forest/internal/game/entity"
	"github.com/Faultbox/sakura-forest/internal/logger"
)

// ErrUnknownModel is returned for a model key missing from the manifest.
var ErrUnknownModel = errors.New("unknown model")

// Model is a resolved model asset.
type Model struct {
	Key    string
	Bounds entity.Sphere
}

// Options tunes a Loader.
type Options struct {
	Workers int           // Concurrent fetches; values below 1 mean 1
	Latency time.Duration // Simulated per-model fetch delay
}

// Result summarises one Attach call.
type Result struct {
	Attached int
	Failed   int
}

// Loader resolves model keys against a manifest.
type Loader struct {
	manifest *Manifest
	opts     Options
	cache    *Cache
	group    singleflight.Group
	log      *zap.Logger
}

// NewLoader creates a loader for manifest.
func NewLoader(manifest *Manifest, opts Options) *Loader {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Loader{
		manifest: manifest,
		opts:     opts,
		cache:    NewCache(),
		log:      logger.Named("assets"),
	}
}

// Cache returns the loader's model cache.
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Load resolves a model, fetching it at most once however many callers
// ask for it concurrently.
func (l *Loader) Load(ctx context.Context, key string) (*Model, error) {
	if m, ok := l.cache.Get(key); ok {
		return m, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		m, err := l.fetch(ctx, key)
		if err != nil {
			return nil, err
		}
		l.cache.Set(key, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Model), nil
}

func (l *Loader) fetch(ctx context.Context, key string) (*Model, error) {
	if l.opts.Latency > 0 {
		t := time.NewTimer(l.opts.Latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	spec, ok := l.manifest.Models[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, key)
	}
	return &Model{Key: key, Bounds: spec.Bounds()}, nil
}

// Attach resolves every body's model and publishes its bounds. Bodies whose
// model cannot be resolved stay unloaded and are counted as failed. Only
// context cancellation aborts the batch.
func (l *Loader) Attach(ctx context.Context, bodies []*entity.Body) (Result, error) {
	var attached, failed atomic.Int32

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Workers)

	for _, b := range bodies {
		if b == nil || b.IsLoaded() {
			continue
		}
		g.Go(func() error {
			m, err := l.Load(ctx, b.Model)
			if err != nil {
				if errors.Is(err, ErrUnknownModel) {
					failed.Add(1)
					l.log.Warn("asset unavailable", zap.String("model", b.Model), zap.Error(err))
					return nil
				}
				return err
			}
			if b.AttachBounds(m.Bounds) {
				attached.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	res := Result{Attached: int(attached.Load()), Failed: int(failed.Load())}
	if err != nil {
		return res, fmt.Errorf("attaching assets: %w", err)
	}
	hits, misses := l.cache.Stats()
	l.log.Debug("assets attached",
		zap.Int("attached", res.Attached),
		zap.Int("failed", res.Failed),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses),
	)
	return res, nil
}

// Cache is an in-memory cache of resolved models.
type Cache struct {
	data map[string]*Model
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*Model),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*Model, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return m, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, m *Model) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = m
}

// Len returns the number of cached models.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
