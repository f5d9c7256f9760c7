// Package resolver maps a template reference to a local directory,
// serving from the cache when possible and delegating to the fetcher
// otherwise.
package resolver

import (
	"context"

	"github.com/stratacms/strata/internal/logging"
	"github.com/stratacms/strata/internal/template/cache"
	"github.com/stratacms/strata/internal/template/model"
	"github.com/stratacms/strata/internal/template/registry"
)

// Fetcher retrieves a template archive and populates the cache.
type Fetcher interface {
	// FetchAndCache downloads and caches the template for ref,
	// returning the cache entry path.
	FetchAndCache(ctx context.Context, ref model.TemplateRef) (string, error)
}

// Resolver resolves template references to local directories.
type Resolver struct {
	cache   *cache.Cache
	fetcher Fetcher
}

// New creates a Resolver over the given cache and fetcher.
func New(c *cache.Cache, f Fetcher) *Resolver {
	return &Resolver{
		cache:   c,
		fetcher: f,
	}
}

// Resolve returns the absolute path of a directory containing the
// template's file tree. The identifier is validated against the
// supported set before any I/O; fetch failures propagate unchanged.
func (r *Resolver) Resolve(ctx context.Context, ref model.TemplateRef) (string, error) {
	log := logging.GetLogger("resolver")

	if _, err := registry.Lookup(ref.Identifier); err != nil {
		return "", err
	}

	if path, ok := r.cache.Lookup(ref.CacheKey()); ok {
		log.Debug().Str("template", ref.String()).Str("path", path).Msg("resolved from cache")
		return path, nil
	}

	return r.fetcher.FetchAndCache(ctx, ref)
}
