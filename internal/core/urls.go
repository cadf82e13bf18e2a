package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"nexta-backend-go/pkg/cache"
	"nexta-backend-go/pkg/objectstore"
)

// URLResolver turns stored object references into fetchable URLs, caching
// each for less than the signed URL lifetime.
type URLResolver struct {
	objects objectstore.Store
	cache   cache.Cache
	ttl     time.Duration
	logger  *zap.Logger
}

// NewURLResolver returns a URLResolver. cache may be nil.
func NewURLResolver(objects objectstore.Store, c cache.Cache, ttl time.Duration, logger *zap.Logger) *URLResolver {
	return &URLResolver{objects: objects, cache: c, ttl: ttl, logger: logger}
}

// Resolve returns the URL for ref, or "" when ref is empty or cannot be
// resolved. Failures are logged and treated as "no file".
func (r *URLResolver) Resolve(ctx context.Context, ref string) string {
	if ref == "" || r == nil || r.objects == nil {
		return ""
	}
	key := "objurl:" + ref
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, key); err == nil && cached != "" {
			return cached
		}
	}

	url, err := r.objects.URL(ctx, ref)
	if err != nil {
		r.logger.Warn("Failed to resolve object URL", zap.String("ref", ref), zap.Error(err))
		return ""
	}
	if r.cache != nil {
		if err := r.cache.Set(ctx, key, url, r.ttl); err != nil {
			r.logger.Warn("Failed to cache object URL", zap.String("ref", ref), zap.Error(err))
		}
	}
	return url
}
