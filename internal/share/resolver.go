package share

import (
	"context"
	"errors"

	"petskub/internal/metrics"
	"petskub/internal/model"
	"petskub/internal/store"

	"go.uber.org/zap"
)

// Cache lifetimes for the two outcomes. Fallbacks expire sooner so a newly
// published article replaces the generic preview quickly.
const (
	CacheControlHit      = "public, max-age=300, stale-while-revalidate=1200"
	CacheControlFallback = "public, max-age=120, stale-while-revalidate=600"
)

// Result is a resolved share payload and whether it came from a real article.
type Result struct {
	Payload model.SharePayload
	Hit     bool
}

// CacheControl returns the Cache-Control header value for the result.
func (r Result) CacheControl() string {
	if r.Hit {
		return CacheControlHit
	}
	return CacheControlFallback
}

// Resolver turns an article id into a share payload.
type Resolver struct {
	store  store.ArticleStore
	site   string
	logger *zap.Logger
}

// NewResolver builds a resolver that links to pages under siteOrigin.
func NewResolver(st store.ArticleStore, siteOrigin string, logger *zap.Logger) *Resolver {
	return &Resolver{
		store:  st,
		site:   siteOrigin,
		logger: logger,
	}
}

// Resolve never fails: a missing article or a store error yields the
// fallback payload, still pointing at the article's canonical URL.
func (r *Resolver) Resolve(ctx context.Context, id string) Result {
	article, err := r.store.GetPublished(ctx, id)
	if err != nil || article == nil {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			r.logger.Warn("Article lookup failed, serving fallback", zap.String("id", id), zap.Error(err))
		}
		metrics.RecordShareResolution(false)
		return Result{Payload: FallbackPayload(r.site, id)}
	}

	metrics.RecordShareResolution(true)
	return Result{Payload: ArticlePayload(r.site, article), Hit: true}
}
