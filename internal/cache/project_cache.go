package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TTL tiers reflect update frequency: a single entity changes rarely and can
// live long; list and ranking views change with every mutation anywhere, so
// they stay short.
const (
	DefaultEntityTTL         = time.Hour
	DefaultListTTL           = 5 * time.Minute
	DefaultRecommendationTTL = 10 * time.Minute
)

// DefaultLimitTiers are the page sizes the ranked and recommendation
// accessors are cached under, and the ones invalidation can reach.
var DefaultLimitTiers = []int{5, 10, 20}

// ProjectCache provides the keyed accessors for the hot project entity.
// Invalidation is coarse-grained: dropping an entity also drops the popular
// rankings that could embed a stale view of it. Filtered-list keys are only
// bounded by TTL, an accepted staleness window.
type ProjectCache struct {
	store             *Store
	entityTTL         time.Duration
	listTTL           time.Duration
	recommendationTTL time.Duration
	limitTiers        []int
}

func NewProjectCache(store *Store) *ProjectCache {
	return &ProjectCache{
		store:             store,
		entityTTL:         DefaultEntityTTL,
		listTTL:           DefaultListTTL,
		recommendationTTL: DefaultRecommendationTTL,
		limitTiers:        DefaultLimitTiers,
	}
}

// WithTTLs overrides the tier durations; zero values keep the defaults.
func (c *ProjectCache) WithTTLs(entity, list, recommendation time.Duration) *ProjectCache {
	if entity > 0 {
		c.entityTTL = entity
	}
	if list > 0 {
		c.listTTL = list
	}
	if recommendation > 0 {
		c.recommendationTTL = recommendation
	}
	return c
}

func (c *ProjectCache) GetProject(ctx context.Context, id uuid.UUID, dest any) bool {
	return c.store.Get(ctx, projectKey(id), dest)
}

func (c *ProjectCache) SetProject(ctx context.Context, id uuid.UUID, value any) bool {
	return c.store.Set(ctx, projectKey(id), value, c.entityTTL)
}

func (c *ProjectCache) GetFilteredList(ctx context.Context, filter any, dest any) bool {
	return c.store.Get(ctx, projectListKey(FilterHash(filter)), dest)
}

func (c *ProjectCache) SetFilteredList(ctx context.Context, filter any, value any) bool {
	return c.store.Set(ctx, projectListKey(FilterHash(filter)), value, c.listTTL)
}

func (c *ProjectCache) GetPopular(ctx context.Context, limit int, dest any) bool {
	return c.store.Get(ctx, popularProjectsKey(limit), dest)
}

func (c *ProjectCache) SetPopular(ctx context.Context, limit int, value any) bool {
	return c.store.Set(ctx, popularProjectsKey(limit), value, c.listTTL)
}

func (c *ProjectCache) GetRecommendations(ctx context.Context, userID uuid.UUID, limit int, dest any) bool {
	return c.store.Get(ctx, recommendedProjectsKey(userID, limit), dest)
}

func (c *ProjectCache) SetRecommendations(ctx context.Context, userID uuid.UUID, limit int, value any) bool {
	return c.store.Set(ctx, recommendedProjectsKey(userID, limit), value, c.recommendationTTL)
}

// InvalidateProject drops the entity key plus every popular-ranking tier
// that could contain a stale view. Filtered-list keys derived from arbitrary
// filter hashes are not reachable and expire by TTL.
func (c *ProjectCache) InvalidateProject(ctx context.Context, id uuid.UUID) bool {
	keys := []string{projectKey(id)}
	for _, limit := range c.limitTiers {
		keys = append(keys, popularProjectsKey(limit))
	}
	return c.store.Delete(ctx, keys...)
}

// InvalidateRecommendations drops the user's recommendation keys across the
// configured limit tiers.
func (c *ProjectCache) InvalidateRecommendations(ctx context.Context, userID uuid.UUID) bool {
	keys := make([]string, 0, len(c.limitTiers))
	for _, limit := range c.limitTiers {
		keys = append(keys, recommendedProjectsKey(userID, limit))
	}
	return c.store.Delete(ctx, keys...)
}
