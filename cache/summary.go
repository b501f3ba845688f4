package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/ken-eddy/salesApp/logging"
	"github.com/ken-eddy/salesApp/models"
)

const DefaultSummaryKey = "sales:dashboard:summary"

// SummaryCache is a cache-aside wrapper around the dashboard aggregation.
// Concurrent misses share one computation, which runs detached from any single
// caller's cancellation. With a nil client every call computes, still
// deduplicated.
type SummaryCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	group  singleflight.Group
	// generation is bumped by Invalidate; a computation only stores its
	// result if no invalidation happened while it ran.
	generation atomic.Uint64
}

func NewSummaryCache(client *redis.Client, key string, ttl time.Duration) *SummaryCache {
	if key == "" {
		key = DefaultSummaryKey
	}
	return &SummaryCache{client: client, key: key, ttl: ttl}
}

type ComputeFunc func(ctx context.Context) (*models.DashboardSummary, error)

func (c *SummaryCache) Get(ctx context.Context, compute ComputeFunc) (*models.DashboardSummary, error) {
	if c.client != nil {
		raw, err := c.client.Get(ctx, c.key).Result()
		switch {
		case err == nil:
			var summary models.DashboardSummary
			if jerr := json.Unmarshal([]byte(raw), &summary); jerr == nil {
				return &summary, nil
			}
		case !errors.Is(err, redis.Nil):
			logging.Log(logging.Fields{Service: "cache", Step: "get", Status: "error", Error: err.Error()})
		}
	}

	ch := c.group.DoChan(c.key, func() (interface{}, error) {
		detached := context.WithoutCancel(ctx)
		gen := c.generation.Load()
		summary, err := compute(detached)
		if err != nil {
			return nil, err
		}
		if c.generation.Load() == gen {
			c.store(detached, summary)
		}
		return summary, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.DashboardSummary), nil
	}
}

func (c *SummaryCache) store(ctx context.Context, summary *models.DashboardSummary) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key, string(data), c.ttl).Err(); err != nil {
		logging.Log(logging.Fields{Service: "cache", Step: "set", Status: "error", Error: err.Error()})
	}
}

// Invalidate drops the cached summary so the next Get recomputes it.
func (c *SummaryCache) Invalidate(ctx context.Context) error {
	c.generation.Add(1)
	c.group.Forget(c.key)
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.key).Err()
}
