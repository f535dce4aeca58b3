package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Per-operation result lifetimes. Daily summaries go stale quickly; range
// reports change only when historical data is corrected.
const (
	summaryTTL = 5 * time.Minute
	reportTTL  = 60 * time.Minute
)

// Cache memoizes expensive analytics results in Redis as JSON payloads keyed
// by operation name and date parameters.
type Cache struct {
	client *redis.Client
}

// NewCache instantiates the cache helper. A nil client disables caching and
// every fetch falls through to the loader.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// FetchJSON loads a cached value or populates it using the loader.
func (c *Cache) FetchJSON(ctx context.Context, key string, ttl time.Duration, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dest)
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if err != redis.Nil {
		return err
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// StoreJSON unconditionally overwrites the cached value, resetting its TTL.
// Used by the out-of-band warmup job.
func (c *Cache) StoreJSON(ctx context.Context, key string, ttl time.Duration, value interface{}) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

func keyDailySummary(date time.Time) string {
	return strings.Join([]string{"analytics", "daily_summary", date.Format(dateLayout)}, ":")
}

func keyRangeAverages(r DateRange) string {
	return strings.Join([]string{"analytics", "range_averages", r.Start.Format(dateLayout), r.End.Format(dateLayout)}, ":")
}

func keyRangeDetail(r DateRange) string {
	return strings.Join([]string{"analytics", "range_detail", r.Start.Format(dateLayout), r.End.Format(dateLayout)}, ":")
}

func keyComparison(a, b DateRange) string {
	return strings.Join([]string{
		"analytics", "comparison",
		a.Start.Format(dateLayout), a.End.Format(dateLayout),
		b.Start.Format(dateLayout), b.End.Format(dateLayout),
	}, ":")
}
