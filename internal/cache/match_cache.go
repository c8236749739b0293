package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"edumatch/internal/model"
)

// MatchCache memoizes ranking results under content-hash keys. There is no
// delete: staleness is handled by key-churn when any input changes, with the
// TTL as a backstop.
type MatchCache interface {
	Get(ctx context.Context, key string) (*model.MatchRanking, error)
	Set(ctx context.Context, key string, ranking *model.MatchRanking) error
}

type matchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMatchCache creates a match result cache with the given TTL.
func NewMatchCache(client *redis.Client, ttl time.Duration) MatchCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &matchCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *matchCache) key(k string) string {
	return fmt.Sprintf("match:%s", k)
}

func (c *matchCache) Get(ctx context.Context, key string) (*model.MatchRanking, error) {
	data, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ranking model.MatchRanking
	if err := json.Unmarshal([]byte(data), &ranking); err != nil {
		return nil, err
	}
	return &ranking, nil
}

func (c *matchCache) Set(ctx context.Context, key string, ranking *model.MatchRanking) error {
	data, err := json.Marshal(ranking)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), data, c.ttl).Err()
}
