// Package cache 以 Redis 快取每位使用者最近一次的分析結果。
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "ai-chart-analyst/internal/domain/analysis"
)

const lastKeyPrefix = "analysis:last:"

// RedisCache 實作 LastAnalysisCache。
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache 建立 Redis 快取並確認連線。
func NewRedisCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) SetLast(ctx context.Context, userUID string, rec domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return c.client.Set(ctx, lastKeyPrefix+userUID, data, c.ttl).Err()
}

func (c *RedisCache) GetLast(ctx context.Context, userUID string) (domain.Record, bool, error) {
	data, err := c.client.Get(ctx, lastKeyPrefix+userUID).Bytes()
	if err == redis.Nil {
		return domain.Record{}, false, nil
	}
	if err != nil {
		return domain.Record{}, false, err
	}
	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.Record{}, false, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec, true, nil
}

// Close 關閉底層連線。
func (c *RedisCache) Close() error {
	return c.client.Close()
}
