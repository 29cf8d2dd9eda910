// Package redis caches completed audits so repeat requests inside the cache
// window skip the database entirely.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/leadai/readiness/internal/domain"
)

type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*ResultCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &ResultCache{client: client, ttl: ttl}, nil
}

func (c *ResultCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("redis.ResultCache.Close: %w", err)
	}
	return nil
}

// Get returns the cached audit for the user/domain pair, or (nil, nil) on a
// miss. Corrupt entries are dropped and treated as misses.
func (c *ResultCache) Get(ctx context.Context, userID uuid.UUID, dom string) (*domain.Audit, error) {
	key := AuditKey(userID, dom)

	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis.ResultCache.Get: %w", err)
	}

	var a domain.Audit
	if err := json.Unmarshal(payload, &a); err != nil {
		_ = c.client.Del(ctx, key).Err()
		return nil, nil
	}

	return &a, nil
}

// Set stores a completed audit under the user/domain key. The TTL matches
// the cache window, so entries expire on their own.
func (c *ResultCache) Set(ctx context.Context, a *domain.Audit) error {
	if a.Status != domain.AuditStatusCompleted {
		return fmt.Errorf("redis.ResultCache.Set: audit %s is %s, not completed", a.ID, a.Status)
	}

	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("redis.ResultCache.Set: marshal: %w", err)
	}

	// Shrink the TTL for entries cached partway through their window.
	ttl := c.ttl - time.Since(a.CreatedAt)
	if ttl <= 0 {
		return nil
	}

	if err := c.client.Set(ctx, AuditKey(a.UserID, a.Domain), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis.ResultCache.Set: %w", err)
	}

	return nil
}

// Invalidate drops the cached audit for the user/domain pair.
func (c *ResultCache) Invalidate(ctx context.Context, userID uuid.UUID, dom string) error {
	if err := c.client.Del(ctx, AuditKey(userID, dom)).Err(); err != nil {
		return fmt.Errorf("redis.ResultCache.Invalidate: %w", err)
	}
	return nil
}

// AuditKey returns the cache key for a user/domain pair.
func AuditKey(userID uuid.UUID, dom string) string {
	return "audit:" + userID.String() + ":" + dom
}
