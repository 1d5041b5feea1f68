package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"servicecatalog/internal/catalog/schema"
	"servicecatalog/pkg/platform/sentinel"
)

// RedisTier shares adapted results between instances as JSON values.
type RedisTier struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTier(client *redis.Client, ttl time.Duration) *RedisTier {
	return &RedisTier{client: client, ttl: ttl}
}

// Get returns sentinel.ErrCacheMiss when the key is absent or expired.
func (t *RedisTier) Get(ctx context.Context, key string) (*schema.Service, error) {
	raw, err := t.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	var svc schema.Service
	if err := json.Unmarshal(raw, &svc); err != nil {
		return nil, fmt.Errorf("decode cached service %s: %w", key, err)
	}
	return &svc, nil
}

func (t *RedisTier) Set(ctx context.Context, key string, svc *schema.Service) error {
	raw, err := json.Marshal(svc)
	if err != nil {
		return fmt.Errorf("encode cached service %s: %w", key, err)
	}
	if err := t.client.Set(ctx, key, raw, t.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
