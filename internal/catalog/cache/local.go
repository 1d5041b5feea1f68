package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"servicecatalog/internal/catalog/schema"
)

// LocalTier is a size-bounded in-process tier whose entries expire after ttl.
type LocalTier struct {
	lru *expirable.LRU[string, schema.Service]
}

func NewLocalTier(size int, ttl time.Duration) *LocalTier {
	return &LocalTier{lru: expirable.NewLRU[string, schema.Service](size, nil, ttl)}
}

// Get returns a copy of the cached value.
func (t *LocalTier) Get(key string) (*schema.Service, bool) {
	v, ok := t.lru.Get(key)
	if !ok {
		return nil, false
	}
	return &v, true
}

func (t *LocalTier) Set(key string, svc *schema.Service) {
	t.lru.Add(key, *svc)
}

func (t *LocalTier) Len() int { return t.lru.Len() }
