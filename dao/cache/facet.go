package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const facetGenKey = "notes:facet:gen"

// FacetStorage 筛选项缓存。
// 键带代数，Invalidate 递增代数，旧代数下写入的值不会再被读到
type FacetStorage struct {
	redis *redis.Client
}

func NewFacetStorage(rds *redis.Client) *FacetStorage {
	return &FacetStorage{redis: rds}
}

// Generation 当前代数，未初始化为 0
func (f *FacetStorage) Generation(ctx context.Context) (int64, error) {
	gen, err := f.redis.Get(ctx, facetGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get 命中返回 (values, true)
func (f *FacetStorage) Get(ctx context.Context, gen int64, field string) ([]string, bool) {
	data, err := f.redis.Get(ctx, f.name(gen, field)).Bytes()
	if err != nil {
		return nil, false
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, false
	}
	return values, true
}

// Set gen 取自查询数据库之前
func (f *FacetStorage) Set(ctx context.Context, gen int64, field string, values []string, ttl time.Duration) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return f.redis.Set(ctx, f.name(gen, field), data, ttl).Err()
}

// Invalidate 递增代数，旧键随 TTL 过期
func (f *FacetStorage) Invalidate(ctx context.Context) error {
	return f.redis.Incr(ctx, facetGenKey).Err()
}

// notes:facet:{gen}:{field}
func (f *FacetStorage) name(gen int64, field string) string {
	return fmt.Sprintf("notes:facet:%d:%s", gen, field)
}
