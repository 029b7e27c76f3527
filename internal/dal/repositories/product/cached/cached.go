package cached

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/vkurdin/shop-svc/internal/dal/interfaces/iproductrepo"
	"github.com/vkurdin/shop-svc/internal/dal/redis"
	"github.com/vkurdin/shop-svc/internal/service/models/product"
)

// CachedProductRepository is a cache-aside decorator over the Postgres
// product repository. Cache failures are logged and fall through to the
// inner repository; the read path never depends on Redis being up.
type CachedProductRepository struct {
	inner iproductrepo.IProductRepository
	cache *redis.Client
	ttl   time.Duration
}

// NewCachedProductRepository creates a new cached product repository.
func NewCachedProductRepository(
	inner iproductrepo.IProductRepository,
	cache *redis.Client,
) *CachedProductRepository {
	ttlSeconds := viper.GetInt("redis.product_ttl_seconds")
	if ttlSeconds == 0 {
		ttlSeconds = 60
	}

	return &CachedProductRepository{
		inner: inner,
		cache: cache,
		ttl:   time.Duration(ttlSeconds) * time.Second,
	}
}

// FindByID retrieves a product by id, consulting the cache first.
func (r *CachedProductRepository) FindByID(
	ctx context.Context,
	id string,
) (*product.Product, error) {
	key := cacheKey(id)

	if cached, err := r.cache.Get(ctx, key); err != nil {
		slog.Warn("Product cache read failed", "product_id", id, "error", err)
	} else if cached != "" {
		var p product.Product
		if err := json.Unmarshal([]byte(cached), &p); err == nil {
			return &p, nil
		}
		slog.Warn("Product cache entry corrupted, falling through", "product_id", id)
	}

	p, err := r.inner.FindByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}

	if payload, err := json.Marshal(p); err == nil {
		if err := r.cache.Set(ctx, key, payload, r.ttl); err != nil {
			slog.Warn("Product cache write failed", "product_id", id, "error", err)
		}
	}

	return p, nil
}

func cacheKey(id string) string {
	return fmt.Sprintf("shop-svc:product:%s", id)
}
