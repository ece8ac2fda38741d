package helper

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"restaurant_manager/config"
	"restaurant_manager/model"

	"github.com/redis/go-redis/v9"
)

const menuCacheKey = "menu:disponible"
const menuCacheTTL = 5 * time.Minute

var menuCache *redis.Client

// InitMenuCache connects the Redis client backing the menu cache. Without
// REDIS_ADDR the cache stays disabled and menu reads go straight to the store.
func InitMenuCache() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, menu cache disabled")
		return
	}
	menuCache = redis.NewClient(&redis.Options{Addr: addr})
}

// CachedMenu returns the cached available menu, if any.
func CachedMenu(ctx context.Context) ([]model.Product, bool) {
	if menuCache == nil {
		return nil, false
	}
	data, err := menuCache.Get(ctx, menuCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false
	}
	return products, true
}

// StoreMenu caches the available menu with a short TTL.
func StoreMenu(ctx context.Context, products []model.Product) {
	if menuCache == nil {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := menuCache.Set(ctx, menuCacheKey, data, menuCacheTTL).Err(); err != nil {
		log.Printf("menu cache store failed: %v", err)
	}
}

// InvalidateMenu drops the cached menu after any product or category write.
func InvalidateMenu(ctx context.Context) {
	if menuCache == nil {
		return
	}
	if err := menuCache.Del(ctx, menuCacheKey).Err(); err != nil {
		log.Printf("menu cache invalidation failed: %v", err)
	}
}
