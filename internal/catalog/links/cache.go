package links

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// cacheMargin keeps cached URLs from outliving their usefulness: an entry
// expires this long before the signed URL itself does.
const cacheMargin = 60 * time.Second

// URLCache caches presigned URLs in Redis so repeated listings of the same
// page do not re-sign every image. Misses and Redis errors both read as a
// cache miss.
type URLCache struct {
	client *redis.Client
}

func NewURLCache(client *redis.Client) *URLCache {
	return &URLCache{client: client}
}

func (c *URLCache) Get(ctx context.Context, key string, expiry time.Duration) (string, bool) {
	url, err := c.client.Get(ctx, c.cacheKey(key, expiry)).Result()
	if err != nil {
		return "", false
	}
	return url, true
}

func (c *URLCache) Put(ctx context.Context, key string, expiry time.Duration, url string) {
	ttl := expiry - cacheMargin
	if ttl <= 0 {
		return
	}
	// best effort; a failed write just means the next request re-signs
	c.client.Set(ctx, c.cacheKey(key, expiry), url, ttl)
}

// cacheKey buckets by expiry so listing and detail URLs never collide.
func (c *URLCache) cacheKey(key string, expiry time.Duration) string {
	return fmt.Sprintf("links:url:%d:%s", int(expiry.Seconds()), key)
}
