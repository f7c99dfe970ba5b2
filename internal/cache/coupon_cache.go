package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"couponmart/internal/models"
)

// CouponCache is a read-through cache in front of coupon-by-id lookups.
// Cache misses and redis failures are both treated as misses; the store
// of record is always postgres.
type CouponCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewCouponCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *CouponCache {
	return &CouponCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func couponKey(id int64) string {
	return fmt.Sprintf("coupon:%d", id)
}

func (c *CouponCache) Get(ctx context.Context, id int64) (models.Coupon, bool) {
	if c == nil || c.client == nil {
		return models.Coupon{}, false
	}

	raw, err := c.client.Get(ctx, couponKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Int64("coupon_id", id).Msg("coupon cache read failed")
		}
		return models.Coupon{}, false
	}

	var coupon models.Coupon
	if err := json.Unmarshal(raw, &coupon); err != nil {
		c.log.Warn().Err(err).Int64("coupon_id", id).Msg("coupon cache decode failed")
		return models.Coupon{}, false
	}
	return coupon, true
}

func (c *CouponCache) Set(ctx context.Context, coupon models.Coupon) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(coupon)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, couponKey(coupon.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Int64("coupon_id", coupon.ID).Msg("coupon cache write failed")
	}
}

// Invalidate removes a cached coupon after any mutation of its row.
func (c *CouponCache) Invalidate(ctx context.Context, id int64) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, couponKey(id)).Err(); err != nil {
		c.log.Warn().Err(err).Int64("coupon_id", id).Msg("coupon cache invalidate failed")
	}
}
