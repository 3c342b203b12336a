// README: Login throttle with doubling cooldown per consecutive failure.
package rider

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	throttleFailKey     = "login_throttle:%s:fails"
	throttleCooldownKey = "login_throttle:%s:cooldown"

	// Cooldown is min(cap, 2^failCount) seconds.
	throttleCooldownCap = 30 * time.Second
	throttleFailWindow  = 10 * time.Minute
)

type Throttle struct {
	redis *redis.Client
}

func NewThrottle(redis *redis.Client) *Throttle {
	return &Throttle{redis: redis}
}

// Wait reports how long the phone must wait before the next attempt. Zero
// means the attempt may proceed.
func (t *Throttle) Wait(ctx context.Context, phone string) (time.Duration, error) {
	ttl, err := t.redis.TTL(ctx, fmt.Sprintf(throttleCooldownKey, phone)).Result()
	if err != nil {
		return 0, err
	}
	if ttl > 0 {
		return ttl, nil
	}
	return 0, nil
}

func (t *Throttle) RecordFailure(ctx context.Context, phone string) error {
	failKey := fmt.Sprintf(throttleFailKey, phone)
	fails, err := t.redis.Incr(ctx, failKey).Result()
	if err != nil {
		return err
	}
	if err := t.redis.Expire(ctx, failKey, throttleFailWindow).Err(); err != nil {
		return err
	}
	return t.redis.Set(ctx, fmt.Sprintf(throttleCooldownKey, phone), 1, cooldownFor(int(fails))).Err()
}

func (t *Throttle) RecordSuccess(ctx context.Context, phone string) error {
	return t.redis.Del(ctx,
		fmt.Sprintf(throttleFailKey, phone),
		fmt.Sprintf(throttleCooldownKey, phone),
	).Err()
}

func cooldownFor(failCount int) time.Duration {
	d := time.Second
	for i := 0; i < failCount; i++ {
		d *= 2
		if d >= throttleCooldownCap {
			return throttleCooldownCap
		}
	}
	return d
}
