// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/omar46/sultans-admin/internal/platform/apperr"
	"github.com/omar46/sultans-admin/internal/platform/constants"
)

// Throttle limits failed login attempts per email.
type Throttle interface {
	// Check returns RATE_LIMITED when the email has exhausted its attempts.
	Check(ctx context.Context, email string) error
	// RecordFailure counts one failed attempt.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, email string) error
}

// RedisThrottle implements Throttle with a per-email counter that expires
// after the throttle window.
type RedisThrottle struct {
	client *redis.Client
}

// NewRedisThrottle creates a Redis-backed login throttle.
func NewRedisThrottle(client *redis.Client) *RedisThrottle {
	return &RedisThrottle{client: client}
}

func throttleKey(email string) string {
	return fmt.Sprintf("%s%s", constants.RedisPrefixLoginThrottle, email)
}

/*
Check rejects the login attempt when the failure counter has reached the
limit.

Description: The TTL of the counter key doubles as the retry-after hint.

Parameters:
  - context: context.Context
  - email: normalized login email

Returns:
  - error: apperr.RateLimited or connectivity errors
*/
func (throttle *RedisThrottle) Check(context context.Context, email string) error {

	// Read the current counter; a missing key means zero failures.
	count, err := throttle.client.Get(context, throttleKey(email)).Int()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return fmt.Errorf("redis_throttle_check_failed: %w", err)
	}

	if count < constants.LoginThrottleMaxAttempts {
		return nil
	}

	// Over the limit. Report how long until the window resets.
	ttl, err := throttle.client.TTL(context, throttleKey(email)).Result()
	if err != nil || ttl < 0 {
		ttl = constants.LoginThrottleWindow
	}
	return apperr.RateLimited(int(ttl.Seconds()))
}

/*
RecordFailure increments the failure counter and refreshes its window.

Parameters:
  - context: context.Context
  - email: normalized login email

Returns:
  - error: Connectivity errors
*/
func (throttle *RedisThrottle) RecordFailure(context context.Context, email string) error {

	key := throttleKey(email)

	// INCR then EXPIRE: the window restarts on every failure.
	if err := throttle.client.Incr(context, key).Err(); err != nil {
		return fmt.Errorf("redis_throttle_incr_failed: %w", err)
	}
	if err := throttle.client.Expire(context, key, constants.LoginThrottleWindow).Err(); err != nil {
		return fmt.Errorf("redis_throttle_expire_failed: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (throttle *RedisThrottle) Reset(context context.Context, email string) error {
	if err := throttle.client.Del(context, throttleKey(email)).Err(); err != nil {
		return fmt.Errorf("redis_throttle_reset_failed: %w", err)
	}
	return nil
}

// NoopThrottle disables login throttling. Used in tests and development
// mode where no Redis is available.
type NoopThrottle struct{}

func (NoopThrottle) Check(context.Context, string) error         { return nil }
func (NoopThrottle) RecordFailure(context.Context, string) error { return nil }
func (NoopThrottle) Reset(context.Context, string) error         { return nil }
