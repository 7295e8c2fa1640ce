// File: internal/auth/otp_redis.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOTPKeyPrefix = "bluestock:otp:"

// RedisOTPStore keeps pending registrations in redis, letting the server's
// native key TTL expire unverified drafts. Used when the dev gateway runs
// with OTP_STORE_BACKEND=redis.
type RedisOTPStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ OTPStore = (*RedisOTPStore)(nil)

// NewRedisOTPStore creates a redis-backed OTP store with the given code TTL.
func NewRedisOTPStore(rdb *redis.Client, ttl time.Duration) *RedisOTPStore {
	return &RedisOTPStore{rdb: rdb, ttl: ttl}
}

func (s *RedisOTPStore) Put(ctx context.Context, p PendingRegistration) error {
	if p.ExpiresAt.IsZero() {
		p.ExpiresAt = time.Now().Add(s.ttl)
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode pending registration: %w", err)
	}
	ttl := time.Until(p.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, redisOTPKeyPrefix+p.Draft.MobileNumber, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store pending registration: %w", err)
	}
	return nil
}

func (s *RedisOTPStore) Get(ctx context.Context, mobile string) (*PendingRegistration, error) {
	payload, err := s.rdb.Get(ctx, redisOTPKeyPrefix+mobile).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load pending registration: %w", err)
	}

	var p PendingRegistration
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("failed to decode pending registration: %w", err)
	}
	if p.Expired(time.Now()) {
		return nil, nil
	}
	return &p, nil
}

func (s *RedisOTPStore) Delete(ctx context.Context, mobile string) error {
	if err := s.rdb.Del(ctx, redisOTPKeyPrefix+mobile).Err(); err != nil {
		return fmt.Errorf("failed to delete pending registration: %w", err)
	}
	return nil
}
