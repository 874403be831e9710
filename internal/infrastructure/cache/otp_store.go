package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eazydocs/eazydocs-backend/pkg/helpers"
)

// OTPStore keeps one-time codes in Redis under otp:<email> with a per-key
// TTL. SET overwrites any prior code for the same address.
type OTPStore struct {
	rdb *redis.Client
}

func NewOTPStore(rdb *redis.Client) *OTPStore {
	return &OTPStore{rdb: rdb}
}

func (s *OTPStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.rdb.Set(ctx, helpers.KeyOTP(email), code, ttl).Err()
}

// Get returns the active code, or ok=false when none exists (never issued,
// expired, or already consumed).
func (s *OTPStore) Get(ctx context.Context, email string) (string, bool, error) {
	code, err := s.rdb.Get(ctx, helpers.KeyOTP(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return code, true, nil
}

func (s *OTPStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, helpers.KeyOTP(email)).Err()
}
