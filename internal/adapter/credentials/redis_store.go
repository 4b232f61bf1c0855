package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultTokenKey = "ticketing:auth:token"

// RedisStore keeps the bearer token in Redis so that every process of the
// client shares one login.
type RedisStore struct {
	redis  *redis.Client
	key    string
	logger *zap.Logger
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, key string, logger *zap.Logger) *RedisStore {
	if key == "" {
		key = DefaultTokenKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		redis:  client,
		key:    key,
		logger: logger,
		now:    time.Now,
	}
}

// Token returns the stored token. A missing or expired token yields "" and a
// nil error.
func (s *RedisStore) Token(ctx context.Context) (string, error) {
	token, err := s.redis.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	if expired(token, s.now()) {
		s.logger.Info("stored token has expired", zap.String("key", s.key))
		return "", nil
	}
	return token, nil
}

// Save stores the token. A zero ttl keeps it until Clear.
func (s *RedisStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, s.key, token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
