package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStore возвращается при ошибках обращения к Redis
var ErrStore = errors.New("revocation: store error")

type redisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore список отозванных токенов в Redis
// Ключ <prefix>:revoked:<jti> живёт до истечения токена
type RedisStore struct {
	client redisClient
	prefix string
}

// NewRedisStore создает хранилище поверх клиента Redis
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Revoke отзывает токен на ttl
func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Revoke - set: %v", ErrStore, err)
	}
	return nil
}

// IsRevoked проверяет, отозван ли токен
func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: IsRevoked - exists: %v", ErrStore, err)
	}
	return n > 0, nil
}

func (s *RedisStore) key(tokenID string) string {
	return s.prefix + ":revoked:" + tokenID
}

// NoopStore используется при [redis].enabled = false: выход из системы ничего не отзывает
type NoopStore struct{}

func (NoopStore) Revoke(context.Context, string, time.Duration) error { return nil }
func (NoopStore) IsRevoked(context.Context, string) (bool, error)     { return false, nil }

// NewRedisClient создает клиента и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrStore, addr, err)
	}
	return client, nil
}
