package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/boxoffice/config"
	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds seats for in-flight sales and a snapshot of the session
// listing.
type RedisCache struct {
	client      *redis.Client
	sessionsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, sessionsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		sessionsTTL: sessionsTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetSessions returns nil, nil on a miss.
func (c *RedisCache) GetSessions(ctx context.Context) ([]domain.Session, error) {
	data, err := c.client.Get(ctx, sessionsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var sessions []domain.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decode cached sessions: %w", err)
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	return sessions, nil
}

func (c *RedisCache) SetSessions(ctx context.Context, sessions []domain.Session) error {
	payload, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, sessionsKey(), payload, c.sessionsTTL).Err()
}

func (c *RedisCache) InvalidateSessions(ctx context.Context) error {
	return c.client.Del(ctx, sessionsKey()).Err()
}

func (c *RedisCache) AcquireSeatLock(ctx context.Context, sessionID int64, seat int, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatLockKey(sessionID, seat), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSeatLock(ctx context.Context, sessionID int64, seat int) error {
	return c.client.Del(ctx, seatLockKey(sessionID, seat)).Err()
}

func sessionsKey() string {
	return "cache:sessions"
}

func seatLockKey(sessionID int64, seat int) string {
	return fmt.Sprintf("lock:session:%d:seat:%d", sessionID, seat)
}
