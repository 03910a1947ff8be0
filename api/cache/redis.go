package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"Litreview/api/config"
)

var Client *redis.Client

const revokedPrefix = "litreview:session:revoked:"

// Init connects to Redis using either the configured URL (redis:// or
// rediss://) or a plain address. Without either, Client stays nil and every
// helper below is a no-op.
func Init(cfg *config.RedisConfig) error {
	switch {
	case cfg.URL != "":
		opt, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return fmt.Errorf("failed to parse redis url: %w", err)
		}
		Client = redis.NewClient(opt)
	case cfg.Addr != "":
		Client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	default:
		Client = nil
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := Client.Ping(ctx).Err(); err != nil {
		_ = Client.Close()
		Client = nil
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

func Close() error {
	if Client == nil {
		return nil
	}
	return Client.Close()
}

// Revocations remembers session ids that were logged out before their
// natural expiry.
type Revocations struct{}

func (Revocations) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if Client == nil || ttl <= 0 {
		return nil
	}
	return Client.Set(ctx, revokedPrefix+jti, "1", ttl).Err()
}

func (Revocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if Client == nil {
		return false, nil
	}
	_, err := Client.Get(ctx, revokedPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
