package keystore

import (
	"context"
	"errors"
	"time"

	goRedis "github.com/redis/go-redis/v9"

	"github.com/blossomapp/client/internal/config"
)

// Redis stores credentials in a shared Redis instance, for deployments where
// several client processes share one session (kiosk or server-rendered use).
type Redis struct {
	client *goRedis.Client
	prefix string
}

// OpenRedis creates the Redis client and performs a health check.
func OpenRedis(cfg config.KeystoreConfig) (*Redis, error) {
	opts, err := goRedis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	if cfg.RedisDB != 0 {
		opts.DB = cfg.RedisDB
	}

	client := goRedis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewRedis(client, cfg.Namespace), nil
}

// NewRedis wraps an existing client, mostly useful in tests.
func NewRedis(client *goRedis.Client, namespace string) *Redis {
	if namespace == "" {
		namespace = "blossom"
	}
	return &Redis{
		client: client,
		prefix: namespace + ":",
	}
}

func (s *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, goRedis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *Redis) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *Redis) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

func (s *Redis) Close() error {
	return s.client.Close()
}
