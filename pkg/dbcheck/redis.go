package dbcheck

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/formhandler/pkg/rules"
)

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// ConnectRedis connects and pings, retrying until the timeout expires.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisURL, err)
	}

	for range cfg.RetryAttempts {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrRedisNotReady
}

// SetMembership is the part of redis.Cmdable used by RedisCounter.
type SetMembership interface {
	SIsMember(ctx context.Context, key string, member any) *redis.BoolCmd
	SAdd(ctx context.Context, key string, members ...any) *redis.IntCmd
}

// RedisCounter looks values up in sets keyed "<model>:<field>".
// Each field is an independent set, so a multi-field query reports 1 when
// every value is a member and 0 otherwise.
type RedisCounter struct {
	client SetMembership
}

// NewRedisCounter creates a counter over client.
func NewRedisCounter(client SetMembership) *RedisCounter {
	return &RedisCounter{client: client}
}

// Count implements Counter.
func (r *RedisCounter) Count(ctx context.Context, model string, query Query) (int64, error) {
	if len(query) == 0 {
		return 0, nil
	}
	for field, value := range query {
		ok, err := r.client.SIsMember(ctx, RedisKey(model, field), rules.Stringify(value)).Result()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, nil
		}
	}
	return 1, nil
}

// Index adds the values of record to the sets of model.
func (r *RedisCounter) Index(ctx context.Context, model string, record map[string]any) error {
	for field, value := range record {
		if err := r.client.SAdd(ctx, RedisKey(model, field), rules.Stringify(value)).Err(); err != nil {
			return err
		}
	}
	return nil
}

// RedisKey returns the set key of a model field.
func RedisKey(model, field string) string {
	return model + ":" + field
}
