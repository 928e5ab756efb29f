package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker/v2"

	"github.com/mzansi-market/storefront/internal/core/domain"
)

const defaultPrefix = "storefront:"

// KVOptions tunes retries and the circuit breaker of a KVStore.
type KVOptions struct {
	Prefix       string
	Retries      uint64
	RetryBackoff time.Duration
	// BreakerThreshold is the number of consecutive failures that opens the
	// breaker; BreakerCooldown is how long it stays open.
	BreakerThreshold uint32
	BreakerCooldown  time.Duration
}

func (o KVOptions) withDefaults() KVOptions {
	if o.Prefix == "" {
		o.Prefix = defaultPrefix
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = 50 * time.Millisecond
	}
	if o.BreakerThreshold == 0 {
		o.BreakerThreshold = 5
	}
	if o.BreakerCooldown <= 0 {
		o.BreakerCooldown = 30 * time.Second
	}
	return o
}

// KVStore is durable key-value storage backed by Redis. Keys are stored as
// <prefix><key> without expiry. Connection faults are retried with
// exponential backoff and surface as domain.ErrTransient.
type KVStore struct {
	client  *redis.Client
	opts    KVOptions
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewKVStore wraps client. Zero-valued options take defaults.
func NewKVStore(client *redis.Client, opts KVOptions) *KVStore {
	opts = opts.withDefaults()
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "redis-kv",
		Timeout: opts.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.BreakerThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrKeyNotFound)
		},
	})
	return &KVStore{client: client, opts: opts, breaker: breaker}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.do(ctx, "get", key, func(ctx context.Context) ([]byte, error) {
		b, err := s.client.Get(ctx, s.key(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrKeyNotFound
		}
		return b, err
	})
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.do(ctx, "set", key, func(ctx context.Context) ([]byte, error) {
		return nil, s.client.Set(ctx, s.key(key), value, 0).Err()
	})
	return err
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	_, err := s.do(ctx, "delete", key, func(ctx context.Context) ([]byte, error) {
		return nil, s.client.Del(ctx, s.key(key)).Err()
	})
	return err
}

// do runs op through the breaker, retrying anything but a missing key.
func (s *KVStore) do(ctx context.Context, name, key string, op func(context.Context) ([]byte, error)) ([]byte, error) {
	out, err := s.breaker.Execute(func() ([]byte, error) {
		var result []byte
		backoff := retry.WithMaxRetries(s.opts.Retries, retry.NewExponential(s.opts.RetryBackoff))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			b, err := op(ctx)
			if err == nil || errors.Is(err, domain.ErrKeyNotFound) {
				result = b
				return err
			}
			return retry.RetryableError(err)
		})
		return result, err
	})
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, domain.ErrKeyNotFound):
		return nil, err
	default:
		return nil, fmt.Errorf("redis %s %s: %w: %w", name, key, domain.ErrTransient, err)
	}
}

func (s *KVStore) key(key string) string {
	return s.opts.Prefix + key
}
