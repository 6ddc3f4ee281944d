package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"invest-indicators/internal/model"

	goredis "github.com/go-redis/redis/v8"
)

// ErrCacheMiss is returned by GetSeries when the key is absent or expired.
var ErrCacheMiss = errors.New("series cache miss")

var _ model.SeriesCache = (*Cache)(nil)

// CacheConfig configures the Redis series cache.
type CacheConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration // 0 disables expiry

	// Breaker settings; zero values pick 5 failures / 10s.
	MaxFailures  int
	ResetTimeout time.Duration
}

// Cache stores resolved price series in Redis as JSON strings. Every call
// goes through a circuit breaker so an unhealthy Redis degrades to
// store-only reads instead of slowing requests down.
type Cache struct {
	client  *goredis.Client
	ttl     time.Duration
	breaker *CircuitBreaker
}

// NewCache creates a Redis cache and pings the server.
func NewCache(cfg CacheConfig) (*Cache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	maxFailures := cfg.MaxFailures
	if maxFailures <= 0 {
		maxFailures = 5
	}
	reset := cfg.ResetTimeout
	if reset <= 0 {
		reset = 10 * time.Second
	}

	log.Printf("[redis-cache] connected to %s (ttl=%v)", cfg.Addr, cfg.TTL)
	return &Cache{
		client:  client,
		ttl:     cfg.TTL,
		breaker: NewCircuitBreaker(maxFailures, reset),
	}, nil
}

// Breaker exposes the circuit breaker so callers can observe state changes.
func (c *Cache) Breaker() *CircuitBreaker { return c.breaker }

// Client returns the underlying client for health checks.
func (c *Cache) Client() *goredis.Client { return c.client }

// GetSeries loads a cached series. Returns ErrCacheMiss when absent.
func (c *Cache) GetSeries(ctx context.Context, key string) (model.Series, error) {
	var data []byte
	err := c.breaker.Execute(func() error {
		b, err := c.client.Get(ctx, key).Bytes()
		if err == goredis.Nil {
			return ErrCacheMiss
		}
		data = b
		return err
	})
	if err != nil {
		return nil, err
	}
	return decodeSeries(data)
}

// SetSeries stores a series under key with the configured TTL.
func (c *Cache) SetSeries(ctx context.Context, key string, s model.Series) error {
	data, err := encodeSeries(s)
	if err != nil {
		return err
	}
	return c.breaker.Execute(func() error {
		return c.client.Set(ctx, key, data, c.ttl).Err()
	})
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}

func encodeSeries(s model.Series) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode series: %w", err)
	}
	return data, nil
}

func decodeSeries(data []byte) (model.Series, error) {
	var s model.Series
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode series: %w", err)
	}
	return s, nil
}
