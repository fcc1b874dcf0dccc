package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a Redis cache. Defaults can be loaded via
// envdecode.
type RedisConfig struct {
	// Client is an existing client. When nil, one is created from Addr.
	Client redis.UniversalClient

	// Addr like "localhost:6379". ENV: OMEDA_REDIS_ADDR
	Addr string `env:"OMEDA_REDIS_ADDR,default=localhost:6379"`

	// DB selects the logical database. ENV: OMEDA_REDIS_DB
	DB int `env:"OMEDA_REDIS_DB,default=0"`

	// KeyPrefix is prepended to every key built by the cache.
	// ENV: OMEDA_REDIS_KEY_PREFIX
	KeyPrefix string `env:"OMEDA_REDIS_KEY_PREFIX"`

	// TTL applies when Set is called with a zero TTL.
	TTL time.Duration `env:"OMEDA_REDIS_TTL,default=1h"`
}

// RedisConfigFromEnv reads a RedisConfig from the OMEDA_REDIS_*
// variables, applying the tag defaults for unset ones.
func RedisConfigFromEnv() (RedisConfig, error) {
	var cfg RedisConfig
	if err := envdecode.Decode(&cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return RedisConfig{}, fmt.Errorf("decode redis config: %w", err)
	}
	return cfg, nil
}

// Redis is a cache shared between processes through Redis. Entries are
// JSON documents stored with SET ... EX, so Redis expires them itself.
type Redis struct {
	DefaultKeyer

	client redis.UniversalClient
	ttl    time.Duration
	owned  bool
}

// redisItem is the JSON document stored under each key.
type redisItem struct {
	ContentType string    `json:"contentType"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewRedis creates a Redis cache. It does not contact the server; use
// Ping to check connectivity.
func NewRedis(cfg RedisConfig) *Redis {
	client, owned := cfg.Client, false
	if client == nil {
		addr := cfg.Addr
		if addr == "" {
			addr = "localhost:6379"
		}
		client = redis.NewClient(&redis.Options{Addr: addr, DB: cfg.DB})
		owned = true
	}
	return &Redis{
		DefaultKeyer: DefaultKeyer{Prefix: cfg.KeyPrefix},
		client:       client,
		ttl:          cfg.TTL,
		owned:        owned,
	}
}

// Ping checks that the server is reachable.
func (c *Redis) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return wrapErr(fmt.Errorf("redis ping: %w", err), "ping", "")
	}
	return nil
}

// Get retrieves a value from Redis.
func (c *Redis) Get(ctx context.Context, key string) (*Entry, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(err, "get", key)
	}

	var item redisItem
	if err := json.Unmarshal([]byte(val), &item); err != nil {
		return nil, wrapErr(fmt.Errorf("unmarshal stored item: %w", err), "get", key)
	}
	return &Entry{ContentType: item.ContentType, Body: []byte(item.Body)}, nil
}

// Set stores a value in Redis with an expiry.
func (c *Redis) Set(ctx context.Context, key string, body []byte, ttl time.Duration, contentType string) error {
	data, err := json.Marshal(redisItem{
		ContentType: contentType,
		Body:        string(body),
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return wrapErr(err, "set", key)
	}
	if err := c.client.Set(ctx, key, data, ttlOrDefault(ttl, c.ttl)).Err(); err != nil {
		return wrapErr(err, "set", key)
	}
	return nil
}

// Delete removes a key.
func (c *Redis) Delete(ctx context.Context, key string) error {
	return wrapErr(c.client.Del(ctx, key).Err(), "delete", key)
}

// Clear deletes every key carrying this cache's prefix. It scans rather
// than flushing so other data in the database is left alone.
func (c *Redis) Clear(ctx context.Context) (int, error) {
	pattern := c.keyPrefix() + ":*"
	count := 0
	iter := c.client.Scan(ctx, 0, pattern, 500).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return count, wrapErr(err, "clear", iter.Val())
		}
		count++
	}
	if err := iter.Err(); err != nil {
		return count, wrapErr(err, "clear", pattern)
	}
	return count, nil
}

// Close closes the client when the cache created it.
func (c *Redis) Close() error {
	if !c.owned {
		return nil
	}
	return c.client.Close()
}

func (c *Redis) keyPrefix() string {
	if c.Prefix != "" {
		return c.Prefix
	}
	return KeyPrefix
}

var (
	_ Cache   = (*Redis)(nil)
	_ Deleter = (*Redis)(nil)
	_ Clearer = (*Redis)(nil)
)
