package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/config"
)

const (
	defaultCacheTTL  = time.Minute
	scanBatchSize    = 100
	redisDialTimeout = 5 * time.Second
)

// jsonStore keeps JSON payloads under one key prefix with a shared TTL.
// The dashboard and product list caches are thin typed wrappers over it.
type jsonStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func newJSONStore(cfg config.CacheConfig, prefix string) (*jsonStore, error) {
	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s failed: %w", opts.Addr, err)
	}

	return &jsonStore{client: client, prefix: prefix, ttl: cacheTTL(cfg)}, nil
}

// key namespaces a suffix under the store prefix.
func (s *jsonStore) key(suffix string) string {
	return s.prefix + ":" + suffix
}

// get decodes the payload stored under suffix into dst. A missing key is a
// miss, not an error.
func (s *jsonStore) get(ctx context.Context, suffix string, dst any) (bool, error) {
	payload, err := s.client.Get(ctx, s.key(suffix)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", s.prefix, err)
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("decode %s cache: %w", s.prefix, err)
	}
	return true, nil
}

func (s *jsonStore) set(ctx context.Context, suffix string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s cache: %w", s.prefix, err)
	}
	if err := s.client.Set(ctx, s.key(suffix), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.prefix, err)
	}
	return nil
}

// clear removes every key under the prefix, SCANning in batches so large
// keyspaces are never blocked by a single KEYS call.
func (s *jsonStore) clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.prefix+":*", scanBatchSize).Iterator()
	batch := make([]string, 0, scanBatchSize)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatchSize {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis delete %s: %w", s.prefix, err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan %s: %w", s.prefix, err)
	}
	if len(batch) > 0 {
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis delete %s: %w", s.prefix, err)
		}
	}
	return nil
}

func cacheTTL(cfg config.CacheConfig) time.Duration {
	if cfg.DashboardTTLSeconds <= 0 {
		return defaultCacheTTL
	}
	return time.Duration(cfg.DashboardTTLSeconds) * time.Second
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host, port := cfg.RedisHost, cfg.RedisPort
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "6379"
	}
	return &redis.Options{
		Addr:        net.JoinHostPort(host, port),
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: redisDialTimeout,
	}, nil
}

// hashKey is the hex sha1 of raw, used when a key suffix would be unbounded.
func hashKey(raw string) string {
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
