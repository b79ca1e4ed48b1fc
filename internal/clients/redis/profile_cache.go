package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
)

// ProfileCache is a read-through cache for aggregated profile payloads.
// Optional: callers treat a nil cache as a permanent miss, and redis
// errors degrade to the database path.
type ProfileCache interface {
	Get(ctx context.Context, bioguideID string) ([]byte, bool)
	Set(ctx context.Context, bioguideID string, payload []byte)
	Close() error
}

type profileCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewProfileCache(log *logger.Logger) (ProfileCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttl := 5 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("PROFILE_CACHE_TTL_SECONDS")); raw != "" {
		if parsed, err := time.ParseDuration(raw + "s"); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &profileCache{
		log: log.With("service", "RedisProfileCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func cacheKey(bioguideID string) string {
	return "profile:" + bioguideID
}

func (c *profileCache) Get(ctx context.Context, bioguideID string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey(bioguideID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Profile cache get failed", "bioguide_id", bioguideID, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (c *profileCache) Set(ctx context.Context, bioguideID string, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(bioguideID), payload, c.ttl).Err(); err != nil {
		c.log.Warn("Profile cache set failed", "bioguide_id", bioguideID, "error", err)
	}
}

func (c *profileCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
