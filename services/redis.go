package services

import (
	"context"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RedisService is the cache layer for hot reads, currently the
// leaderboards. Every method tolerates a missing client so the platform
// keeps serving from Postgres when Redis is down.
type RedisService struct {
	appContext.DefaultService

	client *redis.Client
}

const REDIS_SVC = "redis_svc"

func (svc RedisService) Id() string {
	return REDIS_SVC
}

func (svc *RedisService) Configure(ctx *appContext.Context) error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	db := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsed, err := strconv.Atoi(dbStr); err == nil {
			db = parsed
		}
	}

	svc.client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	return svc.DefaultService.Configure(ctx)
}

func (svc *RedisService) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := svc.client.Ping(ctx).Result(); err != nil {
		log.WithError(err).Warn("Redis unreachable, caching disabled")
		svc.client = nil
	}
	return nil
}

func (svc *RedisService) Shutdown() {
	if svc.client != nil {
		_ = svc.client.Close()
	}
}

// Available reports whether caching is active for this process.
func (svc *RedisService) Available() bool {
	return svc.client != nil
}

// GetJSON loads a cached value into dest. The bool is false on a miss,
// on a decode failure, or when caching is disabled.
func (svc *RedisService) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if svc.client == nil {
		return false
	}

	raw, err := svc.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.WithError(err).WithField("key", key).Warn("Cache read failed")
		}
		return false
	}
	if err := sonic.Unmarshal(raw, dest); err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache entry corrupt, dropping")
		_ = svc.client.Del(ctx, key).Err()
		return false
	}
	return true
}

// SetJSON stores a value under key with a TTL. Failures are logged and
// swallowed; a cold cache is not an error condition.
func (svc *RedisService) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if svc.client == nil {
		return
	}

	raw, err := sonic.Marshal(value)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache encode failed")
		return
	}
	if err := svc.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

// DeletePattern removes every key matching a glob pattern, used to
// invalidate all leaderboard variants after a points-changing write.
func (svc *RedisService) DeletePattern(ctx context.Context, pattern string) {
	if svc.client == nil {
		return
	}

	keys, err := svc.client.Keys(ctx, pattern).Result()
	if err != nil {
		log.WithError(err).WithField("pattern", pattern).Warn("Cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := svc.client.Del(ctx, keys...).Err(); err != nil {
		log.WithError(err).WithField("pattern", pattern).Warn("Cache invalidation failed")
	}
}
