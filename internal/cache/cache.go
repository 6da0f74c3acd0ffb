package cache

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"applications-server/internal/config"

	"github.com/redis/go-redis/v9"
)

// 查询结果缓存的过期时间，与历史行为保持一致（120 秒）。
const ReadTTL = 120 * time.Second

var (
	redisOnce   sync.Once
	redisClient *redis.Client
	redisReady  bool
)

// GetRedisClient 获取 Redis 客户端；当未启用或不可用时返回 nil。
func GetRedisClient() *redis.Client {
	redisOnce.Do(initRedisClient)
	if !redisReady {
		return nil
	}
	return redisClient
}

// Key 基于配置前缀拼接 Redis 键名。
func Key(parts ...string) string {
	cfg := config.Get()
	prefix := cfg.Redis.Prefix
	if prefix == "" {
		prefix = "applications_server"
	}
	if len(parts) == 0 {
		return prefix
	}
	key := prefix
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// GetBytes 读取缓存值。缓存未启用、未命中或出错都按未命中处理。
func GetBytes(ctx context.Context, key string) ([]byte, bool) {
	client := GetRedisClient()
	if client == nil {
		return nil, false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

// SetBytes 写入缓存值。写入失败静默忽略，缓存只是加速层。
func SetBytes(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	client := GetRedisClient()
	if client == nil {
		return
	}
	_ = client.Set(ctx, key, payload, ttl).Err()
}

func initRedisClient() {
	cfg := config.Get()
	if !cfg.Redis.Enabled {
		redisReady = false
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		redisReady = false
		_ = client.Close()
		log.Printf("⚠️ Redis 不可用，查询缓存关闭: %v", err)
		return
	}

	redisClient = client
	redisReady = true
	log.Printf("✅ Redis 已连接: %s (db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
}

// CloseRedisClient 关闭 Redis 客户端连接。
func CloseRedisClient() error {
	if redisClient == nil {
		return nil
	}
	err := redisClient.Close()
	if err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}
