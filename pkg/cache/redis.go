// Package cache 提供 Redis 客户端封装，支持连接池与 JSON 序列化
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wyfcoding/atlasvision/pkg/logging"
)

// ErrCacheMiss 表示缓存中不存在该 key
var ErrCacheMiss = redis.Nil

// Config Redis 配置
type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	MaxPoolSize  int
	ConnTimeout  int
	ReadTimeout  int
	WriteTimeout int
}

// RedisCache Redis 缓存实现
type RedisCache struct {
	client *redis.Client
	config Config
}

// New 创建 Redis 缓存实例
func New(cfg Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.MaxPoolSize,
		ConnMaxIdleTime: time.Duration(cfg.ConnTimeout) * time.Second,
		ReadTimeout:     time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:    time.Duration(cfg.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.Info(context.Background(), "Redis connected successfully", "addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port))

	return &RedisCache{
		client: client,
		config: cfg,
	}, nil
}

// Get 获取缓存值，key 不存在时返回 ErrCacheMiss
func (rc *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := rc.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		logging.Error(ctx, "Redis Get failed", "key", key, "error", err)
		return "", err
	}
	return val, nil
}

// GetJSON 获取 JSON 格式的缓存值并反序列化到 dest
func (rc *RedisCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	val, err := rc.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Set 设置缓存值
func (rc *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	err := rc.client.Set(ctx, key, value, expiration).Err()
	if err != nil {
		logging.Error(ctx, "Redis Set failed", "key", key, "error", err)
		return err
	}
	return nil
}

// SetJSON 设置 JSON 格式的缓存值
func (rc *RedisCache) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rc.Set(ctx, key, string(data), expiration)
}

// SetNX 仅当 key 不存在时设置值
func (rc *RedisCache) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	ok, err := rc.client.SetNX(ctx, key, value, expiration).Result()
	if err != nil {
		logging.Error(ctx, "Redis SetNX failed", "key", key, "error", err)
		return false, err
	}
	return ok, nil
}

// Delete 删除缓存
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := rc.client.Del(ctx, keys...).Err()
	if err != nil {
		logging.Error(ctx, "Redis Delete failed", "keys", keys, "error", err)
		return err
	}
	return nil
}

// Exists 检查 key 是否存在
func (rc *RedisCache) Exists(ctx context.Context, keys ...string) (int64, error) {
	count, err := rc.client.Exists(ctx, keys...).Result()
	if err != nil {
		logging.Error(ctx, "Redis Exists failed", "keys", keys, "error", err)
		return 0, err
	}
	return count, nil
}

// Close 关闭 Redis 连接
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// GetClient 获取底层 Redis 客户端
func (rc *RedisCache) GetClient() *redis.Client {
	return rc.client
}
