package testkit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ceyewan/squid/connector"
)

// GetRedisConfig 返回 Redis 测试配置
// 默认连接 localhost:6379，可通过 SQUID_TEST_REDIS_ADDR 覆盖
func GetRedisConfig() *connector.RedisConfig {
	addr := os.Getenv("SQUID_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	return &connector.RedisConfig{
		Name:        "test-redis",
		Addr:        addr,
		DB:          1, // 使用 DB 1 避免与默认的 DB 0 冲突
		DialTimeout: 2 * time.Second,
	}
}

// GetRedisConnector 获取已连接的 Redis 连接器，不可用时跳过测试。
func GetRedisConnector(t *testing.T) connector.RedisConnector {
	conn, err := connector.NewRedis(GetRedisConfig(), connector.WithLogger(NewLogger()))
	if err != nil {
		t.Fatalf("failed to create redis connector: %v", err)
	}

	if err := conn.Connect(context.Background()); err != nil {
		t.Skipf("redis unavailable, skipping: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

// GetRedisClient 获取原生 Redis 客户端
func GetRedisClient(t *testing.T) *redis.Client {
	return GetRedisConnector(t).GetClient()
}
