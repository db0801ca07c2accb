// Package connector 为 squid 提供统一的连接管理能力。
//
// 核心特性：
//   - 统一抽象：通过 Connector 接口提供一致的连接管理 API
//   - 类型安全：通过 TypedConnector[T] 泛型接口确保编译时类型检查
//   - 健康检查：HealthCheck 主动探测，IsHealthy 读取缓存状态
//   - 资源管理：遵循"谁创建，谁负责释放"原则，Close 应在应用层调用
//
// squid 只依赖 Redis 与 Etcd 两类后端，分别服务于 machineid 包的
// 注册式身份提供者。
//
// 基本使用：
//
//	conn, err := connector.NewRedis(&connector.RedisConfig{
//	    Addr: "127.0.0.1:6379",
//	}, connector.WithLogger(logger))
//	if err != nil {
//	    panic(err)
//	}
//	defer conn.Close()
//
//	if err := conn.Connect(ctx); err != nil {
//	    panic(err)
//	}
//	client := conn.GetClient()
package connector

import (
	"context"

	"github.com/redis/go-redis/v9"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// Connector 定义所有连接器的通用行为。
//
// 接口方法均为并发安全，可从多个协程同时调用。
type Connector interface {
	// Connect 建立连接并验证可达性。幂等，可安全多次调用。
	Connect(ctx context.Context) error

	// Close 关闭连接并释放资源。幂等。
	Close() error

	// HealthCheck 主动探测连接健康状态，并更新内部缓存。
	HealthCheck(ctx context.Context) error

	// IsHealthy 返回最后一次探测的健康状态，不发起网络请求。
	IsHealthy() bool

	// Name 返回连接实例名称，用于日志与排查。
	Name() string
}

// TypedConnector 提供类型安全的客户端访问。
//
// 类型参数 T 是底层客户端类型，如 *redis.Client、*clientv3.Client。
// 在 Connect 之前或 Close 之后调用 GetClient 可能返回 nil。
type TypedConnector[T any] interface {
	Connector

	GetClient() T
}

// RedisConnector Redis 连接器接口。
type RedisConnector interface {
	TypedConnector[*redis.Client]
}

// EtcdConnector Etcd 连接器接口。
type EtcdConnector interface {
	TypedConnector[*clientv3.Client]
}
