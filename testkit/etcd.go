package testkit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ceyewan/squid/connector"
)

// GetEtcdConfig 返回 Etcd 测试配置
// 默认连接 localhost:2379，可通过 SQUID_TEST_ETCD_ENDPOINTS 覆盖
func GetEtcdConfig() *connector.EtcdConfig {
	endpoints := []string{"localhost:2379"}
	if v := os.Getenv("SQUID_TEST_ETCD_ENDPOINTS"); v != "" {
		endpoints = []string{v}
	}
	return &connector.EtcdConfig{
		Name:        "test-etcd",
		Endpoints:   endpoints,
		DialTimeout: 2 * time.Second,
	}
}

// GetEtcdConnector 获取已连接的 Etcd 连接器，不可用时跳过测试。
func GetEtcdConnector(t *testing.T) connector.EtcdConnector {
	conn, err := connector.NewEtcd(GetEtcdConfig(), connector.WithLogger(NewLogger()))
	if err != nil {
		t.Fatalf("failed to create etcd connector: %v", err)
	}

	if err := conn.Connect(context.Background()); err != nil {
		t.Skipf("etcd unavailable, skipping: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}
