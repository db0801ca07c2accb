package machineid

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// fakeRedisConnector 满足接口但不连接任何后端，用于生命周期测试。
type fakeRedisConnector struct{}

func (fakeRedisConnector) Connect(ctx context.Context) error     { return nil }
func (fakeRedisConnector) Close() error                          { return nil }
func (fakeRedisConnector) HealthCheck(ctx context.Context) error { return nil }
func (fakeRedisConnector) IsHealthy() bool                       { return true }
func (fakeRedisConnector) Name() string                          { return "fake-redis" }
func (fakeRedisConnector) GetClient() *redis.Client              { return nil }

type fakeEtcdConnector struct{}

func (fakeEtcdConnector) Connect(ctx context.Context) error     { return nil }
func (fakeEtcdConnector) Close() error                          { return nil }
func (fakeEtcdConnector) HealthCheck(ctx context.Context) error { return nil }
func (fakeEtcdConnector) IsHealthy() bool                       { return true }
func (fakeEtcdConnector) Name() string                          { return "fake-etcd" }
func (fakeEtcdConnector) GetClient() *clientv3.Client           { return nil }

// ========================================
// Static 单元测试
// ========================================

func TestStatic(t *testing.T) {
	t.Run("returns the given string verbatim", func(t *testing.T) {
		id, err := Static("my-device-01").Resolve(context.Background())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if id != "my-device-01" {
			t.Errorf("Expected verbatim identity, got %q", id)
		}
	})

	t.Run("no normalization is applied", func(t *testing.T) {
		raw := "6BA7B8109DAD11D180B400C04FD430C8"
		id, _ := Static(raw).Resolve(context.Background())
		if id != raw {
			t.Errorf("Static must not rewrite the identity, got %q", id)
		}
	})

	t.Run("empty string fails", func(t *testing.T) {
		if _, err := Static("").Resolve(context.Background()); err == nil {
			t.Error("Expected error for empty identity")
		}
	})
}

// ========================================
// Host 单元测试
// ========================================

func TestHost(t *testing.T) {
	ctx := context.Background()

	t.Run("env override wins", func(t *testing.T) {
		t.Setenv("SQUID_TEST_MID", "from-env")
		p := Host(WithEnvKey("SQUID_TEST_MID"), WithPaths())
		id, err := p.Resolve(ctx)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if id != "from-env" {
			t.Errorf("Expected env identity, got %q", id)
		}
	})

	t.Run("reads first available file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "machine-id")
		if err := os.WriteFile(path, []byte("my-host-id\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		p := Host(WithEnvKey("SQUID_UNSET_MID"), WithPaths(filepath.Join(dir, "missing"), path))
		id, err := p.Resolve(ctx)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if id != "my-host-id" {
			t.Errorf("Expected file identity, got %q", id)
		}
	})

	t.Run("bare hex machine-id is normalized to dashed uuid", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "machine-id")
		if err := os.WriteFile(path, []byte("6ba7b8109dad11d180b400c04fd430c8\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		p := Host(WithEnvKey("SQUID_UNSET_MID"), WithPaths(path))
		id, err := p.Resolve(ctx)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if id != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
			t.Errorf("Expected normalized uuid, got %q", id)
		}
	})

	t.Run("no source yields ErrUnavailable", func(t *testing.T) {
		p := Host(WithEnvKey("SQUID_UNSET_MID"), WithPaths(filepath.Join(t.TempDir(), "missing")))
		if _, err := p.Resolve(ctx); err == nil {
			t.Error("Expected error when no identity source exists")
		}
	})
}

// ========================================
// OrFallback 单元测试
// ========================================

func TestOrFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("nil provider falls back", func(t *testing.T) {
		if OrFallback(ctx, nil) != FallbackID {
			t.Error("Expected fallback identity for nil provider")
		}
	})

	t.Run("failing provider falls back", func(t *testing.T) {
		p := Host(WithEnvKey("SQUID_UNSET_MID"), WithPaths())
		if OrFallback(ctx, p) != FallbackID {
			t.Error("Expected fallback identity for failing provider")
		}
	})

	t.Run("successful provider passes through", func(t *testing.T) {
		if OrFallback(ctx, Static("dev-7")) != "dev-7" {
			t.Error("Expected provider identity to pass through")
		}
	})

	t.Run("fallback is the all-zero uuid", func(t *testing.T) {
		if FallbackID != "00000000-0000-0000-0000-000000000000" {
			t.Errorf("Unexpected fallback identity: %s", FallbackID)
		}
	})
}

// ========================================
// 注册式提供者配置单元测试
// ========================================

func TestRegistryConfig(t *testing.T) {
	t.Run("defaults are applied", func(t *testing.T) {
		cfg, err := validateRegistry(nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.KeyPrefix != "squid:machineid" || cfg.NamePrefix != "squid" {
			t.Errorf("Unexpected prefix defaults: %+v", cfg)
		}
		if cfg.MaxSlots != 1024 || cfg.TTL != 30 {
			t.Errorf("Unexpected numeric defaults: %+v", cfg)
		}
	})

	t.Run("oversized max_slots rejected", func(t *testing.T) {
		if _, err := validateRegistry(&RegistryConfig{MaxSlots: 1 << 21}); err == nil {
			t.Error("Expected error for oversized max_slots")
		}
	})

	t.Run("nil redis connector rejected", func(t *testing.T) {
		if _, err := NewRedis(nil, nil); err == nil {
			t.Error("Expected error for nil connector")
		}
	})

	t.Run("nil etcd connector rejected", func(t *testing.T) {
		if _, err := NewEtcd(nil, nil); err == nil {
			t.Error("Expected error for nil connector")
		}
	})
}

// ========================================
// 注册式提供者生命周期单元测试
// ========================================

func TestRegistryLifecycle(t *testing.T) {
	t.Run("keep alive tolerates small ttl", func(t *testing.T) {
		p, err := NewRedis(fakeRedisConnector{}, &RegistryConfig{TTL: 2})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		defer p.Stop()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errCh := p.KeepAlive(ctx)
		select {
		case err := <-errCh:
			t.Errorf("Unexpected keep alive error: %v", err)
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("redis stop is idempotent", func(t *testing.T) {
		p, err := NewRedis(fakeRedisConnector{}, nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		p.Stop()
		p.Stop()
	})

	t.Run("etcd stop is idempotent", func(t *testing.T) {
		p, err := NewEtcd(fakeEtcdConnector{}, nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		p.Stop()
		p.Stop()
	})
}
