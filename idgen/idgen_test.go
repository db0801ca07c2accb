package idgen

import (
	"testing"

	"github.com/ceyewan/squid/xerrors"
)

// ========================================
// 工厂函数
// ========================================

func TestNew(t *testing.T) {
	t.Run("nil config defaults to v0", func(t *testing.T) {
		gen, err := New(nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if _, ok := gen.(*V0); !ok {
			t.Errorf("Expected *V0, got %T", gen)
		}
	})

	t.Run("v0 mode carries machine id from config", func(t *testing.T) {
		gen, err := New(&Config{
			Mode: "v0",
			V0:   &V0Config{MachineID: "cfg-node"},
		})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if gen.(*V0).MachineID() != "cfg-node" {
			t.Errorf("Expected cfg-node, got %s", gen.(*V0).MachineID())
		}
	})

	t.Run("uuid mode", func(t *testing.T) {
		gen, err := New(&Config{Mode: "uuid", UUID: &UUIDConfig{Version: "v4"}})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if _, ok := gen.(*UUID); !ok {
			t.Errorf("Expected *UUID, got %T", gen)
		}
	})

	t.Run("unknown mode rejected", func(t *testing.T) {
		_, err := New(&Config{Mode: "snowflake"})
		if err == nil {
			t.Fatal("Expected error for unknown mode")
		}
		if !xerrors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

// ========================================
// UUID 生成器
// ========================================

func TestUUID(t *testing.T) {
	t.Run("v4 format", func(t *testing.T) {
		id := NewUUIDV4()
		if len(id) != 36 {
			t.Errorf("Unexpected uuid length: %d (%s)", len(id), id)
		}
	})

	t.Run("v7 is time ordered", func(t *testing.T) {
		gen := NewUUID()
		a := gen.Next()
		b := gen.Next()
		if !(a < b) {
			t.Errorf("Expected v7 ordering, got %s then %s", a, b)
		}
	})

	t.Run("unknown version falls back to v7", func(t *testing.T) {
		gen := NewUUID(WithUUIDVersion("v9"))
		if id := gen.Next(); len(id) != 36 {
			t.Errorf("Unexpected uuid length: %d (%s)", len(id), id)
		}
	})
}
