package idgen

import (
	"github.com/google/uuid"
)

// ========================================
// 静态便捷函数 (Static Convenience Functions)
// ========================================

// NewUUIDV7 生成 UUID v7 (时间排序)
//
// 使用示例:
//
//	uid := idgen.NewUUIDV7()
func NewUUIDV7() string {
	v7, _ := uuid.NewV7()
	return v7.String()
}

// NewUUIDV4 生成 UUID v4 (随机)
func NewUUIDV4() string {
	return uuid.New().String()
}

// ========================================
// 实例模式 (Instance Mode)
// ========================================

// UUID UUID 生成器，实现 Generator 接口
//
// 不带机器标识和计数器语义，适合不需要可排序 ID 的场景。
type UUID struct {
	version string
}

// UUIDOption UUID 初始化选项
type UUIDOption func(*UUID)

// WithUUIDVersion 设置 UUID 版本
// 支持: "v4" | "v7"，其余取值按 v7 处理
func WithUUIDVersion(version string) UUIDOption {
	return func(u *UUID) {
		u.version = version
	}
}

// NewUUID 创建 UUID 生成器
//
// 使用示例:
//
//	gen := idgen.NewUUID(idgen.WithUUIDVersion("v4"))
//	uid := gen.Next()
func NewUUID(opts ...UUIDOption) *UUID {
	u := &UUID{
		version: "v7",
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Next 生成 UUID 字符串
func (u *UUID) Next() string {
	if u.version == "v4" {
		return NewUUIDV4()
	}
	return NewUUIDV7()
}
