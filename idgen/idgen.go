// Package idgen 提供本地唯一且可排序的 ID 生成能力。
//
// 核心是 V0 生成器：毫秒时间戳加实例内单调计数器，输出形如
// "<machine_id>-<timestamp>-<counter>" 的字符串，同一实例内严格唯一，
// 字典序与生成顺序一致。另提供 UUID 生成器作为不需要排序语义时的替代。
//
// 使用示例:
//
//	gen := idgen.NewV0(idgen.WithV0MachineID("web-01"))
//	id := gen.Next() // "web-01-1756412345678-0000"
package idgen

import (
	"github.com/ceyewan/squid/xerrors"
)

// ========================================
// 接口定义 (Interface Definitions)
// ========================================

// Generator 通用 ID 生成器接口
//
// 只约定生成能力本身，后续版本的生成方案可以多态替换。
type Generator interface {
	// Next 返回下一个 ID 字符串
	Next() string
}

// ========================================
// 配置定义 (Configuration)
// ========================================

// Config 是 ID 生成器的通用配置
type Config struct {
	// Mode 指定生成器模式: "v0" | "uuid" (可选，默认 "v0")
	Mode string `mapstructure:"mode" yaml:"mode" json:"mode"`

	// V0 V0 生成器配置 (Mode="v0" 时使用)
	V0 *V0Config `mapstructure:"v0" yaml:"v0" json:"v0"`

	// UUID UUID 生成器配置 (Mode="uuid" 时使用)
	UUID *UUIDConfig `mapstructure:"uuid" yaml:"uuid" json:"uuid"`
}

// V0Config V0 生成器配置
type V0Config struct {
	// MachineID 显式指定的机器标识 (可选)
	// 为空时按 机器身份提供者 → 全零 UUID 兜底 的顺序解析
	MachineID string `mapstructure:"machine_id" yaml:"machine_id" json:"machine_id"`
}

// UUIDConfig UUID 生成器配置
type UUIDConfig struct {
	// Version UUID 版本 (可选，默认 "v7")
	// 支持: "v4" | "v7"
	Version string `mapstructure:"version" yaml:"version" json:"version"`
}

// setDefaults 补全默认值。
func (c *Config) setDefaults() {
	if c.Mode == "" {
		c.Mode = "v0"
	}
}

// validate 校验配置合法性。
func (c *Config) validate() error {
	switch c.Mode {
	case "v0", "uuid":
		return nil
	default:
		return xerrors.Wrapf(ErrInvalidConfig, "unsupported mode: %s", c.Mode)
	}
}

// ========================================
// 工厂函数 (Factory Functions)
// ========================================

// New 按配置创建 ID 生成器 (独立模式)
//
// 参数:
//   - cfg: 生成器配置，nil 时使用默认配置 (Mode="v0")
//   - opts: 可选参数 (Logger)
//
// 使用示例:
//
//	gen, _ := idgen.New(&idgen.Config{
//	    Mode: "v0",
//	    V0:   &idgen.V0Config{MachineID: "web-01"},
//	}, idgen.WithLogger(logger))
func New(cfg *Config, opts ...Option) (Generator, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opt := Options{}
	for _, o := range opts {
		o(&opt)
	}

	switch cfg.Mode {
	case "v0":
		v0opts := []V0Option{}
		if cfg.V0 != nil && cfg.V0.MachineID != "" {
			v0opts = append(v0opts, WithV0MachineID(cfg.V0.MachineID))
		}
		if opt.Logger != nil {
			v0opts = append(v0opts, WithV0Logger(opt.Logger))
		}
		return NewV0(v0opts...), nil
	case "uuid":
		uuidOpts := []UUIDOption{}
		if cfg.UUID != nil && cfg.UUID.Version != "" {
			uuidOpts = append(uuidOpts, WithUUIDVersion(cfg.UUID.Version))
		}
		return NewUUID(uuidOpts...), nil
	}

	// validate 已拦截未知模式
	return nil, xerrors.Wrapf(ErrInvalidConfig, "unsupported mode: %s", cfg.Mode)
}
