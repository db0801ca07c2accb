package machineid

import (
	"context"

	"github.com/ceyewan/squid/clog"
	"github.com/ceyewan/squid/xerrors"
)

// ========================================
// 注册式身份 (Registry-backed Identity)
// ========================================

// RegistryProvider 注册式身份提供者接口。
//
// 与 Host/Static 不同，注册式身份在共享后端抢占一个编号槽位，
// 以租约维持占有。适合容器环境中宿主机身份文件不可用或不唯一的场景。
// 典型用法：
//
//	provider, _ := machineid.NewRedis(redisConn, nil)
//	id, _ := provider.Resolve(ctx)
//	defer provider.Stop()
//
//	go func() {
//	    if err := <-provider.KeepAlive(ctx); err != nil {
//	        // 租约失效，身份可能被其他实例复用
//	    }
//	}()
type RegistryProvider interface {
	Provider

	// KeepAlive 维持槽位租约（内部启动 goroutine），租约失效时向
	// 返回的通道发送错误。
	KeepAlive(ctx context.Context) <-chan error

	// Stop 停止保活并释放槽位。
	Stop()
}

// RegistryConfig 注册式身份提供者配置。
type RegistryConfig struct {
	// KeyPrefix 后端键前缀 (可选，默认 "squid:machineid")
	KeyPrefix string `mapstructure:"key_prefix" json:"key_prefix" yaml:"key_prefix"`

	// NamePrefix 身份字符串前缀 (可选，默认 "squid")
	// 解析出的身份形如 "<NamePrefix>-<slot>"
	NamePrefix string `mapstructure:"name_prefix" json:"name_prefix" yaml:"name_prefix"`

	// MaxSlots 槽位总数 (可选，默认 1024)
	MaxSlots int `mapstructure:"max_slots" json:"max_slots" yaml:"max_slots"`

	// TTL 租约秒数 (可选，默认 30)
	TTL int `mapstructure:"ttl" json:"ttl" yaml:"ttl"`
}

// setDefaults 补全默认值。
func (c *RegistryConfig) setDefaults() {
	if c.KeyPrefix == "" {
		c.KeyPrefix = "squid:machineid"
	}
	if c.NamePrefix == "" {
		c.NamePrefix = "squid"
	}
	if c.MaxSlots <= 0 {
		c.MaxSlots = 1024
	}
	if c.TTL <= 0 {
		c.TTL = 30
	}
}

// Option 注册式提供者的初始化选项函数。
type Option func(*options)

type options struct {
	logger clog.Logger
}

// WithLogger 设置 Logger。
func WithLogger(logger clog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func applyOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = clog.Discard()
	} else {
		o.logger = o.logger.With(clog.String("component", "machineid"))
	}
	return o
}

func validateRegistry(cfg *RegistryConfig) (*RegistryConfig, error) {
	if cfg == nil {
		cfg = &RegistryConfig{}
	}
	cfg.setDefaults()
	if cfg.MaxSlots > 1<<20 {
		return nil, xerrors.WithCode(ErrInvalidInput, "max_slots_too_large")
	}
	return cfg, nil
}
