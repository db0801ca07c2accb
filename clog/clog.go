// Package clog 为 squid 提供基于 slog 的结构化日志组件。
//
// 特性：
//   - 抽象接口，不暴露底层实现（slog）
//   - 支持层级命名空间，便于区分组件来源
//   - 零外部依赖（仅依赖 Go 标准库）
//   - 支持运行时动态调整日志级别
//
// 基本使用：
//
//	logger, _ := clog.New(&clog.Config{
//	    Level:  "info",
//	    Format: "console",
//	    Output: "stdout",
//	})
//	logger.Info("generator ready", clog.String("machine_id", id))
//
// 组件内部应接受注入的 Logger，并在未注入时使用 clog.Discard()
// 保持静默，或使用 clog.Default() 输出到标准输出。
package clog

import (
	"fmt"
	"sync"
)

// New 创建一个新的 Logger 实例。
//
// config 为 nil 时使用默认配置（info 级别，console 格式，stdout 输出）。
// opts 用于设置命名空间等选项。
func New(config *Config, opts ...Option) (Logger, error) {
	if config == nil {
		config = &Config{}
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	options := applyOptions(opts...)

	return newLogger(config, options)
}

var (
	defaultOnce   sync.Once
	defaultLogger Logger
)

// Default 返回进程级默认 Logger（info 级别，console 格式，stdout）。
//
// 默认 Logger 惰性初始化且进程内唯一，适合未显式注入 Logger 的场景。
func Default() Logger {
	defaultOnce.Do(func() {
		logger, err := New(nil)
		if err != nil {
			logger = Discard()
		}
		defaultLogger = logger
	})
	return defaultLogger
}
