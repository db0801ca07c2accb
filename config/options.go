package config

import "github.com/ceyewan/squid/clog"

// Option 组件初始化选项函数。
type Option func(*options)

type options struct {
	logger clog.Logger
}

// WithLogger 设置 Logger，用于记录加载与热更新过程。
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
		o.logger = o.logger.WithNamespace("config")
	}
	return o
}
