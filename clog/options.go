package clog

// Option 函数式选项，用于配置 Logger 实例。
type Option func(*options)

// options 内部选项结构。
type options struct {
	namespaceParts []string
}

// WithNamespace 设置初始命名空间，支持多级。
//
// 示例：
//
//	// namespace 字段为 "squid.idgen"
//	clog.New(cfg, clog.WithNamespace("squid", "idgen"))
func WithNamespace(parts ...string) Option {
	return func(o *options) {
		o.namespaceParts = append(o.namespaceParts, parts...)
	}
}

// applyOptions 应用所有选项（内部使用）。
func applyOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
