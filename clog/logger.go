package clog

// Logger 日志接口，提供结构化日志记录功能。
//
// 支持五个日志级别：Debug、Info、Warn、Error、Fatal。
// Fatal 在输出日志后退出进程。
//
// 基本使用：
//
//	logger.Info("id generated", clog.String("id", id))
//
// 创建子 Logger：
//
//	child := logger.With(clog.String("component", "idgen"))
//	scoped := logger.WithNamespace("machineid", "redis")
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	// With 创建一个带有预设字段的子 Logger，预设字段出现在所有日志中。
	With(fields ...Field) Logger

	// WithNamespace 创建一个扩展命名空间的子 Logger。
	// 命名空间段以 "." 连接，作为日志中的 namespace 字段。
	WithNamespace(parts ...string) Logger

	// SetLevel 运行时动态调整日志级别，对同一 handler 派生出的
	// 所有子 Logger 生效。
	SetLevel(level Level) error

	// Flush 强制刷出缓冲的日志，用于进程退出前。
	Flush()
}
