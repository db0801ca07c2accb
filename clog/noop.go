package clog

// noopLogger 是一个什么都不做的 Logger 实现（内部使用）。
type noopLogger struct{}

// Discard 返回一个静默的 Logger 实例，所有方法均为空操作。
//
// 组件在未注入 Logger 时应使用 Discard() 兜底，避免 nil 判断散落各处。
func Discard() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(msg string, fields ...Field) {}
func (noopLogger) Info(msg string, fields ...Field)  {}
func (noopLogger) Warn(msg string, fields ...Field)  {}
func (noopLogger) Error(msg string, fields ...Field) {}
func (noopLogger) Fatal(msg string, fields ...Field) {}

func (n noopLogger) With(fields ...Field) Logger          { return n }
func (n noopLogger) WithNamespace(parts ...string) Logger { return n }

func (noopLogger) SetLevel(level Level) error { return nil }
func (noopLogger) Flush()                     {}
