package clog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"
)

// NamespaceKey 是日志中命名空间的字段名。
const NamespaceKey = "namespace"

// loggerImpl 是 Logger 接口的具体实现。
//
// handler 与 level 在 With/WithNamespace 派生出的子 Logger 间共享，
// SetLevel 因此对整棵派生树生效。
type loggerImpl struct {
	handler        slog.Handler
	level          *slog.LevelVar
	syncer         interface{ Sync() error }
	baseAttrs      []slog.Attr
	namespaceParts []string
}

// newLogger 创建 Logger 实例（内部使用）。
func newLogger(config *Config, options *options) (Logger, error) {
	writer, syncer, err := openOutput(config.Output)
	if err != nil {
		return nil, err
	}

	parsed, err := ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}

	level := new(slog.LevelVar)
	level.Set(parsed.slogLevel())

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if strings.ToLower(config.Format) == "json" {
		handler = slog.NewJSONHandler(writer, handlerOpts)
	} else {
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	return &loggerImpl{
		handler:        handler,
		level:          level,
		syncer:         syncer,
		namespaceParts: options.namespaceParts,
	}, nil
}

// openOutput 将配置的输出目标转换为 writer。
func openOutput(output string) (io.Writer, interface{ Sync() error }, error) {
	switch output {
	case "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log output %s: %w", output, err)
		}
		return f, f, nil
	}
}

func (l *loggerImpl) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }
func (l *loggerImpl) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields) }
func (l *loggerImpl) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields) }
func (l *loggerImpl) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }

func (l *loggerImpl) Fatal(msg string, fields ...Field) {
	l.log(FatalLevel, msg, fields)
	l.Flush()
	os.Exit(1)
}

// With 创建带预设字段的子 Logger。
func (l *loggerImpl) With(fields ...Field) Logger {
	child := *l
	child.baseAttrs = append(append([]slog.Attr{}, l.baseAttrs...), fields...)
	return &child
}

// WithNamespace 创建扩展命名空间的子 Logger。
func (l *loggerImpl) WithNamespace(parts ...string) Logger {
	child := *l
	child.namespaceParts = append(append([]string{}, l.namespaceParts...), parts...)
	return &child
}

// SetLevel 动态调整日志级别。
func (l *loggerImpl) SetLevel(level Level) error {
	l.level.Set(level.slogLevel())
	return nil
}

// Flush 刷出缓冲的日志（文件输出时执行 Sync）。
func (l *loggerImpl) Flush() {
	if l.syncer != nil {
		_ = l.syncer.Sync()
	}
}

// log 组装 slog.Record 并交给 handler（内部使用）。
func (l *loggerImpl) log(level Level, msg string, fields []Field) {
	ctx := context.Background()
	slogLevel := level.slogLevel()
	if !l.handler.Enabled(ctx, slogLevel) {
		return
	}

	attrs := make([]slog.Attr, 0, len(l.baseAttrs)+len(fields)+1)
	if len(l.namespaceParts) > 0 {
		attrs = append(attrs, slog.String(NamespaceKey, strings.Join(l.namespaceParts, ".")))
	}
	attrs = append(attrs, l.baseAttrs...)
	attrs = append(attrs, fields...)

	// skip: runtime.Callers、log、Debug/Info 等入口方法
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	record := slog.NewRecord(time.Now(), slogLevel, msg, pcs[0])
	record.AddAttrs(attrs...)

	_ = l.handler.Handle(ctx, record)
}
