// Package xerrors 提供 squid 各组件共用的错误处理工具：
// 错误包装、机器可读错误码，以及标准库 errors 的再导出。
package xerrors

import (
	"errors"
	"fmt"
)

// 标准库函数再导出，调用方无需同时导入 errors 包。
var (
	New    = errors.New
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// Wrap 为错误附加上下文信息，错误链保持可用 Is/As 检查。
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf 为错误附加格式化的上下文信息。
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// CodedError 携带机器可读错误码的错误，用于跨组件的错误分类。
type CodedError struct {
	Code  string
	Cause error
}

func (e *CodedError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%s]", e.Code)
	}
	return fmt.Sprintf("[%s] %v", e.Code, e.Cause)
}

func (e *CodedError) Unwrap() error { return e.Cause }

// WithCode 用错误码包装错误，哨兵错误仍可通过 Is 命中。
func WithCode(err error, code string) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: code, Cause: err}
}

// GetCode 提取错误链中最近一层的错误码，未找到时返回空串。
func GetCode(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

// Must 在 err 非 nil 时 panic，仅应在进程初始化阶段使用。
func Must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("must: %v", err))
	}
	return v
}
