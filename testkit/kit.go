// Package testkit 提供集成测试的共享工具。
//
// 后端连接器默认指向本地实例，地址可通过环境变量覆盖；
// 后端不可用时测试跳过而不是失败。
package testkit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ceyewan/squid/clog"
)

// NewLogger 返回一个用于测试的 logger，console 格式便于本地调试。
func NewLogger() clog.Logger {
	logger, err := clog.New(&clog.Config{Level: "debug", Format: "console"})
	if err != nil {
		return clog.Discard()
	}
	return logger
}

// NewContext 返回一个带超时的测试上下文，测试结束时自动取消。
func NewContext(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx, cancel
}

// NewID 返回一个唯一的测试 ID (UUID v4 前 8 位)
// 用于生成唯一的 Key 前缀，避免测试间数据冲突
func NewID() string {
	return uuid.New().String()[0:8]
}
