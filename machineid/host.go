package machineid

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/ceyewan/squid/xerrors"
)

// 宿主机身份的默认来源，按顺序尝试。
var defaultHostPaths = []string{
	"/etc/machine-id",
	"/var/lib/dbus/machine-id",
}

// DefaultEnvKey 环境变量覆盖项，优先于身份文件。
const DefaultEnvKey = "SQUID_MACHINE_ID"

// hostProvider 从宿主机环境解析身份（内部使用）。
type hostProvider struct {
	envKey string
	paths  []string
}

// HostOption Host 提供者的初始化选项。
type HostOption func(*hostProvider)

// WithEnvKey 替换环境变量覆盖项的键名。
func WithEnvKey(key string) HostOption {
	return func(p *hostProvider) {
		p.envKey = key
	}
}

// WithPaths 替换身份文件的搜索路径，主要用于测试。
func WithPaths(paths ...string) HostOption {
	return func(p *hostProvider) {
		p.paths = paths
	}
}

// Host 返回从宿主机环境解析身份的 Provider。
//
// 解析顺序：环境变量 SQUID_MACHINE_ID → /etc/machine-id →
// /var/lib/dbus/machine-id。文件内容若是合法的 UUID（含无分隔符的
// 32 位十六进制形式），会规范化为带连字符的小写形式；其余内容原样
// 透传。所有来源都不可用时返回 ErrUnavailable。
func Host(opts ...HostOption) Provider {
	p := &hostProvider{
		envKey: DefaultEnvKey,
		paths:  defaultHostPaths,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *hostProvider) Resolve(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if v := strings.TrimSpace(os.Getenv(p.envKey)); v != "" {
		return normalize(v), nil
	}

	for _, path := range p.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			return normalize(v), nil
		}
	}

	return "", xerrors.Wrap(ErrUnavailable, "no host identity source found")
}

// normalize 将合法的 UUID 文本统一为带连字符的小写形式。
func normalize(s string) string {
	if parsed, err := uuid.Parse(s); err == nil {
		return parsed.String()
	}
	return s
}
