// Package machineid 为 squid 提供机器身份解析能力。
//
// Provider 是 idgen 在构造阶段消费的外部协作者：返回一个标识本机的
// 字符串，或返回错误。调用方（idgen.V0）会把任何解析失败静默降级为
// FallbackID，因此 Provider 实现只需如实报告失败，无需自行兜底。
//
// 内置四种实现：
//   - Static:   固定字符串，原样返回，不做任何校验
//   - Host:     读取宿主机身份文件（/etc/machine-id 等）
//   - NewRedis: 通过 Redis 抢占编号槽位，生成注册式身份
//   - NewEtcd:  通过 Etcd 租约抢占编号槽位，生成注册式身份
//
// 基本使用：
//
//	gen := idgen.NewV0(idgen.WithV0Provider(machineid.Host()))
package machineid

import "context"

// FallbackID 身份解析失败时使用的占位身份：全零 UUID。
//
// 使用占位身份时，同机多进程之间的碰撞防护退化为仅靠时间戳加计数器。
const FallbackID = "00000000-0000-0000-0000-000000000000"

// Provider 机器身份提供者接口。
type Provider interface {
	// Resolve 解析本机身份。实现可能读取文件、访问注册后端，
	// 应尊重 ctx 的取消与超时。
	Resolve(ctx context.Context) (string, error)
}

// OrFallback 解析身份，失败时返回 FallbackID。
//
// p 为 nil 时直接返回 FallbackID。
func OrFallback(ctx context.Context, p Provider) string {
	if p == nil {
		return FallbackID
	}
	id, err := p.Resolve(ctx)
	if err != nil || id == "" {
		return FallbackID
	}
	return id
}

// staticProvider 固定身份实现（内部使用）。
type staticProvider struct {
	id string
}

// Static 返回一个总是解析为给定字符串的 Provider。
//
// 字符串原样透传，不做格式校验；空串视为解析失败。
func Static(id string) Provider {
	return staticProvider{id: id}
}

func (p staticProvider) Resolve(ctx context.Context) (string, error) {
	if p.id == "" {
		return "", ErrUnavailable
	}
	return p.id, nil
}
