package idgen

import (
	"context"
	"fmt"
	"time"

	"github.com/ceyewan/squid/clog"
	"github.com/ceyewan/squid/machineid"
)

// V0 可排序的本地唯一 ID 生成器
//
// ID 由三段组成: 机器标识、毫秒时间戳、实例内单调计数器，
// 以连字符拼接。同一毫秒内计数器递增，跨毫秒归零，因此单实例
// 输出严格唯一，且在时间戳位数稳定、计数器未超过 9999 时
// 字典序与生成顺序一致。
//
// V0 内部不加锁。调用方要么把一个实例绑定在单个 goroutine 上，
// 要么用一把外部互斥锁包住所有 Next 调用；多个 goroutine 裸共享
// 一个实例会产生重复 ID。
//
// 已知边界 (有意保留，不做处理):
//   - 机器标识中的连字符不转义，解析 ID 时需从右侧切分
//   - 计数器超过 9999 后宽度变为 5 位，该毫秒内字典序与生成顺序不再一致
type V0 struct {
	machineID     string
	lastTimestamp uint64
	counter       uint64
	now           func() time.Time
	logger        clog.Logger
}

// V0Option V0 初始化选项
type V0Option func(*v0Options)

type v0Options struct {
	machineID string
	provider  machineid.Provider
	logger    clog.Logger
	now       func() time.Time
}

// WithV0MachineID 显式指定机器标识，原样嵌入 ID，不做校验。
// 优先级高于 WithV0Provider。
func WithV0MachineID(id string) V0Option {
	return func(o *v0Options) {
		o.machineID = id
	}
}

// WithV0Provider 注入机器身份提供者，构造时解析一次。
func WithV0Provider(p machineid.Provider) V0Option {
	return func(o *v0Options) {
		o.provider = p
	}
}

// WithV0Logger 设置 Logger。
func WithV0Logger(logger clog.Logger) V0Option {
	return func(o *v0Options) {
		o.logger = logger
	}
}

// WithV0Clock 替换时钟源，主要用于测试。
func WithV0Clock(now func() time.Time) V0Option {
	return func(o *v0Options) {
		o.now = now
	}
}

// NewV0 创建 V0 生成器，总是成功。
//
// 机器标识解析顺序: 显式指定 → 注入的提供者 → 宿主机环境。
// 解析失败不报错，静默退回全零 UUID (machineid.FallbackID)，
// 仅记录一条 Warn 日志。
//
// 使用示例:
//
//	// 显式标识
//	gen := idgen.NewV0(idgen.WithV0MachineID("web-01"))
//
//	// 走 Redis 注册式身份
//	provider, _ := machineid.NewRedis(redisConn, nil)
//	gen := idgen.NewV0(idgen.WithV0Provider(provider))
func NewV0(opts ...V0Option) *V0 {
	o := &v0Options{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = clog.Discard()
	} else {
		o.logger = o.logger.With(clog.String("component", "idgen"))
	}

	g := &V0{
		now:    o.now,
		logger: o.logger,
	}

	switch {
	case o.machineID != "":
		g.machineID = o.machineID
	default:
		provider := o.provider
		if provider == nil {
			provider = machineid.Host()
		}
		id, err := provider.Resolve(context.Background())
		if err != nil || id == "" {
			g.logger.Warn("machine identity unavailable, using fallback",
				clog.Error(err),
				clog.String("fallback", machineid.FallbackID),
			)
			id = machineid.FallbackID
		}
		g.machineID = id
	}

	g.logger.Info("v0 generator created", clog.String("machine_id", g.machineID))
	return g
}

// MachineID 返回本实例嵌入 ID 的机器标识。
func (g *V0) MachineID() string {
	return g.machineID
}

// Next 生成下一个 ID。
//
// 时钟早于 Unix 纪元时 panic，这属于环境配置错误，继续生成只会
// 产出错误排序的 ID。panic 前不修改内部状态。
func (g *V0) Next() string {
	ms := g.now().UnixMilli()
	if ms < 0 {
		panic(fmt.Sprintf("idgen: wall clock is before the unix epoch (%d ms)", ms))
	}

	ts := uint64(ms)
	if ts == g.lastTimestamp {
		g.counter++
	} else {
		g.lastTimestamp = ts
		g.counter = 0
	}

	// %04d 是最小宽度，计数器到 10000 之后自然变宽，不截断
	return fmt.Sprintf("%s-%d-%04d", g.machineID, ts, g.counter)
}
