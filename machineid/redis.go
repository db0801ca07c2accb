package machineid

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/ceyewan/squid/clog"
	"github.com/ceyewan/squid/connector"
	"github.com/ceyewan/squid/xerrors"
)

// claimScript 从随机起点环形遍历槽位，原子抢占第一个空闲槽。
const claimScript = `
	local prefix = KEYS[1]
	local value = ARGV[1]
	local ttl = tonumber(ARGV[2])
	local max_slots = tonumber(ARGV[3])
	local offset = tonumber(ARGV[4])

	for i = 0, max_slots - 1 do
		local slot = (offset + i) % max_slots
		local key = prefix .. ":" .. slot
		if redis.call("SET", key, value, "NX", "EX", ttl) then
			return slot
		end
	end
	return -1
`

// redisProvider Redis 实现的注册式身份提供者。
type redisProvider struct {
	conn   connector.RedisConnector
	cfg    *RegistryConfig
	logger clog.Logger

	mu       sync.Mutex
	slot     int64
	key      string
	id       string
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRedis 创建 Redis 注册式身份提供者。
//
// cfg 为 nil 时使用默认配置。Resolve 首次调用时抢占槽位，
// 之后返回已抢占的身份。
func NewRedis(conn connector.RedisConnector, cfg *RegistryConfig, opts ...Option) (RegistryProvider, error) {
	if conn == nil {
		return nil, xerrors.WithCode(ErrConnectorNil, "redis_connector_required")
	}

	cfg, err := validateRegistry(cfg)
	if err != nil {
		return nil, err
	}

	opt := applyOptions(opts...)

	return &redisProvider{
		conn:   conn,
		cfg:    cfg,
		logger: opt.logger,
		slot:   -1,
		stopCh: make(chan struct{}),
	}, nil
}

// Resolve 抢占槽位并返回身份字符串。
func (p *redisProvider) Resolve(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.id != "" {
		return p.id, nil
	}

	client := p.conn.GetClient()

	// 随机起点，减少并发抢占时的冲突
	offset := rand.Int64N(int64(p.cfg.MaxSlots))
	value := fmt.Sprintf("pid:%d:%d", os.Getpid(), time.Now().UnixNano())

	result, err := client.Eval(ctx, claimScript,
		[]string{p.cfg.KeyPrefix},
		value, p.cfg.TTL, p.cfg.MaxSlots, offset,
	).Result()
	if err != nil {
		p.logger.Error("redis slot claim failed",
			clog.Error(err),
			clog.String("key_prefix", p.cfg.KeyPrefix),
		)
		return "", xerrors.Wrap(err, "redis_eval_failed")
	}

	slot, ok := result.(int64)
	if !ok || slot < 0 {
		return "", xerrors.WithCode(ErrSlotsExhausted, "no_available_slot")
	}

	p.slot = slot
	p.key = fmt.Sprintf("%s:%d", p.cfg.KeyPrefix, slot)
	p.id = fmt.Sprintf("%s-%d", p.cfg.NamePrefix, slot)

	p.logger.Info("machine identity claimed",
		clog.String("identity", p.id),
		clog.String("key", p.key),
	)

	return p.id, nil
}

// KeepAlive 周期性续期槽位租约。
func (p *redisProvider) KeepAlive(ctx context.Context) <-chan error {
	errCh := make(chan error, 1)

	go func() {
		// 先转 Duration 再除，避免小 TTL 整除后得到零间隔
		interval := time.Duration(p.cfg.TTL) * time.Second / 3
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		client := p.conn.GetClient()

		for {
			select {
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.mu.Lock()
				key := p.key
				p.mu.Unlock()
				if key == "" {
					continue
				}

				err := client.Expire(context.Background(), key, time.Duration(p.cfg.TTL)*time.Second).Err()
				if err != nil {
					p.logger.Error("keep alive failed",
						clog.Error(err),
						clog.String("key", key),
					)
					select {
					case errCh <- xerrors.Wrap(err, "keep_alive_failed"):
					default:
					}
					return
				}
			}
		}
	}()

	return errCh
}

// Stop 停止保活并释放槽位。幂等，可安全多次调用。
func (p *redisProvider) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)

		p.mu.Lock()
		defer p.mu.Unlock()

		if p.key == "" {
			return
		}

		client := p.conn.GetClient()
		client.Del(context.Background(), p.key)

		p.logger.Info("machine identity released",
			clog.String("identity", p.id),
			clog.String("key", p.key),
		)
	})
}
