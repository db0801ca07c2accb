package machineid

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/ceyewan/squid/clog"
	"github.com/ceyewan/squid/connector"
	"github.com/ceyewan/squid/xerrors"
)

// etcdProvider Etcd 实现的注册式身份提供者。
type etcdProvider struct {
	client *clientv3.Client
	cfg    *RegistryConfig
	logger clog.Logger

	mu       sync.Mutex
	leaseID  clientv3.LeaseID
	slot     int64
	key      string
	id       string
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewEtcd 创建 Etcd 注册式身份提供者。
//
// 槽位通过租约加 CAS 事务抢占，进程退出后租约到期自动释放。
func NewEtcd(conn connector.EtcdConnector, cfg *RegistryConfig, opts ...Option) (RegistryProvider, error) {
	if conn == nil {
		return nil, xerrors.WithCode(ErrConnectorNil, "etcd_connector_required")
	}

	cfg, err := validateRegistry(cfg)
	if err != nil {
		return nil, err
	}

	opt := applyOptions(opts...)

	return &etcdProvider{
		client: conn.GetClient(),
		cfg:    cfg,
		logger: opt.logger,
		slot:   -1,
		stopCh: make(chan struct{}),
	}, nil
}

// Resolve 抢占槽位并返回身份字符串。
func (p *etcdProvider) Resolve(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.id != "" {
		return p.id, nil
	}

	lease, err := p.client.Grant(ctx, int64(p.cfg.TTL))
	if err != nil {
		p.logger.Error("etcd grant lease failed", clog.Error(err))
		return "", xerrors.Wrap(err, "etcd_grant_failed")
	}

	value := fmt.Sprintf("pid:%d:%d", os.Getpid(), time.Now().UnixNano())

	// 随机起点，减少并发抢占时的冲突
	offset := rand.IntN(p.cfg.MaxSlots)

	for i := 0; i < p.cfg.MaxSlots; i++ {
		slot := (offset + i) % p.cfg.MaxSlots
		key := fmt.Sprintf("%s:%d", p.cfg.KeyPrefix, slot)

		// CAS：key 不存在（ModRevision == 0）时才写入
		resp, err := p.client.Txn(ctx).
			If(clientv3.Compare(clientv3.ModRevision(key), "=", 0)).
			Then(clientv3.OpPut(key, value, clientv3.WithLease(lease.ID))).
			Commit()
		if err != nil {
			p.revokeLease(lease.ID)
			p.logger.Error("etcd txn failed", clog.Error(err), clog.String("key", key))
			return "", xerrors.Wrap(err, "etcd_txn_failed")
		}

		if resp.Succeeded {
			p.leaseID = lease.ID
			p.slot = int64(slot)
			p.key = key
			p.id = fmt.Sprintf("%s-%d", p.cfg.NamePrefix, slot)

			p.logger.Info("machine identity claimed",
				clog.String("identity", p.id),
				clog.String("key", key),
				clog.Int64("lease_id", int64(lease.ID)),
			)
			return p.id, nil
		}
	}

	p.revokeLease(lease.ID)
	return "", xerrors.WithCode(ErrSlotsExhausted, "no_available_slot")
}

// KeepAlive 维持租约。
func (p *etcdProvider) KeepAlive(ctx context.Context) <-chan error {
	errCh := make(chan error, 1)

	go func() {
		p.mu.Lock()
		leaseID := p.leaseID
		p.mu.Unlock()

		kaCh, err := p.client.KeepAlive(ctx, leaseID)
		if err != nil {
			p.logger.Error("etcd keep alive failed",
				clog.Error(err),
				clog.Int64("lease_id", int64(leaseID)),
			)
			select {
			case errCh <- xerrors.Wrap(err, "keep_alive_failed"):
			default:
			}
			return
		}

		for {
			select {
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			case ka, ok := <-kaCh:
				if !ok || ka == nil {
					// 通道关闭说明租约已失效
					p.logger.Error("lease expired", clog.Int64("lease_id", int64(leaseID)))
					select {
					case errCh <- xerrors.WithCode(ErrLeaseExpired, "lease_expired"):
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
func (p *etcdProvider) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)

		p.mu.Lock()
		defer p.mu.Unlock()

		if p.leaseID == 0 {
			return
		}

		// 撤销租约，关联的 key 自动删除
		p.revokeLease(p.leaseID)

		p.logger.Info("machine identity released",
			clog.String("identity", p.id),
			clog.String("key", p.key),
		)
	})
}

func (p *etcdProvider) revokeLease(id clientv3.LeaseID) {
	if _, err := p.client.Revoke(context.Background(), id); err != nil {
		p.logger.Warn("etcd revoke lease failed", clog.Error(err))
	}
}
