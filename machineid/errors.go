package machineid

import "github.com/ceyewan/squid/xerrors"

var (
	// ErrUnavailable 本机身份无法解析
	ErrUnavailable = xerrors.New("machineid: identity unavailable")

	// ErrInvalidInput 无效的输入
	ErrInvalidInput = xerrors.New("machineid: invalid input")

	// ErrConnectorNil 连接器为空
	ErrConnectorNil = xerrors.New("machineid: connector is nil")

	// ErrSlotsExhausted 注册槽位已耗尽
	ErrSlotsExhausted = xerrors.New("machineid: no available slot")

	// ErrLeaseExpired 租约已过期
	ErrLeaseExpired = xerrors.New("machineid: lease expired")
)
