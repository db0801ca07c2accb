package idgen

import "github.com/ceyewan/squid/xerrors"

var (
	// ErrInvalidConfig 配置非法 (未知模式等)
	ErrInvalidConfig = xerrors.New("idgen: invalid config")
)
