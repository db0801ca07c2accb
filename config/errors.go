package config

import "github.com/ceyewan/squid/xerrors"

var (
	// ErrLoadFailed 配置读取失败
	ErrLoadFailed = xerrors.New("config: load failed")

	// ErrValidationFailed 配置为空或校验失败
	ErrValidationFailed = xerrors.New("config: validation failed")
)
