package clog

import (
	"fmt"
	"strings"
)

// Config 日志配置。
//
//	Level:     日志级别 (debug|info|warn|error|fatal)
//	Format:    输出格式 (json|console)
//	Output:    输出目标 (stdout|stderr|文件路径)
//	AddSource: 是否记录调用位置
type Config struct {
	Level     string `mapstructure:"level" json:"level" yaml:"level"`
	Format    string `mapstructure:"format" json:"format" yaml:"format"`
	Output    string `mapstructure:"output" json:"output" yaml:"output"`
	AddSource bool   `mapstructure:"add_source" json:"add_source" yaml:"add_source"`
}

// validate 补全默认值并校验配置（内部使用）。
func (c *Config) validate() error {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}

	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid format: %s, must be json or console", c.Format)
	}
	// Output 可以是 stdout、stderr 或任意文件路径，不做严格校验。
	return nil
}
