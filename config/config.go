package config

import "strings"

// Config 加载器自身的配置。
type Config struct {
	Name      string   // 配置文件名称（不含扩展名），默认 "config"
	Paths     []string // 配置文件搜索路径，默认 [".", "./config"]
	FileType  string   // 配置文件类型 (yaml|json|toml)，默认 "yaml"
	EnvPrefix string   // 环境变量前缀，默认 "SQUID"
}

// setDefaults 补全默认值。
func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "config"
	}
	if len(c.Paths) == 0 {
		c.Paths = []string{".", "./config"}
	}
	if c.FileType == "" {
		c.FileType = "yaml"
	}
	if c.EnvPrefix == "" {
		c.EnvPrefix = "SQUID"
	}
	c.EnvPrefix = strings.ToUpper(c.EnvPrefix)
}

// New 创建配置加载器。cfg 为 nil 时使用默认配置。
//
// 创建后需调用 Load 才会真正读取配置。
func New(cfg *Config, opts ...Option) (Loader, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.setDefaults()

	opt := applyOptions(opts...)

	return newLoader(cfg, opt), nil
}
