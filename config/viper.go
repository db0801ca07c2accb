package config

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ceyewan/squid/clog"
	"github.com/ceyewan/squid/xerrors"
)

// loader 实现 Loader 接口。
type loader struct {
	v      *viper.Viper
	cfg    *Config
	logger clog.Logger

	mu        sync.RWMutex
	watches   map[string][]chan Event
	oldValues map[string]any
}

// newLoader 创建配置加载器（内部使用）。
func newLoader(cfg *Config, opt *options) *loader {
	return &loader{
		v:         viper.New(),
		cfg:       cfg,
		logger:    opt.logger,
		watches:   make(map[string][]chan Event),
		oldValues: make(map[string]any),
	}
}

// Load 从所有来源加载配置并启动文件监听。
//
// 优先级：环境变量 > .env > 配置文件。
func (l *loader) Load(ctx context.Context) error {
	l.v.SetConfigName(l.cfg.Name)
	l.v.SetConfigType(l.cfg.FileType)
	for _, path := range l.cfg.Paths {
		l.v.AddConfigPath(path)
	}

	// 环境变量（最高优先级），先设置以覆盖后续来源
	l.v.SetEnvPrefix(l.cfg.EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	// .env 文件（次高优先级）
	l.loadDotEnv()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !xerrors.As(err, &notFound) {
			return xerrors.Wrapf(ErrLoadFailed, "read config %s: %v", l.cfg.Name, err)
		}
		l.logger.Warn("no configuration file found, using env only",
			clog.String("name", l.cfg.Name),
		)
	}

	// 保存当前值作为变更检测基线
	l.captureCurrentValues()

	l.v.OnConfigChange(func(e fsnotify.Event) {
		l.logger.Info("configuration file changed", clog.String("file", e.Name))
		l.loadDotEnv()
		l.notifyWatches()
	})
	l.v.WatchConfig()

	return nil
}

// loadDotEnv 尝试从搜索路径加载 .env 文件，不存在时静默跳过。
func (l *loader) loadDotEnv() {
	for _, path := range append([]string{""}, l.cfg.Paths...) {
		envPath := ".env"
		if path != "" {
			envPath = filepath.Join(path, ".env")
		}
		if err := godotenv.Load(envPath); err == nil {
			l.logger.Debug("loaded .env file", clog.String("path", envPath))
		}
	}
}

// Get 根据 key 获取配置值。
func (l *loader) Get(key string) any {
	return l.v.Get(key)
}

// Unmarshal 将整个配置反序列化到结构体。
func (l *loader) Unmarshal(v any) error {
	return l.v.Unmarshal(v)
}

// UnmarshalKey 将指定 key 的配置反序列化到结构体。
func (l *loader) UnmarshalKey(key string, v any) error {
	return l.v.UnmarshalKey(key, v)
}

// Watch 订阅指定 key 的变更事件。
func (l *loader) Watch(ctx context.Context, key string) (<-chan Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch := make(chan Event, 10)
	l.watches[key] = append(l.watches[key], ch)
	l.oldValues[key] = l.v.Get(key)

	go func() {
		<-ctx.Done()
		l.removeWatch(key, ch)
	}()

	return ch, nil
}

// removeWatch 注销监听通道并关闭它。
func (l *loader) removeWatch(key string, ch chan Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	chans := l.watches[key]
	for i, c := range chans {
		if c == ch {
			l.watches[key] = append(chans[:i], chans[i+1:]...)
			close(ch)
			break
		}
	}
	if len(l.watches[key]) == 0 {
		delete(l.watches, key)
		delete(l.oldValues, key)
	}
}

// captureCurrentValues 保存当前配置值用于变更检测。
func (l *loader) captureCurrentValues() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key := range l.watches {
		l.oldValues[key] = l.v.Get(key)
	}
}

// notifyWatches 将值发生变化的 key 通知给所有监听者。
func (l *loader) notifyWatches() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, channels := range l.watches {
		newValue := l.v.Get(key)
		oldValue := l.oldValues[key]
		if reflect.DeepEqual(oldValue, newValue) {
			continue
		}

		event := Event{
			Key:       key,
			Value:     newValue,
			OldValue:  oldValue,
			Source:    "file",
			Timestamp: time.Now(),
		}
		l.oldValues[key] = newValue

		for _, ch := range channels {
			select {
			case ch <- event:
			default:
				l.logger.Warn("watch channel full, dropping event", clog.String("key", key))
			}
		}
	}
}
