// Package config 加载 Actor 运行时配置
//
// 加载顺序：内置默认值 → YAML 配置文件（可选）→ 调用方覆盖项（通常来自命令行）。
package config

import (
	"io"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/lwmacct/251215-go-pkg-cactor/pkg/actor"
)

// Config 运行时与示例程序配置
type Config struct {
	// Name Actor 系统名称
	Name string `koanf:"name"`
	// Log 日志配置
	Log LogConfig `koanf:"log"`
	// Messages 示例程序每轮发送的消息数
	Messages int `koanf:"messages"`
	// Senders fanout 模式下的并发发送者数量
	Senders int `koanf:"senders"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level debug / info / warn / error
	Level string `koanf:"level"`
	// Format text / json
	Format string `koanf:"format"`
	// Discarded 是否记录被丢弃的消息
	Discarded bool `koanf:"discarded"`
}

// Default 默认配置
func Default() Config {
	return Config{
		Name: "cactor",
		Log: LogConfig{
			Level:     "info",
			Format:    "text",
			Discarded: false,
		},
		Messages: 1500,
		Senders:  10,
	}
}

// Load 加载配置
// path 为空时跳过配置文件；overrides 的键使用点号路径，例如 "log.level"
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, errors.Wrap(err, "load defaults")
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "load config file %s", path)
		}
	}

	for key, val := range overrides {
		if err := k.Set(key, val); err != nil {
			return nil, errors.Wrapf(err, "override %s", key)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Messages <= 0 {
		return errors.Errorf("messages must be positive, got %d", c.Messages)
	}
	if c.Senders <= 0 {
		return errors.Errorf("senders must be positive, got %d", c.Senders)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// NewLogger 按配置创建日志器
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SystemConfig 转换为 actor.SystemConfig
func (c *Config) SystemConfig(w io.Writer) *actor.SystemConfig {
	sc := actor.DefaultSystemConfig()
	sc.Logger = c.NewLogger(w)
	sc.LogDiscarded = c.Log.Discarded
	return sc
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, errors.Wrapf(err, "invalid log level %q", s)
	}
	return level, nil
}
