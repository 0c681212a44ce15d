// Package config 读取和校验 pylex.toml 配置文件
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
)

// 常量定义
const (
	ConfigFileName = "pylex.toml" // 配置文件名
)

// Config pylex 配置
type Config struct {
	Lexer  LexerConfig  `toml:"lexer"`
	Output OutputConfig `toml:"output"`
	Check  CheckConfig  `toml:"check"`
	Log    LogConfig    `toml:"log"`
}

// LexerConfig 词法分析参数
type LexerConfig struct {
	// TabSize 制表符宽度，只影响缩进计算
	TabSize int `toml:"tab_size"`
}

// OutputConfig 输出格式
type OutputConfig struct {
	// Format token 列表的输出格式：text 或 json
	Format string `toml:"format"`

	// Color 颜色模式：auto、always 或 never
	Color string `toml:"color"`

	// Language 诊断信息的语言：en 或 zh
	Language string `toml:"language"`
}

// CheckConfig 批量检查参数
type CheckConfig struct {
	// Workers 并发数，0 表示使用 CPU 核数
	Workers int `toml:"workers"`
}

// LogConfig 日志参数（只用于语言服务器和 -v 模式）
type LogConfig struct {
	// Level 日志级别：debug、info、warn、error
	Level string `toml:"level"`

	// File 日志文件，为空时输出到标准错误
	File string `toml:"file"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Lexer:  LexerConfig{TabSize: 8},
		Output: OutputConfig{Format: "text", Color: "auto", Language: "en"},
		Check:  CheckConfig{Workers: 0},
		Log:    LogConfig{Level: "info"},
	}
}

// Load 从文件加载配置
//
// 文件中没有出现的字段保留默认值。加载后会做一次校验。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// LoadOrDefault 查找并加载配置文件
//
// path 非空时直接加载；否则从 start 向上查找 pylex.toml，找不到时返回默认配置。
func LoadOrDefault(path, start string) (*Config, error) {
	if path == "" {
		path = FindConfigFile(start)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate 检查配置是否合法，返回所有问题的组合错误
func (c *Config) Validate() error {
	var err error

	if c.Lexer.TabSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("lexer.tab_size must be positive, got %d", c.Lexer.TabSize))
	}

	switch c.Output.Format {
	case "text", "json":
	default:
		err = multierr.Append(err, fmt.Errorf("output.format must be \"text\" or \"json\", got %q", c.Output.Format))
	}

	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		err = multierr.Append(err, fmt.Errorf("output.color must be \"auto\", \"always\" or \"never\", got %q", c.Output.Color))
	}

	switch strings.ToLower(c.Output.Language) {
	case "en", "zh":
	default:
		err = multierr.Append(err, fmt.Errorf("output.language must be \"en\" or \"zh\", got %q", c.Output.Language))
	}

	if c.Check.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("check.workers must not be negative, got %d", c.Check.Workers))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}

	return err
}

// Save 保存配置到文件
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	buf.WriteString("# pylex 配置文件\n\n")

	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// FindConfigFile 从指定路径向上查找配置文件
// 返回配置文件的完整路径，如果找不到则返回空字符串
func FindConfigFile(startPath string) string {
	// 如果是文件，从其所在目录开始
	info, err := os.Stat(startPath)
	if err != nil {
		return ""
	}

	var dir string
	if info.IsDir() {
		dir = startPath
	} else {
		dir = filepath.Dir(startPath)
	}

	// 转换为绝对路径
	dir, err = filepath.Abs(dir)
	if err != nil {
		return ""
	}

	// 向上查找
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		// 获取父目录
		parent := filepath.Dir(dir)
		if parent == dir {
			// 已到达根目录
			return ""
		}
		dir = parent
	}
}
