// Package config 读取项目根目录下可选的 .strunemix.yaml
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cast"
)

// FileName 默认配置文件名
const FileName = ".strunemix.yaml"

// Config 命令行参数的默认值，命令行显式传入的参数优先
type Config struct {
	Output   string   `yaml:"output"`    // 默认输出文件名
	NoOutput bool     `yaml:"no_output"` // 忽略 output，使用注解或包级配置的输出路径
	Async    bool     `yaml:"async"`     // 并发执行生成器
	Workers  int      `yaml:"workers"`   // 扫描并发数，0 表示 CPU 核数
	Debounce string   `yaml:"debounce"`  // dev 模式防抖间隔，如 500ms
	Patterns []string `yaml:"patterns"`  // 未指定路径时扫描的模式
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Debounce: "300ms",
		Patterns: []string{"./..."},
	}
}

// Load 读取配置文件，文件不存在时返回默认配置
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("配置文件 %s: %w", path, err)
	}
	return cfg, nil
}

// Find 从 dir 开始向上查找配置文件，找不到时返回空字符串
func Find(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		p := filepath.Join(dir, FileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// DebounceDuration 解析防抖间隔
func (c *Config) DebounceDuration() (time.Duration, error) {
	d, err := cast.ToDurationE(c.Debounce)
	if err != nil {
		return 0, fmt.Errorf("debounce %q 无效: %w", c.Debounce, err)
	}
	return d, nil
}

func (c *Config) validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers 不能为负数: %d", c.Workers)
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	if len(c.Patterns) == 0 {
		c.Patterns = Default().Patterns
	}
	return nil
}
