package config

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别
	// 可选值: "debug", "info", "warn", "error"
	// 默认值: "info"
	Level string `json:"level"`

	// Format 输出格式
	// 可选值: "text", "json"
	// 默认值: "text"
	Format string `json:"format"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	var err error
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("invalid log level: %q", c.Level))
	}
	switch strings.ToLower(c.Format) {
	case "text", "json":
	default:
		err = multierr.Append(err, fmt.Errorf("invalid log format: %q", c.Format))
	}
	return err
}

// WithLevel 设置日志级别
func (c LogConfig) WithLevel(level string) LogConfig {
	c.Level = level
	return c
}

// WithFormat 设置输出格式
func (c LogConfig) WithFormat(format string) LogConfig {
	c.Format = format
	return c
}
