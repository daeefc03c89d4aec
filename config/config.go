// Package config 提供统一的配置管理
//
// 主 Config 结构体嵌入各子配置，每个子配置在独立文件中定义，
// 支持从 JSON 加载与保存。
//
// 使用示例：
//
//	cfg := config.NewConfig()
//	cfg.Keystore = cfg.Keystore.WithIterations(100000)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Config 密钥子系统的完整配置
//
// 配置按照功能模块组织：
//   - Keystore: JSON keystore 导出参数
//   - PEM: 加密 PEM 写出参数
//   - Log: 日志级别与格式
type Config struct {
	// Keystore keystore 配置
	Keystore KeystoreConfig `json:"keystore"`

	// PEM PEM 配置
	PEM PEMConfig `json:"pem"`

	// Log 日志配置
	Log LogConfig `json:"log"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Keystore: DefaultKeystoreConfig(),
		PEM:      DefaultPEMConfig(),
		Log:      DefaultLogConfig(),
	}
}

// Validate 验证配置的有效性
//
// 汇总所有子配置的错误后一并返回。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	return multierr.Combine(
		prefix("keystore", c.Keystore.Validate()),
		prefix("pem", c.PEM.Validate()),
		prefix("log", c.Log.Validate()),
	)
}

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值。
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ToJSON 序列化配置
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// prefix 为子配置错误加上段名
func prefix(section string, err error) error {
	errs := multierr.Errors(err)
	if len(errs) == 0 {
		return nil
	}
	out := make([]error, 0, len(errs))
	for _, e := range errs {
		out = append(out, fmt.Errorf("%s: %w", section, e))
	}
	return multierr.Combine(out...)
}
