package config

import (
	"fmt"

	"go.uber.org/multierr"
)

const (
	// DefaultKeystoreIterations 默认 PBKDF2 迭代次数
	DefaultKeystoreIterations = 262144

	// DefaultSaltLength 默认盐长度
	DefaultSaltLength = 32

	// MinSaltLength 最小盐长度
	MinSaltLength = 16
)

// KeystoreConfig keystore 导出配置
//
// 仅影响导出；解码时一律使用文件内记录的参数。
type KeystoreConfig struct {
	// Iterations PBKDF2 迭代次数
	// 默认值: 262144
	Iterations int `json:"iterations"`

	// SaltLength 盐长度（字节）
	// 默认值: 32
	SaltLength int `json:"salt_length"`
}

// DefaultKeystoreConfig 返回默认 keystore 配置
func DefaultKeystoreConfig() KeystoreConfig {
	return KeystoreConfig{
		Iterations: DefaultKeystoreIterations,
		SaltLength: DefaultSaltLength,
	}
}

// Validate 验证 keystore 配置
func (c KeystoreConfig) Validate() error {
	return validateKDF(c.Iterations, c.SaltLength)
}

// WithIterations 设置迭代次数
func (c KeystoreConfig) WithIterations(n int) KeystoreConfig {
	c.Iterations = n
	return c
}

// WithSaltLength 设置盐长度
func (c KeystoreConfig) WithSaltLength(n int) KeystoreConfig {
	c.SaltLength = n
	return c
}

func validateKDF(iterations, saltLen int) error {
	var err error
	if iterations < 1 {
		err = multierr.Append(err, fmt.Errorf("iterations must be at least 1, got %d", iterations))
	}
	if saltLen < MinSaltLength {
		err = multierr.Append(err, fmt.Errorf("salt length must be at least %d, got %d", MinSaltLength, saltLen))
	}
	return err
}
