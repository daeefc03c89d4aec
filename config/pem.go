package config

// PEMConfig 加密 PEM 写出配置
type PEMConfig struct {
	// Iterations PBKDF2 迭代次数
	// 默认值: 262144
	Iterations int `json:"iterations"`

	// SaltLength 盐长度（字节）
	// 默认值: 32
	SaltLength int `json:"salt_length"`
}

// DefaultPEMConfig 返回默认 PEM 配置
func DefaultPEMConfig() PEMConfig {
	return PEMConfig{
		Iterations: DefaultKeystoreIterations,
		SaltLength: DefaultSaltLength,
	}
}

// Validate 验证 PEM 配置
func (c PEMConfig) Validate() error {
	return validateKDF(c.Iterations, c.SaltLength)
}

// WithIterations 设置迭代次数
func (c PEMConfig) WithIterations(n int) PEMConfig {
	c.Iterations = n
	return c
}

// WithSaltLength 设置盐长度
func (c PEMConfig) WithSaltLength(n int) PEMConfig {
	c.SaltLength = n
	return c
}
