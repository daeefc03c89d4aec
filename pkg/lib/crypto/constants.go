package crypto

// ============================================================================
//                              参数常量
// ============================================================================

const (
	// IVLen AES IV 长度
	IVLen = 16

	// Iterations 默认 PBKDF2 迭代次数（有意设置的工作量）
	Iterations = 262144

	// SaltLen 默认盐长度
	SaltLen = 32

	// DKLen keystore 派生密钥长度（前 16 字节加密，后 16 字节 MAC）
	DKLen = 32

	// CBCDKLen PEM 加密使用的派生密钥长度
	CBCDKLen = 16

	// AESKeyLen AES-128 密钥长度
	AESKeyLen = 16

	// Hmac384Size HMAC-SHA384 输出长度
	Hmac384Size = 48

	// Keccak256Size Keccak-256 输出长度
	Keccak256Size = 32
)
