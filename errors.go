package hederakeys

import "github.com/xyclone-designs/go-hedera-keys/pkg/types"

// 结构化错误
type (
	// BadKeyError 密钥、DER、PEM 或 keystore 内容无效
	BadKeyError = types.BadKeyError

	// CryptoError 底层密码学操作失败
	CryptoError = types.CryptoError

	// UnsupportedOperationError 当前密钥类型不支持的操作
	UnsupportedOperationError = types.UnsupportedOperationError
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 密钥
	// ────────────────────────────────────────────────────────────────────────

	ErrInvalidKeyLength   = types.ErrInvalidKeyLength
	ErrInvalidPoint       = types.ErrInvalidPoint
	ErrInvalidDER         = types.ErrInvalidDER
	ErrUnsupportedKeyCase = types.ErrUnsupportedKeyCase
	ErrInvalidEvmAddress  = types.ErrInvalidEvmAddress

	// ────────────────────────────────────────────────────────────────────────
	// Keystore / PEM
	// ────────────────────────────────────────────────────────────────────────

	ErrUnsupportedVersion = types.ErrUnsupportedVersion
	ErrUnsupportedCipher  = types.ErrUnsupportedCipher
	ErrUnsupportedKDF     = types.ErrUnsupportedKDF
	ErrPassphraseMismatch = types.ErrPassphraseMismatch
	ErrPassphraseRequired = types.ErrPassphraseRequired
	ErrUnsupportedPEMType = types.ErrUnsupportedPEMType

	// ────────────────────────────────────────────────────────────────────────
	// 公钥恢复
	// ────────────────────────────────────────────────────────────────────────

	ErrInvalidRecoveryID = types.ErrInvalidRecoveryID
)
