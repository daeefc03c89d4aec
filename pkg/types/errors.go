// Package types 定义密钥子系统的基础类型
//
// 本文件定义所有公共错误类型。
package types

import (
	"errors"
	"fmt"
)

// ============================================================================
//                              密钥相关错误
// ============================================================================

var (
	// ErrInvalidKeyLength 密钥长度无效
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidPoint 不是曲线上的有效点
	ErrInvalidPoint = errors.New("invalid curve point")

	// ErrInvalidDER DER 编码无效
	ErrInvalidDER = errors.New("invalid DER encoding")

	// ErrInvalidHex 十六进制编码无效
	ErrInvalidHex = errors.New("invalid hex encoding")

	// ErrUnsupportedKeyCase 不支持的 Key oneof 分支
	ErrUnsupportedKeyCase = errors.New("unsupported key case")

	// ErrUnsetKey Key 未设置任何分支
	ErrUnsetKey = errors.New("key is not set")

	// ErrInvalidEvmAddress EVM 地址无效
	ErrInvalidEvmAddress = errors.New("invalid EVM address")

	// ErrInvalidWire wire 编码无效
	ErrInvalidWire = errors.New("invalid wire encoding")
)

// ============================================================================
//                              Keystore 相关错误
// ============================================================================

var (
	// ErrUnsupportedVersion 不支持的 keystore 版本
	ErrUnsupportedVersion = errors.New("unsupported keystore version")

	// ErrUnsupportedCipher 不支持的加密算法
	ErrUnsupportedCipher = errors.New("unsupported keystore cipher")

	// ErrUnsupportedKDF 不支持的密钥派生函数
	ErrUnsupportedKDF = errors.New("unsupported KDF")

	// ErrUnsupportedPRF 不支持的 KDF 哈希函数
	ErrUnsupportedPRF = errors.New("unsupported KDF hash function")

	// ErrPassphraseMismatch 口令错误
	ErrPassphraseMismatch = errors.New("HMAC mismatch; passphrase is incorrect")

	// ErrMissingField 缺少字段
	ErrMissingField = errors.New("missing field")

	// ErrFieldType 字段类型错误
	ErrFieldType = errors.New("unexpected field type")
)

// ============================================================================
//                              PEM 相关错误
// ============================================================================

var (
	// ErrNoPEMBlock 没有 PEM 块
	ErrNoPEMBlock = errors.New("no PEM block found")

	// ErrUnsupportedPEMType 不支持的 PEM 对象类型
	ErrUnsupportedPEMType = errors.New("unsupported PEM object type")

	// ErrPassphraseRequired 加密 PEM 需要口令
	ErrPassphraseRequired = errors.New("passphrase required for encrypted PEM")

	// ErrDecryptFailed 解密失败
	ErrDecryptFailed = errors.New("failed to decrypt private key")
)

// ============================================================================
//                              密码学原语错误
// ============================================================================

var (
	// ErrInvalidCipherKey 对称密钥长度无效
	ErrInvalidCipherKey = errors.New("invalid cipher key length")

	// ErrInvalidIV IV 长度无效
	ErrInvalidIV = errors.New("invalid IV length")

	// ErrInvalidBlockSize 数据不是块大小的整数倍
	ErrInvalidBlockSize = errors.New("input not a multiple of the block size")

	// ErrInvalidRecoveryID 恢复 ID 无效
	ErrInvalidRecoveryID = errors.New("recovery id must be 0 or 1")

	// ErrInvalidParameter 参数无效
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ============================================================================
//                              结构化错误
// ============================================================================

// BadKeyError 密钥、DER、PEM 或 keystore 内容无效
//
// 以及不支持的分支、版本、口令/完整性校验失败。
type BadKeyError struct {
	Op      string // 操作名称
	Err     error  // 底层错误
	Message string // 错误消息
}

// Error 实现 error 接口
func (e *BadKeyError) Error() string {
	return formatError("bad key", e.Op, e.Message, e.Err)
}

// Unwrap 实现错误解包
func (e *BadKeyError) Unwrap() error {
	return e.Err
}

// NewBadKeyError 创建 BadKeyError
func NewBadKeyError(op string, err error, message string) *BadKeyError {
	return &BadKeyError{Op: op, Err: err, Message: message}
}

// CryptoError 密码学原语错误
//
// 算法不可用、密钥或填充长度错误。
type CryptoError struct {
	Op      string // 操作名称
	Err     error  // 底层错误
	Message string // 错误消息
}

// Error 实现 error 接口
func (e *CryptoError) Error() string {
	return formatError("crypto", e.Op, e.Message, e.Err)
}

// Unwrap 实现错误解包
func (e *CryptoError) Unwrap() error {
	return e.Err
}

// NewCryptoError 创建 CryptoError
func NewCryptoError(op string, err error, message string) *CryptoError {
	return &CryptoError{Op: op, Err: err, Message: message}
}

// UnsupportedOperationError 对该密钥变体无意义的操作
type UnsupportedOperationError struct {
	Op      string // 操作名称
	Message string // 错误消息
}

// Error 实现 error 接口
func (e *UnsupportedOperationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unsupported operation %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("unsupported operation %s", e.Op)
}

// NewUnsupportedOperationError 创建 UnsupportedOperationError
func NewUnsupportedOperationError(op, message string) *UnsupportedOperationError {
	return &UnsupportedOperationError{Op: op, Message: message}
}

// IsBadKey 判断错误链中是否包含 BadKeyError
func IsBadKey(err error) bool {
	var target *BadKeyError
	return errors.As(err, &target)
}

// IsCrypto 判断错误链中是否包含 CryptoError
func IsCrypto(err error) bool {
	var target *CryptoError
	return errors.As(err, &target)
}

// IsUnsupportedOperation 判断错误链中是否包含 UnsupportedOperationError
func IsUnsupportedOperation(err error) bool {
	var target *UnsupportedOperationError
	return errors.As(err, &target)
}

func formatError(kind, op, message string, err error) string {
	switch {
	case message != "" && err != nil:
		return fmt.Sprintf("%s %s: %s: %v", kind, op, message, err)
	case message != "":
		return fmt.Sprintf("%s %s: %s", kind, op, message)
	case err != nil:
		return fmt.Sprintf("%s %s: %v", kind, op, err)
	default:
		return fmt.Sprintf("%s %s", kind, op)
	}
}
