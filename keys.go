package hederakeys

import (
	"math/big"

	"github.com/xyclone-designs/go-hedera-keys/pkg/keys"
	"github.com/xyclone-designs/go-hedera-keys/pkg/lib/crypto"
)

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

type (
	// Key 网络密钥
	Key = keys.Key

	// PublicKey 可验证签名的公钥
	PublicKey = keys.PublicKey

	// Ed25519PublicKey Ed25519 公钥
	Ed25519PublicKey = keys.Ed25519PublicKey

	// ECDSAPublicKey secp256k1 公钥
	ECDSAPublicKey = keys.ECDSAPublicKey

	// EvmAddress 20 字节 EVM 地址
	EvmAddress = keys.EvmAddress

	// KeyList 有序密钥列表（可带门限）
	KeyList = keys.KeyList

	// ContractIDKey 合约 ID 密钥
	ContractIDKey = keys.ContractIDKey

	// DelegateContractIDKey 可委托合约 ID 密钥
	DelegateContractIDKey = keys.DelegateContractIDKey

	// Transaction 已签名交易视图
	Transaction = keys.Transaction
)

// ════════════════════════════════════════════════════════════════════════════
//                              构造
// ════════════════════════════════════════════════════════════════════════════

var (
	// PublicKeyFromBytes 按长度与 DER 识别公钥
	PublicKeyFromBytes = keys.PublicKeyFromBytes

	// PublicKeyFromBytesDER 从 DER SPKI 解析公钥
	PublicKeyFromBytesDER = keys.PublicKeyFromBytesDER

	// PublicKeyFromString 从十六进制解析公钥
	PublicKeyFromString = keys.PublicKeyFromString

	// KeyFromBytes 从 wire 字节解析 Key
	KeyFromBytes = keys.KeyFromBytes

	// EvmAddressFromString 解析 EVM 地址
	EvmAddressFromString = keys.EvmAddressFromString

	// NewKeyList 创建密钥列表
	NewKeyList = keys.NewKeyList

	// NewThresholdKey 创建门限密钥
	NewThresholdKey = keys.NewThresholdKey
)

// RecoverPublicKey 从签名恢复 33 字节压缩 secp256k1 公钥
//
// 没有有效恢复结果时返回 ok == false。
func RecoverPublicKey(recoveryID int, r, s *big.Int, hash []byte) (ECDSAPublicKey, bool, error) {
	compressed, ok, err := crypto.RecoverPublicKey(recoveryID, r, s, hash)
	if err != nil || !ok {
		return ECDSAPublicKey{}, false, err
	}
	pub, err := keys.ECDSAPublicKeyFromBytes(compressed)
	if err != nil {
		return ECDSAPublicKey{}, false, err
	}
	return pub, true, nil
}
