package keys

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xyclone-designs/go-hedera-keys/pkg/lib/log"
	pbkey "github.com/xyclone-designs/go-hedera-keys/pkg/lib/proto/key"
	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

var logger = log.Logger("keys")

// ============================================================================
//                              接口定义
// ============================================================================

// Key 网络密钥（wire oneof 的 Go 表示）
type Key interface {
	// ToWire 转换为 wire 消息
	ToWire() *pbkey.Key

	// ToBytes 返回 wire 消息的 protobuf 编码
	ToBytes() []byte

	// Equal 结构化比较（顺序敏感）
	Equal(other Key) bool

	// String 返回可读形式
	String() string
}

// PublicKey 可验证签名的公钥
type PublicKey interface {
	Key

	// ToBytesRaw 返回原始字节（Ed25519 32 字节，ECDSA 33 字节压缩）
	ToBytesRaw() []byte

	// ToBytesDER 返回 DER SubjectPublicKeyInfo
	ToBytesDER() []byte

	// ToStringRaw 返回原始字节的十六进制
	ToStringRaw() string

	// ToStringDER 返回 DER 的十六进制
	ToStringDER() string

	// Verify 验证签名，失败时返回 false
	Verify(message, signature []byte) bool

	// VerifyTransaction 验证交易中该公钥的所有签名
	VerifyTransaction(tx Transaction) bool

	// ToEvmAddress 派生 EVM 地址
	ToEvmAddress() (EvmAddress, error)

	// ToSignaturePair 构造签名对
	ToSignaturePair(signature []byte) *pbkey.SignaturePair

	// SignatureFromPair 从签名对中取出本算法的签名
	SignatureFromPair(pair *pbkey.SignaturePair) []byte

	// IsEd25519 是否 Ed25519 公钥
	IsEd25519() bool

	// IsECDSA 是否 ECDSA secp256k1 公钥
	IsECDSA() bool
}

// Transaction 已签名交易的只读视图
//
// 每个元素对应一个节点的交易体与签名映射。
type Transaction interface {
	SignedTransactions() []*pbkey.SignedTransaction
}

// ============================================================================
//                              wire 解码
// ============================================================================

// FromWire 从 wire 消息构造 Key
//
// 返回：
//   - Key: 未设置任何分支时为 nil（合法结果，不是错误）
//   - error: RSA_3072、ECDSA_384 等不支持的分支返回 BadKeyError
func FromWire(w *pbkey.Key) (Key, error) {
	switch c := w.Case(); c {
	case pbkey.KeyCaseNotSet:
		return nil, nil

	case pbkey.KeyCaseEd25519:
		k, err := Ed25519PublicKeyFromBytes(w.Ed25519)
		if err != nil {
			return nil, err
		}
		return k, nil

	case pbkey.KeyCaseECDSASecp256k1:
		// 20 字节表示别名（EVM 地址），不是公钥
		if len(w.ECDSASecp256k1) == EvmAddressSize {
			addr, err := EvmAddressFromBytes(w.ECDSASecp256k1)
			if err != nil {
				return nil, err
			}
			return addr, nil
		}
		k, err := ECDSAPublicKeyFromBytes(w.ECDSASecp256k1)
		if err != nil {
			return nil, err
		}
		return k, nil

	case pbkey.KeyCaseKeyList, pbkey.KeyCaseThresholdKey:
		var (
			list *KeyList
			err  error
		)
		if c == pbkey.KeyCaseThresholdKey {
			threshold := w.ThresholdKey.Threshold
			list, err = keyListFromWire(w.ThresholdKey.Keys, &threshold)
		} else {
			list, err = keyListFromWire(w.KeyList, nil)
		}
		if err != nil {
			return nil, err
		}
		return list, nil

	case pbkey.KeyCaseContractID:
		return ContractIDKey{id: contractIDFromWire(w.ContractID)}, nil

	case pbkey.KeyCaseDelegatableContractID:
		return DelegateContractIDKey{id: contractIDFromWire(w.DelegatableContractID)}, nil

	default:
		logger.Debug("拒绝不支持的 key 分支", "case", c.String())
		return nil, types.NewBadKeyError("FromWire", types.ErrUnsupportedKeyCase,
			fmt.Sprintf("unsupported key case: %s", c))
	}
}

// KeyFromBytes 从 protobuf 字节构造 Key
func KeyFromBytes(data []byte) (Key, error) {
	var w pbkey.Key
	if err := w.Unmarshal(data); err != nil {
		return nil, types.NewBadKeyError("KeyFromBytes", errors.Join(types.ErrInvalidWire, err), "")
	}
	return FromWire(&w)
}

// KeysEqual 比较两个 Key
//
// 两者都为 nil 时相等；否则比较 wire 编码，因此顺序与门限都参与比较。
func KeysEqual(a, b Key) bool {
	if isNilKey(a) || isNilKey(b) {
		return isNilKey(a) && isNilKey(b)
	}
	return bytes.Equal(a.ToBytes(), b.ToBytes())
}

func isNilKey(k Key) bool {
	if k == nil {
		return true
	}
	if l, ok := k.(*KeyList); ok && l == nil {
		return true
	}
	return false
}

// ============================================================================
//                              交易验证
// ============================================================================

// verifyTransaction 检查交易里每个已签名载荷都带有 pub 的有效签名
func verifyTransaction(pub PublicKey, tx Transaction) bool {
	if tx == nil {
		return false
	}
	signed := tx.SignedTransactions()
	if len(signed) == 0 {
		return false
	}

	raw := pub.ToBytesRaw()
	for _, st := range signed {
		if st == nil || st.SigMap == nil {
			return false
		}
		found := false
		for _, pair := range st.SigMap.SigPair {
			if pair == nil || !bytes.Equal(pair.PubKeyPrefix, raw) {
				continue
			}
			found = true
			if !pub.Verify(st.BodyBytes, pub.SignatureFromPair(pair)) {
				return false
			}
		}
		if !found {
			return false
		}
	}
	return true
}
