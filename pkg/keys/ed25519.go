package keys

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"

	"filippo.io/edwards25519"

	pbkey "github.com/xyclone-designs/go-hedera-keys/pkg/lib/proto/key"
	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

// Ed25519PublicKeySize Ed25519 公钥长度
const Ed25519PublicKeySize = ed25519.PublicKeySize

// Ed25519PublicKey Ed25519 公钥
type Ed25519PublicKey struct {
	raw [Ed25519PublicKeySize]byte
}

var _ PublicKey = Ed25519PublicKey{}

// Ed25519PublicKeyFromBytes 从 32 字节原始公钥构造
//
// 全零值作为"不可用密钥"哨兵直接接受，其余必须是有效的 Edwards25519 点编码。
func Ed25519PublicKeyFromBytes(b []byte) (Ed25519PublicKey, error) {
	if len(b) != Ed25519PublicKeySize {
		return Ed25519PublicKey{}, types.NewBadKeyError("Ed25519PublicKeyFromBytes", types.ErrInvalidKeyLength,
			fmt.Sprintf("expected %d bytes, got %d", Ed25519PublicKeySize, len(b)))
	}
	var k Ed25519PublicKey
	copy(k.raw[:], b)
	if k.isSentinel() {
		return k, nil
	}
	if _, err := new(edwards25519.Point).SetBytes(b); err != nil {
		return Ed25519PublicKey{}, types.NewBadKeyError("Ed25519PublicKeyFromBytes", types.ErrInvalidPoint, err.Error())
	}
	return k, nil
}

// Ed25519PublicKeyFromBytesDER 从 DER SubjectPublicKeyInfo 构造
func Ed25519PublicKeyFromBytesDER(der []byte) (Ed25519PublicKey, error) {
	spki, err := parseSPKI(der)
	if err != nil {
		return Ed25519PublicKey{}, err
	}
	if !spki.algorithm.Equal(OIDEd25519) {
		return Ed25519PublicKey{}, types.NewBadKeyError("Ed25519PublicKeyFromBytesDER", types.ErrInvalidDER,
			fmt.Sprintf("unexpected algorithm %s", spki.algorithm))
	}
	return Ed25519PublicKeyFromBytes(spki.publicKey)
}

// Ed25519PublicKeyFromString 从十六进制（原始或 DER）构造
func Ed25519PublicKeyFromString(s string) (Ed25519PublicKey, error) {
	b, err := decodeHex("Ed25519PublicKeyFromString", s)
	if err != nil {
		return Ed25519PublicKey{}, err
	}
	if len(b) == Ed25519PublicKeySize {
		return Ed25519PublicKeyFromBytes(b)
	}
	return Ed25519PublicKeyFromBytesDER(b)
}

// UnusableKey 返回网络约定的不可用密钥（全零 Ed25519 公钥）
func UnusableKey() Ed25519PublicKey {
	k, _ := Ed25519PublicKeyFromString("0000000000000000000000000000000000000000000000000000000000000000")
	return k
}

func (k Ed25519PublicKey) isSentinel() bool {
	return isAllZero(k.raw[:])
}

// IsUnusable 是否全零哨兵
func (k Ed25519PublicKey) IsUnusable() bool {
	return k.isSentinel()
}

// ToWire 实现 Key
func (k Ed25519PublicKey) ToWire() *pbkey.Key {
	return &pbkey.Key{Ed25519: k.ToBytesRaw()}
}

// ToBytes 实现 Key
func (k Ed25519PublicKey) ToBytes() []byte {
	return k.ToWire().Marshal()
}

// Equal 实现 Key
func (k Ed25519PublicKey) Equal(other Key) bool {
	return KeysEqual(k, other)
}

// String 返回 DER 十六进制
func (k Ed25519PublicKey) String() string {
	return k.ToStringDER()
}

// ToBytesRaw 返回 32 字节原始公钥
func (k Ed25519PublicKey) ToBytesRaw() []byte {
	return append([]byte(nil), k.raw[:]...)
}

// ToBytesDER 返回 302a300506032b6570032100 || raw
func (k Ed25519PublicKey) ToBytesDER() []byte {
	return marshalSPKI(k.raw[:], OIDEd25519, nil)
}

// ToStringRaw 返回原始公钥十六进制
func (k Ed25519PublicKey) ToStringRaw() string {
	return hex.EncodeToString(k.raw[:])
}

// ToStringDER 返回 DER 十六进制
func (k Ed25519PublicKey) ToStringDER() string {
	return hex.EncodeToString(k.ToBytesDER())
}

// Verify 验证 Ed25519 签名
func (k Ed25519PublicKey) Verify(message, signature []byte) bool {
	if len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(k.raw[:], message, signature)
}

// VerifyTransaction 实现 PublicKey
func (k Ed25519PublicKey) VerifyTransaction(tx Transaction) bool {
	return verifyTransaction(k, tx)
}

// ToEvmAddress Ed25519 没有 EVM 地址
func (k Ed25519PublicKey) ToEvmAddress() (EvmAddress, error) {
	return EvmAddress{}, types.NewUnsupportedOperationError("ToEvmAddress", "Ed25519 keys have no EVM address")
}

// ToSignaturePair 实现 PublicKey
func (k Ed25519PublicKey) ToSignaturePair(signature []byte) *pbkey.SignaturePair {
	return &pbkey.SignaturePair{
		PubKeyPrefix: k.ToBytesRaw(),
		Ed25519:      append([]byte{}, signature...),
	}
}

// SignatureFromPair 实现 PublicKey
func (k Ed25519PublicKey) SignatureFromPair(pair *pbkey.SignaturePair) []byte {
	if pair == nil {
		return nil
	}
	return pair.Ed25519
}

// IsEd25519 实现 PublicKey
func (k Ed25519PublicKey) IsEd25519() bool { return true }

// IsECDSA 实现 PublicKey
func (k Ed25519PublicKey) IsECDSA() bool { return false }
