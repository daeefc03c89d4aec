package keys

import (
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/xyclone-designs/go-hedera-keys/pkg/lib/crypto"
	pbkey "github.com/xyclone-designs/go-hedera-keys/pkg/lib/proto/key"
	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

// secp256k1 公钥编码长度
const (
	ECDSACompressedSize   = secp256k1.PubKeyBytesLenCompressed
	ECDSAUncompressedSize = secp256k1.PubKeyBytesLenUncompressed

	// ECDSASignatureSize r || s 定长签名
	ECDSASignatureSize = 64
)

// ECDSAPublicKey secp256k1 公钥
//
// 内部统一保存 33 字节压缩形式。
type ECDSAPublicKey struct {
	compressed [ECDSACompressedSize]byte
}

var _ PublicKey = ECDSAPublicKey{}

// ECDSAPublicKeyFromBytes 从压缩、非压缩或 DER 字节构造
//
// 全零 33 字节原样接受（与 Ed25519 相同的哨兵约定），其余输入必须解压到曲线上。
func ECDSAPublicKeyFromBytes(b []byte) (ECDSAPublicKey, error) {
	switch len(b) {
	case ECDSACompressedSize:
		if isAllZero(b) {
			var k ECDSAPublicKey
			copy(k.compressed[:], b)
			return k, nil
		}
		return parseECDSAPoint(b)
	case ECDSAUncompressedSize:
		return parseECDSAPoint(b)
	default:
		return ECDSAPublicKeyFromBytesDER(b)
	}
}

// ECDSAPublicKeyFromBytesDER 从 DER SubjectPublicKeyInfo 构造
//
// 除 Ed25519 外的算法 OID 都按 secp256k1 处理，兼容只携带曲线 OID 的编码。
func ECDSAPublicKeyFromBytesDER(der []byte) (ECDSAPublicKey, error) {
	spki, err := parseSPKI(der)
	if err != nil {
		return ECDSAPublicKey{}, err
	}
	if spki.algorithm.Equal(OIDEd25519) {
		return ECDSAPublicKey{}, types.NewBadKeyError("ECDSAPublicKeyFromBytesDER", types.ErrInvalidDER,
			"DER encodes an Ed25519 key")
	}
	switch len(spki.publicKey) {
	case ECDSACompressedSize, ECDSAUncompressedSize:
		return ECDSAPublicKeyFromBytes(spki.publicKey)
	default:
		return ECDSAPublicKey{}, types.NewBadKeyError("ECDSAPublicKeyFromBytesDER", types.ErrInvalidKeyLength,
			fmt.Sprintf("unexpected point length %d", len(spki.publicKey)))
	}
}

// ECDSAPublicKeyFromString 从十六进制（原始或 DER）构造
func ECDSAPublicKeyFromString(s string) (ECDSAPublicKey, error) {
	b, err := decodeHex("ECDSAPublicKeyFromString", s)
	if err != nil {
		return ECDSAPublicKey{}, err
	}
	return ECDSAPublicKeyFromBytes(b)
}

func parseECDSAPoint(b []byte) (ECDSAPublicKey, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return ECDSAPublicKey{}, types.NewBadKeyError("ECDSAPublicKeyFromBytes", types.ErrInvalidPoint, err.Error())
	}
	var k ECDSAPublicKey
	copy(k.compressed[:], pub.SerializeCompressed())
	return k, nil
}

func (k ECDSAPublicKey) isSentinel() bool {
	return isAllZero(k.compressed[:])
}

// IsUnusable 是否全零哨兵
func (k ECDSAPublicKey) IsUnusable() bool {
	return k.isSentinel()
}

func (k ECDSAPublicKey) point() (*secp256k1.PublicKey, error) {
	if k.isSentinel() {
		return nil, types.NewBadKeyError("ECDSAPublicKey", types.ErrInvalidPoint, "all-zero key has no curve point")
	}
	pub, err := secp256k1.ParsePubKey(k.compressed[:])
	if err != nil {
		return nil, types.NewBadKeyError("ECDSAPublicKey", types.ErrInvalidPoint, err.Error())
	}
	return pub, nil
}

// ToWire 实现 Key
func (k ECDSAPublicKey) ToWire() *pbkey.Key {
	return &pbkey.Key{ECDSASecp256k1: k.ToBytesRaw()}
}

// ToBytes 实现 Key
func (k ECDSAPublicKey) ToBytes() []byte {
	return k.ToWire().Marshal()
}

// Equal 实现 Key
func (k ECDSAPublicKey) Equal(other Key) bool {
	return KeysEqual(k, other)
}

// String 返回 DER 十六进制
func (k ECDSAPublicKey) String() string {
	return k.ToStringDER()
}

// ToBytesRaw 返回 33 字节压缩公钥
func (k ECDSAPublicKey) ToBytesRaw() []byte {
	return append([]byte(nil), k.compressed[:]...)
}

// ToBytesUncompressed 返回 65 字节非压缩公钥
func (k ECDSAPublicKey) ToBytesUncompressed() ([]byte, error) {
	pub, err := k.point()
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

// ToBytesDER 返回 id-ecPublicKey/secp256k1 SubjectPublicKeyInfo（压缩点）
func (k ECDSAPublicKey) ToBytesDER() []byte {
	return marshalSPKI(k.compressed[:], OIDECPublicKey, OIDSecp256k1)
}

// ToStringRaw 返回压缩公钥十六进制
func (k ECDSAPublicKey) ToStringRaw() string {
	return hex.EncodeToString(k.compressed[:])
}

// ToStringDER 返回 DER 十六进制
func (k ECDSAPublicKey) ToStringDER() string {
	return hex.EncodeToString(k.ToBytesDER())
}

// Verify 验证 64 字节 r || s 签名，摘要为 Keccak256(message)
//
// 不强制 low-S。
func (k ECDSAPublicKey) Verify(message, signature []byte) bool {
	if len(signature) != ECDSASignatureSize {
		return false
	}
	pub, err := k.point()
	if err != nil {
		return false
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(signature[:32]); overflow || r.IsZero() {
		return false
	}
	if overflow := s.SetByteSlice(signature[32:]); overflow || s.IsZero() {
		return false
	}
	return ecdsa.NewSignature(&r, &s).Verify(crypto.Keccak256(message), pub)
}

// VerifyTransaction 实现 PublicKey
func (k ECDSAPublicKey) VerifyTransaction(tx Transaction) bool {
	return verifyTransaction(k, tx)
}

// ToEvmAddress 派生 EVM 地址
//
// 非压缩点去掉前缀字节后做 Keccak-256，取最后 20 字节。
func (k ECDSAPublicKey) ToEvmAddress() (EvmAddress, error) {
	uncompressed, err := k.ToBytesUncompressed()
	if err != nil {
		return EvmAddress{}, err
	}
	return evmAddressFromUncompressed(uncompressed), nil
}

// ToSignaturePair 实现 PublicKey
func (k ECDSAPublicKey) ToSignaturePair(signature []byte) *pbkey.SignaturePair {
	return &pbkey.SignaturePair{
		PubKeyPrefix:   k.ToBytesRaw(),
		ECDSASecp256k1: append([]byte{}, signature...),
	}
}

// SignatureFromPair 实现 PublicKey
func (k ECDSAPublicKey) SignatureFromPair(pair *pbkey.SignaturePair) []byte {
	if pair == nil {
		return nil
	}
	return pair.ECDSASecp256k1
}

// IsEd25519 实现 PublicKey
func (k ECDSAPublicKey) IsEd25519() bool { return false }

// IsECDSA 实现 PublicKey
func (k ECDSAPublicKey) IsECDSA() bool { return true }
