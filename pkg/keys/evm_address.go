package keys

import (
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/xyclone-designs/go-hedera-keys/pkg/lib/crypto"
	pbkey "github.com/xyclone-designs/go-hedera-keys/pkg/lib/proto/key"
	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

// EvmAddressSize EVM 地址长度
const EvmAddressSize = common.AddressLength

// EvmAddress 20 字节 EVM 地址
//
// 作为 Key 时编码进 wire 的 ECDSA_secp256k1 字段（20 字节即表示别名）。
type EvmAddress struct {
	b [EvmAddressSize]byte
}

var _ Key = EvmAddress{}

// EvmAddressFromBytes 从 20 字节构造
func EvmAddressFromBytes(b []byte) (EvmAddress, error) {
	if len(b) != EvmAddressSize {
		return EvmAddress{}, types.NewBadKeyError("EvmAddressFromBytes", types.ErrInvalidEvmAddress,
			fmt.Sprintf("expected %d bytes, got %d", EvmAddressSize, len(b)))
	}
	var a EvmAddress
	copy(a.b[:], b)
	return a, nil
}

// EvmAddressFromString 从十六进制构造（允许 0x 前缀），解码后必须恰好 20 字节
func EvmAddressFromString(s string) (EvmAddress, error) {
	b, err := decodeHex("EvmAddressFromString", s)
	if err != nil {
		return EvmAddress{}, err
	}
	return EvmAddressFromBytes(b)
}

// evmAddressFromUncompressed Keccak256(pub[1:]) 的最后 20 字节
func evmAddressFromUncompressed(uncompressed []byte) EvmAddress {
	hash := crypto.Keccak256(uncompressed[1:])
	var a EvmAddress
	copy(a.b[:], hash[len(hash)-EvmAddressSize:])
	return a
}

// Bytes 返回 20 字节原始地址
func (a EvmAddress) Bytes() []byte {
	return append([]byte(nil), a.b[:]...)
}

// String 返回不带前缀的小写十六进制
func (a EvmAddress) String() string {
	return hex.EncodeToString(a.b[:])
}

// ChecksumHex 返回 EIP-55 校验和形式（带 0x 前缀）
func (a EvmAddress) ChecksumHex() string {
	return common.Address(a.b).Hex()
}

// ToWire 实现 Key
func (a EvmAddress) ToWire() *pbkey.Key {
	return &pbkey.Key{ECDSASecp256k1: a.Bytes()}
}

// ToBytes 实现 Key
func (a EvmAddress) ToBytes() []byte {
	return a.ToWire().Marshal()
}

// Equal 实现 Key
func (a EvmAddress) Equal(other Key) bool {
	return KeysEqual(a, other)
}
