package keys

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

// PublicKeyFromBytes 按长度与 DER OID 识别公钥
//
//	32 字节       → Ed25519
//	33 / 65 字节  → ECDSA secp256k1（65 字节先压缩）
//	其他          → DER SubjectPublicKeyInfo，1.3.101.112 为 Ed25519，其余按 ECDSA
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	switch len(b) {
	case Ed25519PublicKeySize:
		k, err := Ed25519PublicKeyFromBytes(b)
		if err != nil {
			return nil, err
		}
		return k, nil
	case ECDSACompressedSize, ECDSAUncompressedSize:
		k, err := ECDSAPublicKeyFromBytes(b)
		if err != nil {
			return nil, err
		}
		return k, nil
	}
	return PublicKeyFromBytesDER(b)
}

// PublicKeyFromBytesDER 从 DER SubjectPublicKeyInfo 构造，按算法 OID 分派
func PublicKeyFromBytesDER(der []byte) (PublicKey, error) {
	spki, err := parseSPKI(der)
	if err != nil {
		return nil, err
	}
	if spki.algorithm.Equal(OIDEd25519) {
		k, err := Ed25519PublicKeyFromBytes(spki.publicKey)
		if err != nil {
			return nil, err
		}
		return k, nil
	}
	logger.Debug("DER 按 ECDSA 解析", "oid", spki.algorithm.String())
	k, err := ECDSAPublicKeyFromBytesDER(der)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// PublicKeyFromString 从十六进制构造（允许 0x 前缀）
func PublicKeyFromString(s string) (PublicKey, error) {
	b, err := decodeHex("PublicKeyFromString", s)
	if err != nil {
		return nil, err
	}
	return PublicKeyFromBytes(b)
}

// ============================================================================
//                              辅助函数
// ============================================================================

func decodeHex(op, s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, types.NewBadKeyError(op, errors.Join(types.ErrInvalidHex, err), "")
	}
	return b, nil
}

func isAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
