package keypem

import (
	"encoding/asn1"
	"fmt"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/xyclone-designs/go-hedera-keys/pkg/keys"
	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

// ============================================================================
//                              OID
// ============================================================================

var (
	oidPBES2          = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 5, 13}
	oidPBKDF2         = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 5, 12}
	oidHMACWithSHA1   = asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 7}
	oidHMACWithSHA256 = asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 9}
	oidAES128CBC      = asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 1, 2}
)

// ============================================================================
//                              PrivateKeyInfo
// ============================================================================

// PrivateKeyInfo 已解析的 PKCS#8 私钥
type PrivateKeyInfo struct {
	// Algorithm 算法 OID（Ed25519 或 id-ecPublicKey）
	Algorithm asn1.ObjectIdentifier

	// Curve 曲线 OID，仅 EC 密钥
	Curve asn1.ObjectIdentifier

	// PrivateKey 原始私钥（Ed25519 种子或 secp256k1 标量）
	PrivateKey []byte
}

// IsEd25519 是否 Ed25519 私钥
func (p *PrivateKeyInfo) IsEd25519() bool { return p.Algorithm.Equal(keys.OIDEd25519) }

// IsECDSA 是否 secp256k1 私钥
func (p *PrivateKeyInfo) IsECDSA() bool {
	return p.Algorithm.Equal(keys.OIDECPublicKey) && p.Curve.Equal(keys.OIDSecp256k1)
}

// ParsePrivateKeyInfo 解析 PKCS#8 PrivateKeyInfo
//
//	SEQUENCE { INTEGER 0, AlgorithmIdentifier, OCTET STRING privateKey, ... }
//
// 末尾的 attributes / publicKey 字段被忽略。
func ParsePrivateKeyInfo(der []byte) (*PrivateKeyInfo, error) {
	input := cryptobyte.String(der)

	var (
		pki, algID, inner cryptobyte.String
		version           int
		info              PrivateKeyInfo
	)
	if !input.ReadASN1(&pki, cbasn1.SEQUENCE) || !input.Empty() ||
		!pki.ReadASN1Integer(&version) || version > 1 ||
		!pki.ReadASN1(&algID, cbasn1.SEQUENCE) ||
		!algID.ReadASN1ObjectIdentifier(&info.Algorithm) ||
		!pki.ReadASN1(&inner, cbasn1.OCTET_STRING) {
		return nil, types.NewBadKeyError("ParsePrivateKeyInfo", types.ErrInvalidDER, "malformed PrivateKeyInfo")
	}
	if algID.PeekASN1Tag(cbasn1.OBJECT_IDENTIFIER) {
		var curve asn1.ObjectIdentifier
		if !algID.ReadASN1ObjectIdentifier(&curve) {
			return nil, types.NewBadKeyError("ParsePrivateKeyInfo", types.ErrInvalidDER, "malformed curve parameter")
		}
		info.Curve = curve
	}

	switch {
	case info.Algorithm.Equal(keys.OIDEd25519):
		var seed cryptobyte.String
		if !inner.ReadASN1(&seed, cbasn1.OCTET_STRING) || !inner.Empty() || len(seed) != 32 {
			return nil, types.NewBadKeyError("ParsePrivateKeyInfo", types.ErrInvalidKeyLength, "malformed Ed25519 private key")
		}
		info.PrivateKey = append([]byte{}, seed...)

	case info.Algorithm.Equal(keys.OIDECPublicKey):
		ec, err := parseSEC1([]byte(inner))
		if err != nil {
			return nil, err
		}
		if info.Curve == nil {
			info.Curve = ec.curve
		}
		info.PrivateKey = ec.privateKey

	default:
		return nil, types.NewBadKeyError("ParsePrivateKeyInfo", types.ErrUnsupportedKeyCase,
			fmt.Sprintf("unsupported private key algorithm: %s", info.Algorithm))
	}
	return &info, nil
}

// MarshalPrivateKeyInfo 编码 PKCS#8 PrivateKeyInfo
func MarshalPrivateKeyInfo(info *PrivateKeyInfo) ([]byte, error) {
	var b cryptobyte.Builder
	switch {
	case info.IsEd25519():
		if len(info.PrivateKey) != 32 {
			return nil, types.NewBadKeyError("MarshalPrivateKeyInfo", types.ErrInvalidKeyLength,
				fmt.Sprintf("Ed25519 seed must be 32 bytes, got %d", len(info.PrivateKey)))
		}
		b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1Int64(0)
			b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
				b.AddASN1ObjectIdentifier(keys.OIDEd25519)
			})
			b.AddASN1(cbasn1.OCTET_STRING, func(b *cryptobyte.Builder) {
				b.AddASN1OctetString(info.PrivateKey)
			})
		})

	case info.Algorithm.Equal(keys.OIDECPublicKey):
		if len(info.PrivateKey) != 32 {
			return nil, types.NewBadKeyError("MarshalPrivateKeyInfo", types.ErrInvalidKeyLength,
				fmt.Sprintf("secp256k1 scalar must be 32 bytes, got %d", len(info.PrivateKey)))
		}
		curve := info.Curve
		if curve == nil {
			curve = keys.OIDSecp256k1
		}
		return wrapSEC1(curve, marshalSEC1(info.PrivateKey)), nil

	default:
		return nil, types.NewBadKeyError("MarshalPrivateKeyInfo", types.ErrUnsupportedKeyCase,
			fmt.Sprintf("unsupported private key algorithm: %s", info.Algorithm))
	}
	return b.Bytes()
}

// ============================================================================
//                              SEC1
// ============================================================================

type sec1Key struct {
	curve      asn1.ObjectIdentifier
	privateKey []byte
}

// parseSEC1 解析 ECPrivateKey
//
//	SEQUENCE { INTEGER 1, OCTET STRING key, [0] OID OPTIONAL, [1] BIT STRING OPTIONAL }
//
// 未携带曲线参数时按 secp256k1 处理。
func parseSEC1(der []byte) (*sec1Key, error) {
	input := cryptobyte.String(der)

	var (
		seq, priv cryptobyte.String
		version   int
		params    cryptobyte.String
		hasParams bool
	)
	if !input.ReadASN1(&seq, cbasn1.SEQUENCE) ||
		!seq.ReadASN1Integer(&version) || version != 1 ||
		!seq.ReadASN1(&priv, cbasn1.OCTET_STRING) ||
		!seq.ReadOptionalASN1(&params, &hasParams, cbasn1.Tag(0).ContextSpecific().Constructed()) {
		return nil, types.NewBadKeyError("parseSEC1", types.ErrInvalidDER, "malformed EC private key")
	}
	if len(priv) != 32 {
		return nil, types.NewBadKeyError("parseSEC1", types.ErrInvalidKeyLength,
			fmt.Sprintf("EC private key must be 32 bytes, got %d", len(priv)))
	}

	key := &sec1Key{curve: keys.OIDSecp256k1, privateKey: append([]byte{}, priv...)}
	if hasParams {
		var curve asn1.ObjectIdentifier
		if !params.ReadASN1ObjectIdentifier(&curve) {
			return nil, types.NewBadKeyError("parseSEC1", types.ErrInvalidDER, "malformed EC parameters")
		}
		key.curve = curve
	}
	return key, nil
}

func marshalSEC1(priv []byte) []byte {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(1)
		b.AddASN1OctetString(priv)
	})
	return b.BytesOrPanic()
}

// wrapSEC1 将 SEC1 结构包装为 PKCS#8
func wrapSEC1(curve asn1.ObjectIdentifier, sec1 []byte) []byte {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(0)
		b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(keys.OIDECPublicKey)
			b.AddASN1ObjectIdentifier(curve)
		})
		b.AddASN1OctetString(sec1)
	})
	return b.BytesOrPanic()
}
