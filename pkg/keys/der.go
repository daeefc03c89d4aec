package keys

import (
	"encoding/asn1"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"

	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

// ============================================================================
//                              算法 OID
// ============================================================================

var (
	// OIDEd25519 id-Ed25519 (1.3.101.112)
	OIDEd25519 = asn1.ObjectIdentifier{1, 3, 101, 112}

	// OIDECPublicKey id-ecPublicKey (1.2.840.10045.2.1)
	OIDECPublicKey = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}

	// OIDSecp256k1 secp256k1 曲线 (1.3.132.0.10)
	OIDSecp256k1 = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

// subjectPublicKeyInfo 已解析的 SPKI
type subjectPublicKeyInfo struct {
	algorithm asn1.ObjectIdentifier
	publicKey []byte
}

// marshalSPKI 编码 SubjectPublicKeyInfo
//
//	SEQUENCE { SEQUENCE { algorithm OID, [curve OID] }, BIT STRING key }
func marshalSPKI(key []byte, algorithm asn1.ObjectIdentifier, curve asn1.ObjectIdentifier) []byte {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(algorithm)
			if curve != nil {
				b.AddASN1ObjectIdentifier(curve)
			}
		})
		b.AddASN1BitString(key)
	})
	return b.BytesOrPanic()
}

// parseSPKI 解码 SubjectPublicKeyInfo
//
// 算法参数（曲线 OID 或 NULL）被忽略；末尾多余数据视为错误。
func parseSPKI(der []byte) (subjectPublicKeyInfo, error) {
	input := cryptobyte.String(der)

	var (
		spki, algID cryptobyte.String
		oid         asn1.ObjectIdentifier
		bits        asn1.BitString
	)
	if !input.ReadASN1(&spki, cbasn1.SEQUENCE) || !input.Empty() {
		return subjectPublicKeyInfo{}, types.NewBadKeyError("parseSPKI", types.ErrInvalidDER, "malformed SubjectPublicKeyInfo")
	}
	if !spki.ReadASN1(&algID, cbasn1.SEQUENCE) || !algID.ReadASN1ObjectIdentifier(&oid) {
		return subjectPublicKeyInfo{}, types.NewBadKeyError("parseSPKI", types.ErrInvalidDER, "malformed AlgorithmIdentifier")
	}
	if !spki.ReadASN1BitString(&bits) || !spki.Empty() || bits.BitLength%8 != 0 {
		return subjectPublicKeyInfo{}, types.NewBadKeyError("parseSPKI", types.ErrInvalidDER, "malformed subjectPublicKey")
	}
	return subjectPublicKeyInfo{algorithm: oid, publicKey: bits.Bytes}, nil
}
