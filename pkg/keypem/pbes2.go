package keypem

import (
	"crypto/sha1"
	"encoding/asn1"
	"errors"

	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
	"golang.org/x/crypto/pbkdf2"

	"github.com/xyclone-designs/go-hedera-keys/pkg/lib/crypto"
	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

// errUnsupportedScheme 本模块不处理的加密方案，交由 pemutil
var errUnsupportedScheme = errors.New("unsupported PKCS#8 encryption scheme")

// pbes2Params 已解析的 PBES2 参数（仅 PBKDF2 + AES-128-CBC）
type pbes2Params struct {
	salt       []byte
	iterations int
	keyLength  int
	prf        asn1.ObjectIdentifier
	iv         []byte
}

// ============================================================================
//                              编码
// ============================================================================

// marshalEncryptedPrivateKeyInfo 编码 EncryptedPrivateKeyInfo
//
//	SEQUENCE {
//	  SEQUENCE { pbes2, SEQUENCE {
//	    SEQUENCE { pbkdf2, SEQUENCE { salt, iterations, keyLength, SEQUENCE { hmacWithSHA256, NULL } } },
//	    SEQUENCE { aes128-CBC, OCTET STRING iv } } }
//	  OCTET STRING encryptedData }
func marshalEncryptedPrivateKeyInfo(p pbes2Params, encrypted []byte) []byte {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(oidPBES2)
			b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
				b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
					b.AddASN1ObjectIdentifier(oidPBKDF2)
					b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
						b.AddASN1OctetString(p.salt)
						b.AddASN1Int64(int64(p.iterations))
						b.AddASN1Int64(int64(p.keyLength))
						b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
							b.AddASN1ObjectIdentifier(p.prf)
							b.AddASN1NULL()
						})
					})
				})
				b.AddASN1(cbasn1.SEQUENCE, func(b *cryptobyte.Builder) {
					b.AddASN1ObjectIdentifier(oidAES128CBC)
					b.AddASN1OctetString(p.iv)
				})
			})
		})
		b.AddASN1OctetString(encrypted)
	})
	return b.BytesOrPanic()
}

// ============================================================================
//                              解码
// ============================================================================

// parseEncryptedPrivateKeyInfo 解析 EncryptedPrivateKeyInfo
//
// 结构无效返回 BadKeyError；结构有效但方案不在支持范围内返回 errUnsupportedScheme。
func parseEncryptedPrivateKeyInfo(der []byte) (pbes2Params, []byte, error) {
	var (
		p                           pbes2Params
		epki, algID, schemeParams   cryptobyte.String
		kdf, kdfParams, enc, prfAlg cryptobyte.String
		encrypted, salt, iv         cryptobyte.String
		schemeOID, kdfOID, encOID   asn1.ObjectIdentifier
	)
	input := cryptobyte.String(der)
	malformed := types.NewBadKeyError("ReadPrivateKey", types.ErrInvalidDER, "malformed EncryptedPrivateKeyInfo")

	if !input.ReadASN1(&epki, cbasn1.SEQUENCE) ||
		!epki.ReadASN1(&algID, cbasn1.SEQUENCE) ||
		!epki.ReadASN1(&encrypted, cbasn1.OCTET_STRING) ||
		!algID.ReadASN1ObjectIdentifier(&schemeOID) {
		return p, nil, malformed
	}
	if !schemeOID.Equal(oidPBES2) {
		return p, nil, errUnsupportedScheme
	}

	if !algID.ReadASN1(&schemeParams, cbasn1.SEQUENCE) ||
		!schemeParams.ReadASN1(&kdf, cbasn1.SEQUENCE) ||
		!schemeParams.ReadASN1(&enc, cbasn1.SEQUENCE) ||
		!kdf.ReadASN1ObjectIdentifier(&kdfOID) {
		return p, nil, malformed
	}
	if !kdfOID.Equal(oidPBKDF2) {
		return p, nil, errUnsupportedScheme
	}

	if !kdf.ReadASN1(&kdfParams, cbasn1.SEQUENCE) ||
		!kdfParams.ReadASN1(&salt, cbasn1.OCTET_STRING) ||
		!kdfParams.ReadASN1Integer(&p.iterations) {
		return p, nil, malformed
	}
	if kdfParams.PeekASN1Tag(cbasn1.INTEGER) && !kdfParams.ReadASN1Integer(&p.keyLength) {
		return p, nil, malformed
	}
	p.prf = oidHMACWithSHA1
	if kdfParams.PeekASN1Tag(cbasn1.SEQUENCE) {
		if !kdfParams.ReadASN1(&prfAlg, cbasn1.SEQUENCE) || !prfAlg.ReadASN1ObjectIdentifier(&p.prf) {
			return p, nil, malformed
		}
	}

	if !enc.ReadASN1ObjectIdentifier(&encOID) {
		return p, nil, malformed
	}
	if !encOID.Equal(oidAES128CBC) {
		return p, nil, errUnsupportedScheme
	}
	if !p.prf.Equal(oidHMACWithSHA256) && !p.prf.Equal(oidHMACWithSHA1) {
		return p, nil, errUnsupportedScheme
	}
	if !enc.ReadASN1(&iv, cbasn1.OCTET_STRING) || len(iv) != crypto.IVLen {
		return p, nil, malformed
	}
	if p.keyLength == 0 {
		p.keyLength = crypto.AESKeyLen
	}
	if p.iterations < 1 || p.keyLength != crypto.AESKeyLen {
		return p, nil, malformed
	}

	p.salt = append([]byte{}, salt...)
	p.iv = append([]byte{}, iv...)
	return p, append([]byte{}, encrypted...), nil
}

// deriveKey 按 PRF 选择 PBKDF2 哈希
func (p pbes2Params) deriveKey(passphrase []byte) ([]byte, error) {
	if p.prf.Equal(oidHMACWithSHA1) {
		return pbkdf2.Key(passphrase, p.salt, p.iterations, p.keyLength, sha1.New), nil
	}
	return crypto.DeriveKey(passphrase, p.salt, p.iterations, p.keyLength)
}

// trimToDER 截取明文中的外层 DER 元素
//
// 剩余部分必须为空（本模块写出的未填充数据）或合法的 PKCS#7 填充，
// 否则视为口令错误。
func trimToDER(plain []byte) ([]byte, bool) {
	rest := cryptobyte.String(plain)
	var elem cryptobyte.String
	if !rest.ReadASN1Element(&elem, cbasn1.SEQUENCE) {
		return nil, false
	}
	if n := len(rest); n > 0 {
		if n > crypto.IVLen {
			return nil, false
		}
		for _, c := range rest {
			if int(c) != n {
				return nil, false
			}
		}
	}
	return []byte(elem), true
}
