package keypem

import (
	"encoding/pem"
	"errors"
	"fmt"

	"go.step.sm/crypto/pemutil"

	"github.com/xyclone-designs/go-hedera-keys/config"
	"github.com/xyclone-designs/go-hedera-keys/pkg/lib/crypto"
	"github.com/xyclone-designs/go-hedera-keys/pkg/lib/log"
	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

var logger = log.Logger("keys/pem")

const (
	// TypePrivateKey 未加密 PKCS#8
	TypePrivateKey = "PRIVATE KEY"

	// TypeEncryptedPrivateKey 加密 PKCS#8
	TypeEncryptedPrivateKey = "ENCRYPTED PRIVATE KEY"

	// TypeECPrivateKey SEC1
	TypeECPrivateKey = "EC PRIVATE KEY"
)

// ============================================================================
//                              Codec
// ============================================================================

// Codec 带写出参数的 PEM 编解码器
type Codec struct {
	iterations int
	saltLen    int
}

var defaultCodec = &Codec{iterations: crypto.Iterations, saltLen: crypto.SaltLen}

// NewCodec 从配置创建编解码器
func NewCodec(cfg config.PEMConfig) (*Codec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pem config: %w", err)
	}
	return &Codec{iterations: cfg.Iterations, saltLen: cfg.SaltLength}, nil
}

// ReadPrivateKey 使用默认编解码器读取
func ReadPrivateKey(text, passphrase string) ([]byte, error) {
	return defaultCodec.ReadPrivateKey(text, passphrase)
}

// WriteEncryptedPrivateKey 使用默认编解码器写出
func WriteEncryptedPrivateKey(pki []byte, passphrase string) (string, error) {
	return defaultCodec.WriteEncryptedPrivateKey(pki, passphrase)
}

// WritePrivateKey 写出未加密的 PRIVATE KEY
func WritePrivateKey(pki []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: TypePrivateKey, Bytes: pki}))
}

// ============================================================================
//                              读取
// ============================================================================

// ReadPrivateKey 读取第一个 PEM 对象并返回 PKCS#8 PrivateKeyInfo DER
func (c *Codec) ReadPrivateKey(text, passphrase string) ([]byte, error) {
	block, _ := pem.Decode([]byte(text))
	if block == nil {
		return nil, types.NewBadKeyError("ReadPrivateKey", types.ErrNoPEMBlock, "")
	}

	logger.Debug("读取 PEM 对象", "type", block.Type, "encrypted", isLegacyEncrypted(block))

	switch block.Type {
	case TypePrivateKey:
		return block.Bytes, nil

	case TypeEncryptedPrivateKey:
		if passphrase == "" {
			return nil, types.NewBadKeyError("ReadPrivateKey", types.ErrPassphraseRequired, "")
		}
		return decryptPKCS8(block.Bytes, []byte(passphrase))

	case TypeECPrivateKey:
		der := block.Bytes
		if isLegacyEncrypted(block) {
			if passphrase == "" {
				return nil, types.NewBadKeyError("ReadPrivateKey", types.ErrPassphraseRequired, "")
			}
			plain, err := pemutil.DecryptPEMBlock(block, []byte(passphrase))
			if err != nil {
				return nil, types.NewBadKeyError("ReadPrivateKey", errors.Join(types.ErrDecryptFailed, err), "")
			}
			der = plain
		}
		ec, err := parseSEC1(der)
		if err != nil {
			return nil, err
		}
		return wrapSEC1(ec.curve, der), nil

	default:
		return nil, types.NewBadKeyError("ReadPrivateKey", types.ErrUnsupportedPEMType,
			fmt.Sprintf("unsupported PEM object type: %s", block.Type))
	}
}

func isLegacyEncrypted(block *pem.Block) bool {
	return block.Headers["Proc-Type"] == "4,ENCRYPTED"
}

// decryptPKCS8 解密 EncryptedPrivateKeyInfo
func decryptPKCS8(der, passphrase []byte) ([]byte, error) {
	params, encrypted, err := parseEncryptedPrivateKeyInfo(der)
	if errors.Is(err, errUnsupportedScheme) {
		logger.Debug("加密方案交由 pemutil 处理")
		plain, err := pemutil.DecryptPKCS8PrivateKey(der, passphrase)
		if err != nil {
			return nil, types.NewBadKeyError("ReadPrivateKey", errors.Join(types.ErrDecryptFailed, err), "")
		}
		return plain, nil
	}
	if err != nil {
		return nil, err
	}

	key, err := params.deriveKey(passphrase)
	if err != nil {
		return nil, err
	}
	plain, err := crypto.DecryptCbc(key, params.iv, encrypted)
	if err != nil {
		return nil, types.NewBadKeyError("ReadPrivateKey", errors.Join(types.ErrDecryptFailed, err), "")
	}
	pki, ok := trimToDER(plain)
	if !ok {
		return nil, types.NewBadKeyError("ReadPrivateKey", types.ErrDecryptFailed, "passphrase is incorrect")
	}
	if _, err := ParsePrivateKeyInfo(pki); err != nil {
		return nil, types.NewBadKeyError("ReadPrivateKey", errors.Join(types.ErrDecryptFailed, err), "passphrase is incorrect")
	}
	return pki, nil
}

// ============================================================================
//                              写出
// ============================================================================

// WriteEncryptedPrivateKey 以口令加密 PrivateKeyInfo 并封装为 ENCRYPTED PRIVATE KEY
//
// 不做填充：pki 长度不是 16 的整数倍时返回 CryptoError。
func (c *Codec) WriteEncryptedPrivateKey(pki []byte, passphrase string) (string, error) {
	salt, err := crypto.RandomBytes(c.saltLen)
	if err != nil {
		return "", err
	}
	iv, err := crypto.RandomBytes(crypto.IVLen)
	if err != nil {
		return "", err
	}
	key, err := crypto.DeriveKey([]byte(passphrase), salt, c.iterations, crypto.CBCDKLen)
	if err != nil {
		return "", err
	}
	encrypted, err := crypto.EncryptCbc(key, iv, pki)
	if err != nil {
		return "", err
	}

	der := marshalEncryptedPrivateKeyInfo(pbes2Params{
		salt:       salt,
		iterations: c.iterations,
		keyLength:  crypto.CBCDKLen,
		prf:        oidHMACWithSHA256,
		iv:         iv,
	}, encrypted)

	logger.Debug("写出加密 PEM", "iterations", c.iterations)
	return string(pem.EncodeToMemory(&pem.Block{Type: TypeEncryptedPrivateKey, Bytes: der})), nil
}
