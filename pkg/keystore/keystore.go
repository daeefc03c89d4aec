package keystore

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/xyclone-designs/go-hedera-keys/config"
	"github.com/xyclone-designs/go-hedera-keys/pkg/lib/crypto"
	"github.com/xyclone-designs/go-hedera-keys/pkg/lib/log"
	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

var logger = log.Logger("keys/keystore")

const (
	// Version1 MAC 只覆盖密文
	Version1 = 1

	// Version2 MAC 覆盖 IV 与密文
	Version2 = 2

	// CipherAES128CTR 唯一支持的加密算法
	CipherAES128CTR = "aes-128-ctr"

	// KDFPBKDF2 唯一支持的密钥派生函数
	KDFPBKDF2 = "pbkdf2"

	// PRFHmacSHA256 唯一支持的 KDF 哈希函数
	PRFHmacSHA256 = "hmac-sha256"
)

// ============================================================================
//                              Keystore 定义
// ============================================================================

// Keystore 内存中的私钥字节与 keystore 版本
type Keystore struct {
	raw     []byte
	version int
}

// New 从原始私钥字节创建，版本记为 2
func New(raw []byte) *Keystore {
	return &Keystore{raw: append([]byte{}, raw...), version: Version2}
}

// Bytes 返回私钥字节副本
func (k *Keystore) Bytes() []byte {
	return append([]byte{}, k.raw...)
}

// Version 返回来源文件版本
func (k *Keystore) Version() int {
	return k.version
}

// Export 以默认参数导出为版本 2 JSON
func (k *Keystore) Export(passphrase string) ([]byte, error) {
	return defaultCodec.Encrypt(k.raw, passphrase)
}

// ============================================================================
//                              Codec
// ============================================================================

// Codec 带导出参数的编解码器
type Codec struct {
	iterations int
	saltLen    int
}

var defaultCodec = &Codec{iterations: crypto.Iterations, saltLen: crypto.SaltLen}

// NewCodec 从配置创建编解码器
func NewCodec(cfg config.KeystoreConfig) (*Codec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid keystore config: %w", err)
	}
	return &Codec{iterations: cfg.Iterations, saltLen: cfg.SaltLength}, nil
}

// Decrypt 使用默认编解码器解密
func Decrypt(data []byte, passphrase string) (*Keystore, error) {
	return defaultCodec.Decrypt(data, passphrase)
}

// Encrypt 使用默认编解码器加密
func Encrypt(raw []byte, passphrase string) ([]byte, error) {
	return defaultCodec.Encrypt(raw, passphrase)
}

// Decrypt 解析并解密 keystore JSON
//
// 解码参数全部取自文件本身，与 Codec 的导出参数无关。
func (c *Codec) Decrypt(data []byte, passphrase string) (*Keystore, error) {
	f, err := parseFile(data)
	if err != nil {
		return nil, err
	}

	version := *f.Version
	var mac macFunc
	switch version {
	case Version1:
		mac = macV1
	case Version2:
		mac = macV2
	default:
		return nil, types.NewBadKeyError("Decrypt", types.ErrUnsupportedVersion,
			fmt.Sprintf("unsupported keystore version: %d", version))
	}

	// 算法名先于其余字段，其他 KDF 的参数结构不同
	if err := checkAlgorithms(f.Crypto); err != nil {
		return nil, err
	}
	if err := validateFields(f); err != nil {
		return nil, err
	}
	cj := f.Crypto
	// 空私钥对应空密文，只要求字段存在
	if cj.Ciphertext == nil {
		return nil, missingKey("crypto.ciphertext")
	}

	ciphertext, err := decodeHex("crypto.ciphertext", *cj.Ciphertext)
	if err != nil {
		return nil, err
	}
	iv, err := decodeHex("crypto.cipherparams.iv", *cj.CipherParams.IV)
	if err != nil {
		return nil, err
	}
	if len(iv) != crypto.IVLen {
		return nil, types.NewBadKeyError("Decrypt", types.ErrInvalidIV,
			fmt.Sprintf("expected key 'crypto.cipherparams.iv' to be %d bytes, got %d", crypto.IVLen, len(iv)))
	}
	expected, err := decodeHex("crypto.mac", *cj.MAC)
	if err != nil {
		return nil, err
	}
	salt, err := decodeHex("crypto.kdfparams.salt", *cj.KDFParams.Salt)
	if err != nil {
		return nil, err
	}

	logger.Debug("解码 keystore", "version", version, "iterations", *cj.KDFParams.C)

	cipherKey, err := crypto.DeriveKey([]byte(passphrase), salt, *cj.KDFParams.C, *cj.KDFParams.DKLen)
	if err != nil {
		return nil, err
	}
	actual, err := mac(cipherKey, iv, ciphertext)
	if err != nil {
		return nil, err
	}
	if !crypto.ConstantTimeEqual(expected, actual) {
		return nil, types.NewBadKeyError("Decrypt", types.ErrPassphraseMismatch, "")
	}

	raw, err := crypto.DecryptCtr(cipherKey, iv, ciphertext)
	if err != nil {
		return nil, err
	}
	return &Keystore{raw: raw, version: version}, nil
}

// checkAlgorithms 只检查 cipher、kdf 与 prf 的存在和取值
func checkAlgorithms(cj *cryptoJSON) error {
	if cj == nil {
		return missingKey("crypto")
	}
	if cj.Cipher == nil {
		return missingKey("crypto.cipher")
	}
	if *cj.Cipher != CipherAES128CTR {
		return types.NewBadKeyError("Decrypt", types.ErrUnsupportedCipher,
			fmt.Sprintf("unsupported keystore cipher: %s", *cj.Cipher))
	}
	if cj.KDF == nil {
		return missingKey("crypto.kdf")
	}
	if *cj.KDF != KDFPBKDF2 {
		return types.NewBadKeyError("Decrypt", types.ErrUnsupportedKDF,
			fmt.Sprintf("unsupported KDF: %s", *cj.KDF))
	}
	if cj.KDFParams == nil {
		return missingKey("crypto.kdfparams")
	}
	if cj.KDFParams.PRF == nil {
		return missingKey("crypto.kdfparams.prf")
	}
	if *cj.KDFParams.PRF != PRFHmacSHA256 {
		return types.NewBadKeyError("Decrypt", types.ErrUnsupportedPRF,
			fmt.Sprintf("unsupported KDF hash function: %s", *cj.KDFParams.PRF))
	}
	return nil
}

// Encrypt 加密私钥字节并输出版本 2 JSON
func (c *Codec) Encrypt(raw []byte, passphrase string) ([]byte, error) {
	salt, err := crypto.RandomBytes(c.saltLen)
	if err != nil {
		return nil, err
	}
	iv, err := crypto.RandomBytes(crypto.IVLen)
	if err != nil {
		return nil, err
	}
	cipherKey, err := crypto.DeriveKey([]byte(passphrase), salt, c.iterations, crypto.DKLen)
	if err != nil {
		return nil, err
	}
	ciphertext, err := crypto.EncryptCtr(cipherKey, iv, raw)
	if err != nil {
		return nil, err
	}
	mac, err := macV2(cipherKey, iv, ciphertext)
	if err != nil {
		return nil, err
	}

	logger.Debug("导出 keystore", "version", Version2, "iterations", c.iterations)

	return json.Marshal(exportJSON{
		Version: Version2,
		Crypto: exportCryptoJSON{
			Cipher:       CipherAES128CTR,
			KDF:          KDFPBKDF2,
			CipherParams: exportCipherParams{IV: hex.EncodeToString(iv)},
			Ciphertext:   hex.EncodeToString(ciphertext),
			KDFParams: exportKDFParams{
				DKLen: crypto.DKLen,
				Salt:  hex.EncodeToString(salt),
				C:     c.iterations,
				PRF:   PRFHmacSHA256,
			},
			MAC: hex.EncodeToString(mac),
		},
	})
}

// Export 导出 Keystore
func (c *Codec) Export(k *Keystore, passphrase string) ([]byte, error) {
	return c.Encrypt(k.raw, passphrase)
}

// ============================================================================
//                              MAC
// ============================================================================

type macFunc func(cipherKey, iv, ciphertext []byte) ([]byte, error)

// macV1 版本 1：HMAC-SHA384(key[16:32], ciphertext)
func macV1(cipherKey, _, ciphertext []byte) ([]byte, error) {
	return crypto.Hmac384(cipherKey, nil, ciphertext)
}

// macV2 版本 2：HMAC-SHA384(key[16:32], iv || ciphertext)
func macV2(cipherKey, iv, ciphertext []byte) ([]byte, error) {
	return crypto.Hmac384(cipherKey, iv, ciphertext)
}
