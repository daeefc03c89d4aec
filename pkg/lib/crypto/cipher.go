package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

// ============================================================================
//                              AES-128
// ============================================================================

// EncryptCtr AES-128-CTR 加密，输出长度等于输入长度
//
// 只使用 key 的前 16 字节。
func EncryptCtr(key, iv, data []byte) ([]byte, error) {
	return ctr("EncryptCtr", key, iv, data)
}

// DecryptCtr AES-128-CTR 解密
func DecryptCtr(key, iv, data []byte) ([]byte, error) {
	return ctr("DecryptCtr", key, iv, data)
}

func ctr(op string, key, iv, data []byte) ([]byte, error) {
	block, err := newBlock(op, key, iv)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	cipher.NewCTR(block, iv).XORKeyStream(out, data)
	return out, nil
}

// EncryptCbc AES-128-CBC 加密，不填充
//
// data 长度必须是 16 的整数倍。
func EncryptCbc(key, iv, data []byte) ([]byte, error) {
	block, err := newBlock("EncryptCbc", key, iv)
	if err != nil {
		return nil, err
	}
	if len(data)%aes.BlockSize != 0 {
		return nil, types.NewCryptoError("EncryptCbc", types.ErrInvalidBlockSize,
			fmt.Sprintf("length %d", len(data)))
	}
	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, data)
	return out, nil
}

// DecryptCbc AES-128-CBC 解密，不去除填充
func DecryptCbc(key, iv, data []byte) ([]byte, error) {
	block, err := newBlock("DecryptCbc", key, iv)
	if err != nil {
		return nil, err
	}
	if len(data)%aes.BlockSize != 0 {
		return nil, types.NewCryptoError("DecryptCbc", types.ErrInvalidBlockSize,
			fmt.Sprintf("length %d", len(data)))
	}
	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)
	return out, nil
}

func newBlock(op string, key, iv []byte) (cipher.Block, error) {
	if len(key) < AESKeyLen {
		return nil, types.NewCryptoError(op, types.ErrInvalidCipherKey,
			fmt.Sprintf("need at least %d bytes, got %d", AESKeyLen, len(key)))
	}
	if len(iv) != IVLen {
		return nil, types.NewCryptoError(op, types.ErrInvalidIV,
			fmt.Sprintf("need %d bytes, got %d", IVLen, len(iv)))
	}
	block, err := aes.NewCipher(key[:AESKeyLen])
	if err != nil {
		return nil, types.NewCryptoError(op, err, "")
	}
	return block, nil
}

// ============================================================================
//                              MAC 与哈希
// ============================================================================

// Hmac384 计算 HMAC-SHA384(key[16:32], iv || data)
//
// iv 为 nil 时不参与计算。
func Hmac384(key, iv, data []byte) ([]byte, error) {
	if len(key) < DKLen {
		return nil, types.NewCryptoError("Hmac384", types.ErrInvalidCipherKey,
			fmt.Sprintf("need at least %d bytes, got %d", DKLen, len(key)))
	}
	mac := hmac.New(sha512.New384, key[16:32])
	if iv != nil {
		mac.Write(iv)
	}
	mac.Write(data)
	return mac.Sum(nil), nil
}

// Keccak256 计算 Keccak-256（以太坊变体，非 NIST SHA3）
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}
