package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/pbkdf2"

	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

// DeriveKey 使用 PBKDF2-HMAC-SHA256 派生密钥
//
// 参数：
//   - passphrase: 口令
//   - salt: 盐
//   - iterations: 迭代次数，必须 >= 1
//   - outLen: 输出长度，必须 >= 1
func DeriveKey(passphrase, salt []byte, iterations, outLen int) ([]byte, error) {
	if iterations < 1 {
		return nil, types.NewCryptoError("DeriveKey", types.ErrInvalidParameter,
			fmt.Sprintf("iterations must be positive, got %d", iterations))
	}
	if outLen < 1 {
		return nil, types.NewCryptoError("DeriveKey", types.ErrInvalidParameter,
			fmt.Sprintf("output length must be positive, got %d", outLen))
	}
	return pbkdf2.Key(passphrase, salt, iterations, outLen, sha256.New), nil
}

// RandomBytes 生成指定长度的加密安全随机字节
//
// 使用系统的加密安全随机源 (crypto/rand)。
//
// 示例：
//
//	salt, err := crypto.RandomBytes(crypto.SaltLen)
func RandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, types.NewCryptoError("RandomBytes", types.ErrInvalidParameter, "negative length")
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, types.NewCryptoError("RandomBytes", err, "random source unavailable")
	}
	return b, nil
}

// ConstantTimeEqual 常量时间比较两个字节切片
func ConstantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
