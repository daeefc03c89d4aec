// Package crypto 提供密钥子系统使用的密码学原语
//
// 所有函数都是无状态的纯函数，可以并发调用。
//
// # 提供的原语
//
//   - DeriveKey：PBKDF2-HMAC-SHA256 密钥派生
//   - EncryptCtr / DecryptCtr：AES-128-CTR，无填充
//   - EncryptCbc / DecryptCbc：AES-128-CBC，无填充（调用方负责对齐 16 字节）
//   - Hmac384：HMAC-SHA384，使用派生密钥的 [16,32) 字节作为 MAC 密钥
//   - Keccak256：以太坊风格 Keccak-256
//   - RandomBytes：加密安全随机字节
//   - RecoverPublicKey：SEC1 4.1.6 ECDSA 公钥恢复
//
// # 快速开始
//
//	key, err := crypto.DeriveKey([]byte("passphrase"), salt, crypto.Iterations, crypto.DKLen)
//	ct, err := crypto.EncryptCtr(key, iv, plaintext)
//	mac, err := crypto.Hmac384(key, iv, ct)
//
// # 错误
//
// 输入不合法时返回 *types.CryptoError，不会静默截断或使用默认值。
//
// # 架构层
//
//   - 层级：pkg（公共包）
//   - 依赖：pkg/types
package crypto
