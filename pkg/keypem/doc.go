// Package keypem 读写 PEM 封装的私钥
//
// 读取支持三种对象：
//   - PRIVATE KEY：未加密 PKCS#8 PrivateKeyInfo，原样返回
//   - ENCRYPTED PRIVATE KEY：PKCS#8 EncryptedPrivateKeyInfo（PBES2）
//   - EC PRIVATE KEY：SEC1 ECPrivateKey，可带 Proc-Type 加密头，转换为 PKCS#8
//
// 写出固定使用 PBES2 / PBKDF2-HMAC-SHA256 / AES-128-CBC，且不做填充，
// 因此输入长度必须是 16 的整数倍。
package keypem
