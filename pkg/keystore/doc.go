// Package keystore 实现口令加密的 JSON keystore 编解码
//
// 文件格式：
//
//	{
//	  "version": 2,
//	  "crypto": {
//	    "cipher": "aes-128-ctr",
//	    "cipherparams": {"iv": "<hex>"},
//	    "ciphertext": "<hex>",
//	    "kdf": "pbkdf2",
//	    "kdfparams": {"dkLen": 32, "salt": "<hex>", "c": 262144, "prf": "hmac-sha256"},
//	    "mac": "<hex>"
//	  }
//	}
//
// 派生密钥的前 16 字节用于 AES-128-CTR，后 16 字节作为 HMAC-SHA384 的密钥。
// 版本 1 的 MAC 只覆盖密文，版本 2 覆盖 IV 与密文；导出始终写版本 2。
package keystore
