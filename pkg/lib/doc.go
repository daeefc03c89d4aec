// Package lib 包含基础设施工具库
//
// 本目录包含与密钥模型无关的通用工具库：
//
//   - crypto: 密码学原语（PBKDF2、AES、HMAC、Keccak、公钥恢复）
//   - log: 日志封装
//   - proto: wire 消息定义
//
// # 与 pkg/ 其他目录的关系
//
// pkg/ 目录包含三类内容：
//
//   - keys/ keystore/ keypem/ transaction/: 领域组件
//   - types/: 公共类型定义
//   - lib/: 基础设施工具库（本目录）
//
// # 使用示例
//
//	import (
//	    "github.com/xyclone-designs/go-hedera-keys/pkg/lib/crypto"
//	    "github.com/xyclone-designs/go-hedera-keys/pkg/lib/log"
//	)
package lib
