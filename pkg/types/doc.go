// Package types 定义密钥子系统的公共数据结构
//
// 这是整个模块的最底层包，不依赖任何其他内部包。
//
// # 文件组织
//
//   - errors.go       - 哨兵错误与结构化错误（BadKeyError、CryptoError、UnsupportedOperationError）
//   - contract_id.go  - ContractID（合约作为密钥时的输入）
//
// # 错误分类
//
// BadKeyError 表示输入内容无效（密钥、DER、PEM、keystore JSON、口令），
// 永远直接返回给调用方，不重试。
// CryptoError 表示密码学原语参数不合适，视为环境或调用错误。
// UnsupportedOperationError 表示对某个密钥变体请求了无意义的操作。
package types
