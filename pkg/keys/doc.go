// Package keys 实现网络接受的全部密钥形态
//
// # 密钥变体
//
//   - Ed25519PublicKey：32 字节 Ed25519 公钥
//   - ECDSAPublicKey：secp256k1 公钥，内部统一为 33 字节压缩形式
//   - EvmAddress：20 字节 EVM 地址（wire 上占用 ECDSA_secp256k1 字段）
//   - KeyList：有序密钥列表，可选门限（设置门限时编码为 ThresholdKey）
//   - ContractIDKey / DelegateContractIDKey：合约 ID 作为密钥
//
// 所有变体都实现 Key 接口；Ed25519PublicKey 与 ECDSAPublicKey 同时实现 PublicKey。
//
// # 编码
//
//	Key.ToWire / FromWire        wire oneof 互转
//	Key.ToBytes / KeyFromBytes   protobuf 字节互转
//	PublicKey.ToBytesRaw         原始字节（32 / 33）
//	PublicKey.ToBytesDER         DER SubjectPublicKeyInfo
//	PublicKeyFromBytes           按长度与 DER OID 自动识别
//
// # 快速开始
//
//	pub, err := keys.PublicKeyFromString("302a300506032b6570032100...")
//	ok := pub.Verify(message, signature)
//
//	list := keys.NewThresholdKey(2, a, b, c)
//	data := list.ToBytes()
//
// # 哨兵密钥
//
// 全零的 32 字节 Ed25519 公钥与全零的 33 字节 ECDSA 公钥是网络约定的
// "不可用密钥"，构造时不做曲线校验。
package keys
