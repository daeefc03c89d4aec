// Package proto 定义密钥子系统读写的网络协议消息（wire format）
//
// # 子包
//
//   - key: Key oneof、KeyList、ThresholdKey、ContractID、签名映射与已签名交易
//
// # 职能
//
// 网络的 protobuf schema 是外部契约，这里只手写编解码本模块需要的消息子集，
// 字段号与官方 schema 一致，未知字段在解码时跳过。
// key 包的测试以 descriptorpb 描述同一 schema，经 dynamicpb 与 proto.Marshal 对照编码。
//
// # 与 pkg/types 的区别
//
// pkg/proto 定义 wire 结构，pkg/keys 把它们转换为 Go 内部的密钥类型。
//
// # 使用示例
//
//	import "github.com/xyclone-designs/go-hedera-keys/pkg/lib/proto/key"
//
//	msg := &key.Key{ECDSASecp256k1: compressed}
//	data := msg.Marshal()
package proto
