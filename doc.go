// Package hederakeys 提供账本网络的公钥模型与私钥静态保护
//
// # 核心概念
//
//   - Key: wire oneof 的 Go 表示（Ed25519 / ECDSA secp256k1 公钥、EVM 地址、
//     KeyList / ThresholdKey、合约 ID）
//   - PublicKey: 可验证签名、导出 DER、派生 EVM 地址的公钥
//   - Keystore / PEM: 口令加密的私钥文件编解码
//
// # 快速开始
//
//	import hederakeys "github.com/xyclone-designs/go-hedera-keys"
//
//	pub, err := hederakeys.PublicKeyFromString("302d300706052b8104000a032200...")
//	if err != nil {
//	    return err
//	}
//	addr, err := pub.ToEvmAddress()
//
//	// 门限密钥：三者中任意两个签名即可
//	threshold := hederakeys.NewThresholdKey(2, a, b, c)
//	data := threshold.ToBytes()
//
// # 依赖注入
//
// Module() 提供配置与编解码器，供 fx 应用装配：
//
//	app := fx.New(
//	    hederakeys.Module(),
//	    fx.Invoke(func(ks *keystore.Codec) { ... }),
//	)
//
// # 文件组织
//
//	pkg/lib/crypto      - 对称加密、KDF、MAC、ECDSA 公钥恢复
//	pkg/lib/proto/key   - Key / SignatureMap 等 wire 消息编解码
//	pkg/keys            - 密钥模型
//	pkg/transaction     - 已签名交易容器
//	pkg/keystore        - JSON keystore
//	pkg/keypem          - PEM / PKCS#8
//	config              - 配置
package hederakeys
