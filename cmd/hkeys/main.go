// Package main 提供 hkeys 命令行入口
//
// 用法：
//
//	hkeys <command> [flags]
//
// 命令：
//
//	evm-address       由 ECDSA 公钥派生 EVM 地址
//	der               输出公钥的 DER 编码
//	keystore-encrypt  以口令加密私钥为 JSON keystore
//	keystore-decrypt  解密 JSON keystore
//	pem-encrypt       以口令加密 PKCS#8 为 PEM
//	pem-read          读取 PEM 私钥
//	version           显示版本信息
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"

	hederakeys "github.com/xyclone-designs/go-hedera-keys"
	"github.com/xyclone-designs/go-hedera-keys/config"
	"github.com/xyclone-designs/go-hedera-keys/pkg/keypem"
	"github.com/xyclone-designs/go-hedera-keys/pkg/keys"
	"github.com/xyclone-designs/go-hedera-keys/pkg/keystore"
	"github.com/xyclone-designs/go-hedera-keys/pkg/lib/log"
)

var logger = log.Logger("hkeys/cmd")

var errUsage = errors.New("usage: hkeys <evm-address|der|keystore-encrypt|keystore-decrypt|pem-encrypt|pem-read|version> [flags]")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 命令分派
// ═══════════════════════════════════════════════════════════════════════════

type command func(args []string, out io.Writer) error

var commands = map[string]command{
	"evm-address":      cmdEvmAddress,
	"der":              cmdDER,
	"keystore-encrypt": cmdKeystoreEncrypt,
	"keystore-decrypt": cmdKeystoreDecrypt,
	"pem-encrypt":      cmdPEMEncrypt,
	"pem-read":         cmdPEMRead,
	"version":          cmdVersion,
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
	return cmd(args[1:], out)
}

// ═══════════════════════════════════════════════════════════════════════════
// 公钥命令
// ═══════════════════════════════════════════════════════════════════════════

func cmdEvmAddress(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("evm-address", flag.ContinueOnError)
	key := fs.String("key", "", "ECDSA 公钥（十六进制，原始或 DER）")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pub, err := hederakeys.PublicKeyFromString(*key)
	if err != nil {
		return err
	}
	addr, err := pub.ToEvmAddress()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, addr.String())
	fmt.Fprintln(out, addr.ChecksumHex())
	return nil
}

func cmdDER(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("der", flag.ContinueOnError)
	key := fs.String("key", "", "公钥（十六进制，原始或 DER）")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pub, err := hederakeys.PublicKeyFromString(*key)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, pub.ToStringDER())
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Keystore 命令
// ═══════════════════════════════════════════════════════════════════════════

func cmdKeystoreEncrypt(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("keystore-encrypt", flag.ContinueOnError)
	key := fs.String("key", "", "私钥（十六进制）")
	pass := fs.String("pass", "", "口令")
	cfgFile := fs.String("config", "", "配置文件路径")
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, err := hex.DecodeString(*key)
	if err != nil {
		return fmt.Errorf("invalid private key hex: %w", err)
	}
	ks, _, err := codecs(*cfgFile)
	if err != nil {
		return err
	}
	data, err := ks.Encrypt(raw, *pass)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func cmdKeystoreDecrypt(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("keystore-decrypt", flag.ContinueOnError)
	in := fs.String("in", "", "keystore 文件路径")
	pass := fs.String("pass", "", "口令")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	ks, err := keystore.Decrypt(data, *pass)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "version: %d\n", ks.Version())
	fmt.Fprintln(out, hex.EncodeToString(ks.Bytes()))
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// PEM 命令
// ═══════════════════════════════════════════════════════════════════════════

func cmdPEMEncrypt(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("pem-encrypt", flag.ContinueOnError)
	pki := fs.String("pkcs8", "", "PKCS#8 PrivateKeyInfo（十六进制 DER）")
	seed := fs.String("ed25519", "", "Ed25519 种子（十六进制），与 -pkcs8 二选一")
	pass := fs.String("pass", "", "口令")
	cfgFile := fs.String("config", "", "配置文件路径")
	if err := fs.Parse(args); err != nil {
		return err
	}

	der, err := pkcs8Input(*pki, *seed)
	if err != nil {
		return err
	}
	_, pc, err := codecs(*cfgFile)
	if err != nil {
		return err
	}
	text, err := pc.WriteEncryptedPrivateKey(der, *pass)
	if err != nil {
		return err
	}
	fmt.Fprint(out, text)
	return nil
}

func cmdPEMRead(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("pem-read", flag.ContinueOnError)
	in := fs.String("in", "", "PEM 文件路径")
	pass := fs.String("pass", "", "口令（加密 PEM 必需）")
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	der, err := keypem.ReadPrivateKey(string(text), *pass)
	if err != nil {
		return err
	}
	info, err := keypem.ParsePrivateKeyInfo(der)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "algorithm: %s\n", info.Algorithm)
	if info.Curve != nil {
		fmt.Fprintf(out, "curve: %s\n", info.Curve)
	}
	fmt.Fprintf(out, "pkcs8: %s\n", hex.EncodeToString(der))
	fmt.Fprintf(out, "key: %s\n", hex.EncodeToString(info.PrivateKey))
	return nil
}

func pkcs8Input(pki, seed string) ([]byte, error) {
	switch {
	case pki != "" && seed != "":
		return nil, errors.New("-pkcs8 and -ed25519 are mutually exclusive")
	case pki != "":
		return hex.DecodeString(pki)
	case seed != "":
		raw, err := hex.DecodeString(seed)
		if err != nil {
			return nil, err
		}
		return keypem.MarshalPrivateKeyInfo(&keypem.PrivateKeyInfo{
			Algorithm:  keys.OIDEd25519,
			PrivateKey: raw,
		})
	default:
		return nil, errors.New("one of -pkcs8 or -ed25519 is required")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 其他
// ═══════════════════════════════════════════════════════════════════════════

func cmdVersion(_ []string, out io.Writer) error {
	fmt.Fprintln(out, hederakeys.VersionInfo())
	return nil
}

// codecs 通过 fx 模块装配编解码器
func codecs(cfgFile string) (*keystore.Codec, *keypem.Codec, error) {
	cfg := config.NewConfig()
	if cfgFile != "" {
		data, err := os.ReadFile(cfgFile)
		if err != nil {
			return nil, nil, err
		}
		if cfg, err = config.FromJSON(data); err != nil {
			return nil, nil, err
		}
	}

	var (
		ks *keystore.Codec
		pc *keypem.Codec
	)
	app := hederakeys.NewApp(cfg, fx.Populate(&ks, &pc))
	if err := app.Err(); err != nil {
		return nil, nil, err
	}
	logger.Debug("编解码器已装配", "keystoreIterations", cfg.Keystore.Iterations)
	return ks, pc, nil
}
