// Package key 包含网络 Key 相关消息的 protobuf 编解码
//
// 手写实现，基于 google.golang.org/protobuf/encoding/protowire。
// 字段号：
//
//	Key          { contractID=1 ed25519=2 RSA_3072=3 ECDSA_384=4 thresholdKey=5
//	               keyList=6 ECDSA_secp256k1=7 delegatable_contract_id=8 }  // oneof
//	KeyList      { keys=1 }
//	ThresholdKey { threshold=1 keys=2 }
//	ContractID   { shardNum=1 realmNum=2 contractNum=3 | evm_address=4 }
package key

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrInvalidMessage 表示无效的 wire 数据
var ErrInvalidMessage = errors.New("invalid key message data")

// KeyCase 表示 Key oneof 中当前设置的分支
type KeyCase int

// Key oneof 分支，数值与字段号一致
const (
	KeyCaseNotSet                KeyCase = 0
	KeyCaseContractID            KeyCase = 1
	KeyCaseEd25519               KeyCase = 2
	KeyCaseRSA3072               KeyCase = 3
	KeyCaseECDSA384              KeyCase = 4
	KeyCaseThresholdKey          KeyCase = 5
	KeyCaseKeyList               KeyCase = 6
	KeyCaseECDSASecp256k1        KeyCase = 7
	KeyCaseDelegatableContractID KeyCase = 8
)

// String 返回分支名称
func (c KeyCase) String() string {
	switch c {
	case KeyCaseNotSet:
		return "not set"
	case KeyCaseContractID:
		return "contractID"
	case KeyCaseEd25519:
		return "ed25519"
	case KeyCaseRSA3072:
		return "RSA_3072"
	case KeyCaseECDSA384:
		return "ECDSA_384"
	case KeyCaseThresholdKey:
		return "thresholdKey"
	case KeyCaseKeyList:
		return "keyList"
	case KeyCaseECDSASecp256k1:
		return "ECDSA_secp256k1"
	case KeyCaseDelegatableContractID:
		return "delegatable_contract_id"
	default:
		return fmt.Sprintf("KeyCase(%d)", int(c))
	}
}

// ============================================================================
//                              Key
// ============================================================================

// Key 网络 Key 消息
//
// 同一时刻最多一个字段非 nil；字节字段以非 nil 表示已设置（允许长度为 0）。
type Key struct {
	ContractID            *ContractID
	Ed25519               []byte
	RSA3072               []byte
	ECDSA384              []byte
	ThresholdKey          *ThresholdKey
	KeyList               *KeyList
	ECDSASecp256k1        []byte
	DelegatableContractID *ContractID
}

// Case 返回当前设置的 oneof 分支
func (k *Key) Case() KeyCase {
	switch {
	case k == nil:
		return KeyCaseNotSet
	case k.ContractID != nil:
		return KeyCaseContractID
	case k.Ed25519 != nil:
		return KeyCaseEd25519
	case k.RSA3072 != nil:
		return KeyCaseRSA3072
	case k.ECDSA384 != nil:
		return KeyCaseECDSA384
	case k.ThresholdKey != nil:
		return KeyCaseThresholdKey
	case k.KeyList != nil:
		return KeyCaseKeyList
	case k.ECDSASecp256k1 != nil:
		return KeyCaseECDSASecp256k1
	case k.DelegatableContractID != nil:
		return KeyCaseDelegatableContractID
	default:
		return KeyCaseNotSet
	}
}

// Marshal 序列化 Key
func (k *Key) Marshal() []byte {
	var b []byte
	if k == nil {
		return b
	}
	switch k.Case() {
	case KeyCaseContractID:
		b = appendMessage(b, 1, k.ContractID.Marshal())
	case KeyCaseEd25519:
		b = appendBytes(b, 2, k.Ed25519)
	case KeyCaseRSA3072:
		b = appendBytes(b, 3, k.RSA3072)
	case KeyCaseECDSA384:
		b = appendBytes(b, 4, k.ECDSA384)
	case KeyCaseThresholdKey:
		b = appendMessage(b, 5, k.ThresholdKey.Marshal())
	case KeyCaseKeyList:
		b = appendMessage(b, 6, k.KeyList.Marshal())
	case KeyCaseECDSASecp256k1:
		b = appendBytes(b, 7, k.ECDSASecp256k1)
	case KeyCaseDelegatableContractID:
		b = appendMessage(b, 8, k.DelegatableContractID.Marshal())
	}
	return b
}

// Unmarshal 反序列化 Key
//
// oneof 语义：后出现的分支覆盖先出现的分支。
func (k *Key) Unmarshal(data []byte) error {
	*k = Key{}
	return forEachField(data, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		if num >= 1 && num <= 8 && typ != protowire.BytesType {
			return fmt.Errorf("%w: Key field %d has wire type %d", ErrInvalidMessage, num, typ)
		}
		switch num {
		case 1:
			id := new(ContractID)
			if err := id.Unmarshal(v); err != nil {
				return err
			}
			*k = Key{ContractID: id}
		case 2:
			*k = Key{Ed25519: cloneBytes(v)}
		case 3:
			*k = Key{RSA3072: cloneBytes(v)}
		case 4:
			*k = Key{ECDSA384: cloneBytes(v)}
		case 5:
			tk := new(ThresholdKey)
			if err := tk.Unmarshal(v); err != nil {
				return err
			}
			*k = Key{ThresholdKey: tk}
		case 6:
			kl := new(KeyList)
			if err := kl.Unmarshal(v); err != nil {
				return err
			}
			*k = Key{KeyList: kl}
		case 7:
			*k = Key{ECDSASecp256k1: cloneBytes(v)}
		case 8:
			id := new(ContractID)
			if err := id.Unmarshal(v); err != nil {
				return err
			}
			*k = Key{DelegatableContractID: id}
		}
		return nil
	})
}

// ============================================================================
//                              KeyList / ThresholdKey
// ============================================================================

// KeyList 有序密钥列表
type KeyList struct {
	Keys []*Key
}

// Marshal 序列化 KeyList
func (l *KeyList) Marshal() []byte {
	var b []byte
	if l == nil {
		return b
	}
	for _, k := range l.Keys {
		b = appendMessage(b, 1, k.Marshal())
	}
	return b
}

// Unmarshal 反序列化 KeyList
func (l *KeyList) Unmarshal(data []byte) error {
	l.Keys = nil
	return forEachField(data, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		if num != 1 {
			return nil
		}
		if typ != protowire.BytesType {
			return fmt.Errorf("%w: KeyList.keys has wire type %d", ErrInvalidMessage, typ)
		}
		k := new(Key)
		if err := k.Unmarshal(v); err != nil {
			return err
		}
		l.Keys = append(l.Keys, k)
		return nil
	})
}

// ThresholdKey M-of-N 门限密钥
type ThresholdKey struct {
	Threshold uint32
	Keys      *KeyList
}

// Marshal 序列化 ThresholdKey
func (t *ThresholdKey) Marshal() []byte {
	var b []byte
	if t == nil {
		return b
	}
	if t.Threshold != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(t.Threshold))
	}
	if t.Keys != nil {
		b = appendMessage(b, 2, t.Keys.Marshal())
	}
	return b
}

// Unmarshal 反序列化 ThresholdKey
func (t *ThresholdKey) Unmarshal(data []byte) error {
	*t = ThresholdKey{}
	return forEachField(data, func(num protowire.Number, typ protowire.Type, v []byte, x uint64) error {
		switch num {
		case 1:
			if typ != protowire.VarintType {
				return fmt.Errorf("%w: ThresholdKey.threshold has wire type %d", ErrInvalidMessage, typ)
			}
			t.Threshold = uint32(x)
		case 2:
			if typ != protowire.BytesType {
				return fmt.Errorf("%w: ThresholdKey.keys has wire type %d", ErrInvalidMessage, typ)
			}
			kl := new(KeyList)
			if err := kl.Unmarshal(v); err != nil {
				return err
			}
			t.Keys = kl
		}
		return nil
	})
}

// ============================================================================
//                              ContractID
// ============================================================================

// ContractID 合约 ID 消息
//
// contractNum 与 evm_address 构成 oneof，EvmAddress 非 nil 时优先。
type ContractID struct {
	ShardNum    int64
	RealmNum    int64
	ContractNum int64
	EvmAddress  []byte
}

// Marshal 序列化 ContractID
func (c *ContractID) Marshal() []byte {
	var b []byte
	if c == nil {
		return b
	}
	b = appendInt64(b, 1, c.ShardNum)
	b = appendInt64(b, 2, c.RealmNum)
	if c.EvmAddress != nil {
		b = appendBytes(b, 4, c.EvmAddress)
	} else {
		b = appendInt64(b, 3, c.ContractNum)
	}
	return b
}

// Unmarshal 反序列化 ContractID
func (c *ContractID) Unmarshal(data []byte) error {
	*c = ContractID{}
	return forEachField(data, func(num protowire.Number, typ protowire.Type, v []byte, x uint64) error {
		switch num {
		case 1, 2, 3:
			if typ != protowire.VarintType {
				return fmt.Errorf("%w: ContractID field %d has wire type %d", ErrInvalidMessage, num, typ)
			}
			switch num {
			case 1:
				c.ShardNum = int64(x)
			case 2:
				c.RealmNum = int64(x)
			case 3:
				c.ContractNum = int64(x)
				c.EvmAddress = nil
			}
		case 4:
			if typ != protowire.BytesType {
				return fmt.Errorf("%w: ContractID.evm_address has wire type %d", ErrInvalidMessage, typ)
			}
			c.EvmAddress = cloneBytes(v)
			c.ContractNum = 0
		}
		return nil
	})
}
