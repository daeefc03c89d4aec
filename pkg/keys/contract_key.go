package keys

import (
	pbkey "github.com/xyclone-designs/go-hedera-keys/pkg/lib/proto/key"
	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

// ContractIDKey 合约 ID 作为密钥
type ContractIDKey struct {
	id types.ContractID
}

// DelegateContractIDKey 可委托调用的合约 ID 作为密钥
type DelegateContractIDKey struct {
	id types.ContractID
}

var (
	_ Key = ContractIDKey{}
	_ Key = DelegateContractIDKey{}
)

// NewContractIDKey 创建合约密钥
func NewContractIDKey(id types.ContractID) ContractIDKey {
	return ContractIDKey{id: cloneContractID(id)}
}

// NewDelegateContractIDKey 创建可委托合约密钥
func NewDelegateContractIDKey(id types.ContractID) DelegateContractIDKey {
	return DelegateContractIDKey{id: cloneContractID(id)}
}

// ContractID 返回合约 ID
func (k ContractIDKey) ContractID() types.ContractID { return cloneContractID(k.id) }

// ToWire 实现 Key
func (k ContractIDKey) ToWire() *pbkey.Key {
	return &pbkey.Key{ContractID: contractIDToWire(k.id)}
}

// ToBytes 实现 Key
func (k ContractIDKey) ToBytes() []byte { return k.ToWire().Marshal() }

// Equal 实现 Key
func (k ContractIDKey) Equal(other Key) bool { return KeysEqual(k, other) }

// String 返回 shard.realm.num
func (k ContractIDKey) String() string { return k.id.String() }

// ContractID 返回合约 ID
func (k DelegateContractIDKey) ContractID() types.ContractID { return cloneContractID(k.id) }

// ToWire 实现 Key
func (k DelegateContractIDKey) ToWire() *pbkey.Key {
	return &pbkey.Key{DelegatableContractID: contractIDToWire(k.id)}
}

// ToBytes 实现 Key
func (k DelegateContractIDKey) ToBytes() []byte { return k.ToWire().Marshal() }

// Equal 实现 Key
func (k DelegateContractIDKey) Equal(other Key) bool { return KeysEqual(k, other) }

// String 返回 shard.realm.num
func (k DelegateContractIDKey) String() string { return k.id.String() }

func contractIDToWire(id types.ContractID) *pbkey.ContractID {
	w := &pbkey.ContractID{
		ShardNum: int64(id.Shard),
		RealmNum: int64(id.Realm),
	}
	if len(id.EvmAddress) > 0 {
		w.EvmAddress = append([]byte{}, id.EvmAddress...)
	} else {
		w.ContractNum = int64(id.Num)
	}
	return w
}

func contractIDFromWire(w *pbkey.ContractID) types.ContractID {
	id := types.ContractID{
		Shard: uint64(w.ShardNum),
		Realm: uint64(w.RealmNum),
		Num:   uint64(w.ContractNum),
	}
	if len(w.EvmAddress) > 0 {
		id.EvmAddress = append([]byte(nil), w.EvmAddress...)
		id.Num = 0
	}
	return id
}

func cloneContractID(id types.ContractID) types.ContractID {
	if id.EvmAddress != nil {
		id.EvmAddress = append([]byte(nil), id.EvmAddress...)
	}
	return id
}
