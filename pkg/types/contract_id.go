package types

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// ContractID 合约 ID
//
// 两种形式二选一：
//   - shard.realm.num 数字形式
//   - shard.realm.<20 字节 EVM 地址>
type ContractID struct {
	Shard uint64
	Realm uint64
	Num   uint64

	// EvmAddress 非空时取代 Num
	EvmAddress []byte
}

// ContractIDFromString 解析 "shard.realm.num" 或 "shard.realm.<evm hex>"
func ContractIDFromString(s string) (ContractID, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return ContractID{}, fmt.Errorf("%w: contract id %q must have 3 parts", ErrInvalidParameter, s)
	}

	shard, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return ContractID{}, fmt.Errorf("%w: shard: %v", ErrInvalidParameter, err)
	}
	realm, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return ContractID{}, fmt.Errorf("%w: realm: %v", ErrInvalidParameter, err)
	}

	last := strings.TrimPrefix(parts[2], "0x")
	if len(last) == 40 {
		addr, err := hex.DecodeString(last)
		if err != nil {
			return ContractID{}, fmt.Errorf("%w: evm address: %v", ErrInvalidHex, err)
		}
		return ContractID{Shard: shard, Realm: realm, EvmAddress: addr}, nil
	}

	num, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return ContractID{}, fmt.Errorf("%w: num: %v", ErrInvalidParameter, err)
	}
	return ContractID{Shard: shard, Realm: realm, Num: num}, nil
}

// String 返回 shard.realm.num 或 shard.realm.<evm hex>
func (c ContractID) String() string {
	if len(c.EvmAddress) > 0 {
		return fmt.Sprintf("%d.%d.%s", c.Shard, c.Realm, hex.EncodeToString(c.EvmAddress))
	}
	return fmt.Sprintf("%d.%d.%d", c.Shard, c.Realm, c.Num)
}

// Equal 比较两个合约 ID
func (c ContractID) Equal(other ContractID) bool {
	if c.Shard != other.Shard || c.Realm != other.Realm {
		return false
	}
	if len(c.EvmAddress) > 0 || len(other.EvmAddress) > 0 {
		return string(c.EvmAddress) == string(other.EvmAddress)
	}
	return c.Num == other.Num
}
