package keys

import (
	"fmt"
	"strings"

	pbkey "github.com/xyclone-designs/go-hedera-keys/pkg/lib/proto/key"
	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

// KeyList 有序密钥列表
//
// 设置 Threshold 时编码为 ThresholdKey（M-of-N），否则编码为 KeyList（全部签名）。
// 保留插入顺序，允许重复；不在本地校验 1 <= threshold <= Len()，由网络端判定。
type KeyList struct {
	keys      []Key
	threshold *uint32
}

var _ Key = (*KeyList)(nil)

// NewKeyList 创建不带门限的列表
func NewKeyList(keys ...Key) *KeyList {
	return new(KeyList).Add(keys...)
}

// NewThresholdKey 创建带门限的列表
func NewThresholdKey(threshold uint32, keys ...Key) *KeyList {
	return NewKeyList(keys...).SetThreshold(threshold)
}

// Add 追加密钥，nil 元素被跳过
func (l *KeyList) Add(keys ...Key) *KeyList {
	for _, k := range keys {
		if isNilKey(k) {
			continue
		}
		l.keys = append(l.keys, k)
	}
	return l
}

// Remove 删除第一个与 k 相等的元素
func (l *KeyList) Remove(k Key) bool {
	for i, existing := range l.keys {
		if KeysEqual(existing, k) {
			l.keys = append(l.keys[:i], l.keys[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAt 删除下标 i 处的元素
func (l *KeyList) RemoveAt(i int) (Key, error) {
	if i < 0 || i >= len(l.keys) {
		return nil, fmt.Errorf("%w: index %d out of range [0, %d)", types.ErrInvalidParameter, i, len(l.keys))
	}
	k := l.keys[i]
	l.keys = append(l.keys[:i], l.keys[i+1:]...)
	return k, nil
}

// Contains 是否包含与 k 相等的元素
func (l *KeyList) Contains(k Key) bool {
	for _, existing := range l.keys {
		if KeysEqual(existing, k) {
			return true
		}
	}
	return false
}

// Clear 清空元素，门限保持不变
func (l *KeyList) Clear() *KeyList {
	l.keys = nil
	return l
}

// Get 返回下标 i 处的元素，越界返回 nil
func (l *KeyList) Get(i int) Key {
	if l == nil || i < 0 || i >= len(l.keys) {
		return nil
	}
	return l.keys[i]
}

// Len 返回元素个数
func (l *KeyList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.keys)
}

// Keys 返回元素副本
func (l *KeyList) Keys() []Key {
	if l == nil {
		return nil
	}
	return append([]Key(nil), l.keys...)
}

// Threshold 返回门限与是否设置
func (l *KeyList) Threshold() (uint32, bool) {
	if l == nil || l.threshold == nil {
		return 0, false
	}
	return *l.threshold, true
}

// SetThreshold 设置门限
func (l *KeyList) SetThreshold(threshold uint32) *KeyList {
	l.threshold = &threshold
	return l
}

// ClearThreshold 清除门限
func (l *KeyList) ClearThreshold() *KeyList {
	l.threshold = nil
	return l
}

// ToWire 实现 Key
func (l *KeyList) ToWire() *pbkey.Key {
	list := &pbkey.KeyList{}
	if l == nil {
		return &pbkey.Key{KeyList: list}
	}
	for _, k := range l.keys {
		list.Keys = append(list.Keys, k.ToWire())
	}
	if l.threshold != nil {
		return &pbkey.Key{ThresholdKey: &pbkey.ThresholdKey{Threshold: *l.threshold, Keys: list}}
	}
	return &pbkey.Key{KeyList: list}
}

// ToBytes 实现 Key
func (l *KeyList) ToBytes() []byte {
	return l.ToWire().Marshal()
}

// Equal 实现 Key
func (l *KeyList) Equal(other Key) bool {
	return KeysEqual(l, other)
}

// String 返回可读形式
func (l *KeyList) String() string {
	parts := make([]string, 0, l.Len())
	for _, k := range l.Keys() {
		parts = append(parts, k.String())
	}
	if t, ok := l.Threshold(); ok {
		return fmt.Sprintf("KeyList{threshold=%d, keys=[%s]}", t, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("KeyList{keys=[%s]}", strings.Join(parts, ", "))
}

// keyListFromWire 递归解码嵌套列表
func keyListFromWire(w *pbkey.KeyList, threshold *uint32) (*KeyList, error) {
	l := &KeyList{threshold: threshold}
	if w == nil {
		return l, nil
	}
	for i, kw := range w.Keys {
		k, err := FromWire(kw)
		if err != nil {
			return nil, err
		}
		if k == nil {
			return nil, types.NewBadKeyError("FromWire", types.ErrUnsetKey,
				fmt.Sprintf("key list element %d is not set", i))
		}
		l.keys = append(l.keys, k)
	}
	return l, nil
}
