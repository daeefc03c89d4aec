// Package transaction 提供最小的已签名交易容器
//
// 每个交易体（对应一个目标节点）携带独立的签名映射；
// 本包不构造交易体，只负责签名收集、序列化与验签输入。
package transaction

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/xyclone-designs/go-hedera-keys/pkg/keys"
	"github.com/xyclone-designs/go-hedera-keys/pkg/lib/log"
	pbkey "github.com/xyclone-designs/go-hedera-keys/pkg/lib/proto/key"
	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

var logger = log.Logger("transaction")

// ErrMultipleBodies 多个交易体时无法附加单个外部签名
var ErrMultipleBodies = errors.New("signature can only be added to a transaction with exactly one body")

// Signer 对交易体签名
type Signer func(body []byte) ([]byte, error)

// ============================================================================
//                              Transaction 定义
// ============================================================================

// Transaction 已签名交易
type Transaction struct {
	mu     sync.RWMutex
	signed []*pbkey.SignedTransaction
}

var _ keys.Transaction = (*Transaction)(nil)

// New 以交易体创建交易，每个交易体对应一个空签名映射
func New(bodies ...[]byte) *Transaction {
	t := &Transaction{signed: make([]*pbkey.SignedTransaction, 0, len(bodies))}
	for _, b := range bodies {
		t.signed = append(t.signed, &pbkey.SignedTransaction{
			BodyBytes: append([]byte{}, b...),
			SigMap:    &pbkey.SignatureMap{},
		})
	}
	return t
}

// SignedTransactions 实现 keys.Transaction
//
// 返回的消息不会再被修改，签名时整体替换为新消息。
func (t *Transaction) SignedTransactions() []*pbkey.SignedTransaction {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]*pbkey.SignedTransaction(nil), t.signed...)
}

// Len 返回交易体个数
func (t *Transaction) Len() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.signed)
}

// BodyBytes 返回下标 i 处的交易体
func (t *Transaction) BodyBytes(i int) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i < 0 || i >= len(t.signed) {
		return nil, fmt.Errorf("%w: index %d out of range [0, %d)", types.ErrInvalidParameter, i, len(t.signed))
	}
	return append([]byte{}, t.signed[i].BodyBytes...), nil
}

// ============================================================================
//                              签名
// ============================================================================

// AddSignature 附加外部产生的签名
//
// 仅在只有一个交易体时可用；同一公钥已签名时忽略。
func (t *Transaction) AddSignature(pub keys.PublicKey, signature []byte) error {
	if pub == nil {
		return fmt.Errorf("%w: nil public key", types.ErrInvalidParameter)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.signed) != 1 {
		return ErrMultipleBodies
	}
	t.addPair(0, pub, signature)
	return nil
}

// SignWith 使用 sign 对每个交易体签名
func (t *Transaction) SignWith(pub keys.PublicKey, sign Signer) error {
	if pub == nil || sign == nil {
		return fmt.Errorf("%w: nil public key or signer", types.ErrInvalidParameter)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for i, st := range t.signed {
		sig, err := sign(st.BodyBytes)
		if err != nil {
			return fmt.Errorf("sign body %d: %w", i, err)
		}
		t.addPair(i, pub, sig)
	}
	return nil
}

// IsSignedBy 每个交易体是否都带有 pub 的签名对（不验证签名）
func (t *Transaction) IsSignedBy(pub keys.PublicKey) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.signed) == 0 {
		return false
	}
	for _, st := range t.signed {
		if findPair(st, pub.ToBytesRaw()) == nil {
			return false
		}
	}
	return true
}

// addPair 以写时复制方式追加签名对，调用方须持有写锁
func (t *Transaction) addPair(i int, pub keys.PublicKey, signature []byte) {
	st := t.signed[i]
	if findPair(st, pub.ToBytesRaw()) != nil {
		logger.Debug("公钥已签名，跳过", "key", pub.ToStringRaw())
		return
	}

	var pairs []*pbkey.SignaturePair
	if st.SigMap != nil {
		pairs = make([]*pbkey.SignaturePair, 0, len(st.SigMap.SigPair)+1)
		pairs = append(pairs, st.SigMap.SigPair...)
	}
	t.signed[i] = &pbkey.SignedTransaction{
		BodyBytes: st.BodyBytes,
		SigMap:    &pbkey.SignatureMap{SigPair: append(pairs, pub.ToSignaturePair(signature))},
	}
}

func findPair(st *pbkey.SignedTransaction, prefix []byte) *pbkey.SignaturePair {
	if st == nil || st.SigMap == nil {
		return nil
	}
	for _, p := range st.SigMap.SigPair {
		if p != nil && bytes.Equal(p.PubKeyPrefix, prefix) {
			return p
		}
	}
	return nil
}

// ============================================================================
//                              序列化
// ============================================================================

// ToBytes 编码为 TransactionList
func (t *Transaction) ToBytes() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()

	list := &pbkey.TransactionList{TransactionList: make([]*pbkey.Transaction, 0, len(t.signed))}
	for _, st := range t.signed {
		list.TransactionList = append(list.TransactionList, &pbkey.Transaction{
			SignedTransactionBytes: st.Marshal(),
		})
	}
	return list.Marshal()
}

// FromBytes 从 TransactionList 解码
func FromBytes(data []byte) (*Transaction, error) {
	var list pbkey.TransactionList
	if err := list.Unmarshal(data); err != nil {
		return nil, fmt.Errorf("%w: transaction list: %w", types.ErrInvalidWire, err)
	}
	if len(list.TransactionList) == 0 {
		return nil, fmt.Errorf("%w: empty transaction list", types.ErrInvalidWire)
	}

	t := &Transaction{signed: make([]*pbkey.SignedTransaction, 0, len(list.TransactionList))}
	for i, tx := range list.TransactionList {
		st := &pbkey.SignedTransaction{}
		if err := st.Unmarshal(tx.SignedTransactionBytes); err != nil {
			return nil, fmt.Errorf("%w: signed transaction %d: %w", types.ErrInvalidWire, i, err)
		}
		if st.SigMap == nil {
			st.SigMap = &pbkey.SignatureMap{}
		}
		t.signed = append(t.signed, st)
	}
	return t, nil
}
