package key

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// 字段号：
//
//	SignaturePair     { pubKeyPrefix=1 contract=2 ed25519=3 RSA_3072=4 ECDSA_384=5 ECDSA_secp256k1=6 }
//	SignatureMap      { sigPair=1 }
//	SignedTransaction { bodyBytes=1 sigMap=2 }
//	Transaction       { signedTransactionBytes=5 }
//	TransactionList   { transaction_list=1 }

// ============================================================================
//                              SignaturePair
// ============================================================================

// SignaturePair 公钥前缀与签名
//
// 签名字段构成 oneof，同一时刻最多一个非 nil。
type SignaturePair struct {
	PubKeyPrefix   []byte
	Contract       []byte
	Ed25519        []byte
	RSA3072        []byte
	ECDSA384       []byte
	ECDSASecp256k1 []byte
}

// Marshal 序列化 SignaturePair
func (p *SignaturePair) Marshal() []byte {
	var b []byte
	if p == nil {
		return b
	}
	if len(p.PubKeyPrefix) > 0 {
		b = appendBytes(b, 1, p.PubKeyPrefix)
	}
	switch {
	case p.Contract != nil:
		b = appendBytes(b, 2, p.Contract)
	case p.Ed25519 != nil:
		b = appendBytes(b, 3, p.Ed25519)
	case p.RSA3072 != nil:
		b = appendBytes(b, 4, p.RSA3072)
	case p.ECDSA384 != nil:
		b = appendBytes(b, 5, p.ECDSA384)
	case p.ECDSASecp256k1 != nil:
		b = appendBytes(b, 6, p.ECDSASecp256k1)
	}
	return b
}

// Unmarshal 反序列化 SignaturePair
func (p *SignaturePair) Unmarshal(data []byte) error {
	*p = SignaturePair{}
	return forEachField(data, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		if num < 1 || num > 6 {
			return nil
		}
		if typ != protowire.BytesType {
			return fmt.Errorf("%w: SignaturePair field %d has wire type %d", ErrInvalidMessage, num, typ)
		}
		if num == 1 {
			p.PubKeyPrefix = cloneBytes(v)
			return nil
		}
		prefix := p.PubKeyPrefix
		*p = SignaturePair{PubKeyPrefix: prefix}
		switch num {
		case 2:
			p.Contract = cloneBytes(v)
		case 3:
			p.Ed25519 = cloneBytes(v)
		case 4:
			p.RSA3072 = cloneBytes(v)
		case 5:
			p.ECDSA384 = cloneBytes(v)
		case 6:
			p.ECDSASecp256k1 = cloneBytes(v)
		}
		return nil
	})
}

// ============================================================================
//                              SignatureMap
// ============================================================================

// SignatureMap 签名集合
type SignatureMap struct {
	SigPair []*SignaturePair
}

// Marshal 序列化 SignatureMap
func (m *SignatureMap) Marshal() []byte {
	var b []byte
	if m == nil {
		return b
	}
	for _, p := range m.SigPair {
		b = appendMessage(b, 1, p.Marshal())
	}
	return b
}

// Unmarshal 反序列化 SignatureMap
func (m *SignatureMap) Unmarshal(data []byte) error {
	m.SigPair = nil
	return forEachField(data, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		if num != 1 {
			return nil
		}
		if typ != protowire.BytesType {
			return fmt.Errorf("%w: SignatureMap.sigPair has wire type %d", ErrInvalidMessage, typ)
		}
		p := new(SignaturePair)
		if err := p.Unmarshal(v); err != nil {
			return err
		}
		m.SigPair = append(m.SigPair, p)
		return nil
	})
}

// ============================================================================
//                              交易容器
// ============================================================================

// SignedTransaction 交易体字节与签名
type SignedTransaction struct {
	BodyBytes []byte
	SigMap    *SignatureMap
}

// Marshal 序列化 SignedTransaction
func (s *SignedTransaction) Marshal() []byte {
	var b []byte
	if s == nil {
		return b
	}
	if len(s.BodyBytes) > 0 {
		b = appendBytes(b, 1, s.BodyBytes)
	}
	if s.SigMap != nil {
		b = appendMessage(b, 2, s.SigMap.Marshal())
	}
	return b
}

// Unmarshal 反序列化 SignedTransaction
func (s *SignedTransaction) Unmarshal(data []byte) error {
	*s = SignedTransaction{}
	return forEachField(data, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		switch num {
		case 1:
			if typ != protowire.BytesType {
				return fmt.Errorf("%w: SignedTransaction.bodyBytes has wire type %d", ErrInvalidMessage, typ)
			}
			s.BodyBytes = cloneBytes(v)
		case 2:
			if typ != protowire.BytesType {
				return fmt.Errorf("%w: SignedTransaction.sigMap has wire type %d", ErrInvalidMessage, typ)
			}
			m := new(SignatureMap)
			if err := m.Unmarshal(v); err != nil {
				return err
			}
			s.SigMap = m
		}
		return nil
	})
}

// Transaction 外层交易消息，只使用 signedTransactionBytes
type Transaction struct {
	SignedTransactionBytes []byte
}

// Marshal 序列化 Transaction
func (t *Transaction) Marshal() []byte {
	var b []byte
	if t == nil || len(t.SignedTransactionBytes) == 0 {
		return b
	}
	return appendBytes(b, 5, t.SignedTransactionBytes)
}

// Unmarshal 反序列化 Transaction
func (t *Transaction) Unmarshal(data []byte) error {
	*t = Transaction{}
	return forEachField(data, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		if num != 5 {
			return nil
		}
		if typ != protowire.BytesType {
			return fmt.Errorf("%w: Transaction.signedTransactionBytes has wire type %d", ErrInvalidMessage, typ)
		}
		t.SignedTransactionBytes = cloneBytes(v)
		return nil
	})
}

// TransactionList 多节点交易列表
type TransactionList struct {
	TransactionList []*Transaction
}

// Marshal 序列化 TransactionList
func (l *TransactionList) Marshal() []byte {
	var b []byte
	if l == nil {
		return b
	}
	for _, t := range l.TransactionList {
		b = appendMessage(b, 1, t.Marshal())
	}
	return b
}

// Unmarshal 反序列化 TransactionList
func (l *TransactionList) Unmarshal(data []byte) error {
	l.TransactionList = nil
	return forEachField(data, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		if num != 1 {
			return nil
		}
		if typ != protowire.BytesType {
			return fmt.Errorf("%w: TransactionList.transaction_list has wire type %d", ErrInvalidMessage, typ)
		}
		t := new(Transaction)
		if err := t.Unmarshal(v); err != nil {
			return err
		}
		l.TransactionList = append(l.TransactionList, t)
		return nil
	})
}
