package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pbkey "github.com/xyclone-designs/go-hedera-keys/pkg/lib/proto/key"
	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

func newEd25519(t *testing.T) (Ed25519PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	k, err := Ed25519PublicKeyFromBytes(pub)
	require.NoError(t, err)
	return k, priv
}

func newECDSA(t *testing.T) (ECDSAPublicKey, *secp256k1.PrivateKey) {
	t.Helper()
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	k, err := ECDSAPublicKeyFromBytes(priv.PubKey().SerializeCompressed())
	require.NoError(t, err)
	return k, priv
}

// ============================================================================
//                              wire 往返
// ============================================================================

func TestFromWire_RoundTrip(t *testing.T) {
	ed, _ := newEd25519(t)
	ec, _ := newECDSA(t)
	addr, err := EvmAddressFromString("0xd8eb8db03c699faa3f47adcdcd2ae91773b10f8b")
	require.NoError(t, err)
	zeroEC, err := ECDSAPublicKeyFromBytes(make([]byte, 33))
	require.NoError(t, err)

	nested := NewThresholdKey(1, ed, NewKeyList(ec, addr), NewThresholdKey(2, ed, ec, UnusableKey()))

	tests := []struct {
		name string
		key  Key
	}{
		{"ed25519", ed},
		{"ecdsa", ec},
		{"evm address", addr},
		{"unusable ed25519", UnusableKey()},
		{"zero ecdsa", zeroEC},
		{"contract id", NewContractIDKey(types.ContractID{Shard: 0, Realm: 0, Num: 1001})},
		{"contract evm", NewContractIDKey(types.ContractID{Shard: 1, Realm: 2, EvmAddress: addr.Bytes()})},
		{"delegate contract", NewDelegateContractIDKey(types.ContractID{Num: 7})},
		{"key list", NewKeyList(ed, ec)},
		{"empty key list", NewKeyList()},
		{"threshold", NewThresholdKey(2, ed, ec, ed)},
		{"nested", nested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromWire(tt.key.ToWire())
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, tt.key.Equal(got))
			assert.IsType(t, tt.key, got)

			fromBytes, err := KeyFromBytes(tt.key.ToBytes())
			require.NoError(t, err)
			assert.Equal(t, tt.key.ToBytes(), fromBytes.ToBytes())
		})
	}
}

func TestFromWire_Dispatch(t *testing.T) {
	got, err := FromWire(&pbkey.Key{ECDSASecp256k1: make([]byte, 20)})
	require.NoError(t, err)
	assert.IsType(t, EvmAddress{}, got)

	got, err = FromWire(&pbkey.Key{ThresholdKey: &pbkey.ThresholdKey{Threshold: 3}})
	require.NoError(t, err)
	list, ok := got.(*KeyList)
	require.True(t, ok)
	threshold, set := list.Threshold()
	assert.True(t, set)
	assert.Equal(t, uint32(3), threshold)

	got, err = FromWire(&pbkey.Key{KeyList: &pbkey.KeyList{}})
	require.NoError(t, err)
	_, set = got.(*KeyList).Threshold()
	assert.False(t, set)
}

func TestFromWire_NotSet(t *testing.T) {
	got, err := FromWire(&pbkey.Key{})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = FromWire(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = KeyFromBytes(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFromWire_Unsupported(t *testing.T) {
	for _, w := range []*pbkey.Key{{RSA3072: []byte{1}}, {ECDSA384: []byte{2}}} {
		_, err := FromWire(w)
		assert.True(t, types.IsBadKey(err))
		assert.ErrorIs(t, err, types.ErrUnsupportedKeyCase)
	}
}

func TestFromWire_BadNested(t *testing.T) {
	_, err := FromWire(&pbkey.Key{KeyList: &pbkey.KeyList{Keys: []*pbkey.Key{{}}}})
	assert.ErrorIs(t, err, types.ErrUnsetKey)

	_, err = FromWire(&pbkey.Key{KeyList: &pbkey.KeyList{Keys: []*pbkey.Key{{Ed25519: []byte{1, 2}}}}})
	assert.ErrorIs(t, err, types.ErrInvalidKeyLength)

	_, err = FromWire(&pbkey.Key{ThresholdKey: &pbkey.ThresholdKey{Keys: &pbkey.KeyList{Keys: []*pbkey.Key{{RSA3072: []byte{1}}}}}})
	assert.ErrorIs(t, err, types.ErrUnsupportedKeyCase)
}

func TestKeyFromBytes_WireVector(t *testing.T) {
	raw := mustHex(t, "3a21034e0441201f2bf9c7d9873c2a9dc3fd451f64b7c05e17e4d781d916e3a11dfd99")
	k, err := KeyFromBytes(raw)
	require.NoError(t, err)
	pub, ok := k.(ECDSAPublicKey)
	require.True(t, ok)
	assert.Equal(t, "034e0441201f2bf9c7d9873c2a9dc3fd451f64b7c05e17e4d781d916e3a11dfd99", pub.ToStringRaw())
	assert.Equal(t, raw, k.ToBytes())

	_, err = KeyFromBytes([]byte{0x3a, 0x21, 0x03})
	assert.ErrorIs(t, err, types.ErrInvalidWire)
}

// ============================================================================
//                              KeyList
// ============================================================================

func TestKeyList_Operations(t *testing.T) {
	a, _ := newEd25519(t)
	b, _ := newECDSA(t)

	l := NewKeyList(a, nil, b, a)
	assert.Equal(t, 3, l.Len())
	assert.True(t, l.Contains(b))
	assert.True(t, KeysEqual(a, l.Get(0)))
	assert.Nil(t, l.Get(5))

	assert.True(t, l.Remove(a))
	assert.Equal(t, 2, l.Len())
	assert.True(t, KeysEqual(b, l.Get(0)))
	assert.False(t, l.Remove(UnusableKey()))

	removed, err := l.RemoveAt(1)
	require.NoError(t, err)
	assert.True(t, KeysEqual(a, removed))
	_, err = l.RemoveAt(4)
	assert.ErrorIs(t, err, types.ErrInvalidParameter)

	l.Add(a).SetThreshold(1)
	threshold, ok := l.Threshold()
	assert.True(t, ok)
	assert.Equal(t, uint32(1), threshold)
	assert.NotNil(t, l.ToWire().ThresholdKey)

	l.ClearThreshold()
	assert.NotNil(t, l.ToWire().KeyList)
	assert.Nil(t, l.ToWire().ThresholdKey)

	l.Clear()
	assert.Equal(t, 0, l.Len())
}

func TestKeyList_Equality(t *testing.T) {
	a, _ := newEd25519(t)
	b, _ := newECDSA(t)

	assert.True(t, NewKeyList(a, b).Equal(NewKeyList(a, b)))
	assert.False(t, NewKeyList(a, b).Equal(NewKeyList(b, a)), "order matters")
	assert.False(t, NewKeyList(a, b).Equal(NewThresholdKey(2, a, b)), "threshold matters")
	assert.False(t, NewThresholdKey(1, a, b).Equal(NewThresholdKey(2, a, b)))
	assert.False(t, NewKeyList(a).Equal(a))
	assert.False(t, NewKeyList(a).Equal(nil))

	var nilList *KeyList
	assert.True(t, KeysEqual(nil, nilList))
}

func TestKeyList_NoLocalThresholdValidation(t *testing.T) {
	a, _ := newEd25519(t)
	l := NewThresholdKey(5, a)

	got, err := FromWire(l.ToWire())
	require.NoError(t, err)
	threshold, _ := got.(*KeyList).Threshold()
	assert.Equal(t, uint32(5), threshold)
}

func TestKeyList_String(t *testing.T) {
	l := NewThresholdKey(1, NewContractIDKey(types.ContractID{Num: 3}))
	assert.Equal(t, "KeyList{threshold=1, keys=[0.0.3]}", l.String())
	assert.Equal(t, "KeyList{keys=[]}", NewKeyList().String())
}

// ============================================================================
//                              EVM 地址
// ============================================================================

func TestEvmAddress_Length(t *testing.T) {
	for _, n := range []int{0, 19, 21, 32, 33} {
		_, err := EvmAddressFromBytes(make([]byte, n))
		assert.ErrorIs(t, err, types.ErrInvalidEvmAddress, "len %d", n)
	}

	for _, s := range []string{
		"",
		"0x",
		"0xd8eb8db03c699faa3f47adcdcd2ae91773b10f",
		"d8eb8db03c699faa3f47adcdcd2ae91773b10f8b00",
		"0xzz",
	} {
		_, err := EvmAddressFromString(s)
		assert.True(t, types.IsBadKey(err), s)
	}

	for _, s := range []string{
		"d8eb8db03c699faa3f47adcdcd2ae91773b10f8b",
		"0xd8eb8db03c699faa3f47adcdcd2ae91773b10f8b",
		"0xD8EB8DB03C699FAA3F47ADCDCD2AE91773B10F8B",
	} {
		addr, err := EvmAddressFromString(s)
		require.NoError(t, err, s)
		assert.Equal(t, "d8eb8db03c699faa3f47adcdcd2ae91773b10f8b", addr.String())
	}
}

// ============================================================================
//                              交易验证
// ============================================================================

type fakeTransaction []*pbkey.SignedTransaction

func (f fakeTransaction) SignedTransactions() []*pbkey.SignedTransaction { return f }

func signedBody(body []byte, pairs ...*pbkey.SignaturePair) *pbkey.SignedTransaction {
	return &pbkey.SignedTransaction{BodyBytes: body, SigMap: &pbkey.SignatureMap{SigPair: pairs}}
}

func TestVerifyTransaction_Ed25519(t *testing.T) {
	pub, priv := newEd25519(t)
	other, otherPriv := newEd25519(t)
	bodies := [][]byte{[]byte("node 3"), []byte("node 4")}

	var tx fakeTransaction
	for _, b := range bodies {
		tx = append(tx, signedBody(b,
			other.ToSignaturePair(ed25519.Sign(otherPriv, b)),
			pub.ToSignaturePair(ed25519.Sign(priv, b)),
		))
	}
	assert.True(t, pub.VerifyTransaction(tx))
	assert.True(t, other.VerifyTransaction(tx))

	third, _ := newEd25519(t)
	assert.False(t, third.VerifyTransaction(tx), "no matching prefix")

	tx[1].SigMap.SigPair[1].Ed25519[0] ^= 0x01
	assert.False(t, pub.VerifyTransaction(tx), "one body fails")
	assert.True(t, other.VerifyTransaction(tx))
}

func TestVerifyTransaction_ECDSA(t *testing.T) {
	pub, priv := newECDSA(t)
	body := []byte("body")
	tx := fakeTransaction{signedBody(body, pub.ToSignaturePair(signECDSA(t, priv, body)))}
	assert.True(t, pub.VerifyTransaction(tx))

	tx = fakeTransaction{signedBody([]byte("other"), pub.ToSignaturePair(signECDSA(t, priv, body)))}
	assert.False(t, pub.VerifyTransaction(tx))
}

func TestVerifyTransaction_Degenerate(t *testing.T) {
	pub, _ := newEd25519(t)

	assert.False(t, pub.VerifyTransaction(nil))
	assert.False(t, pub.VerifyTransaction(fakeTransaction{}))
	assert.False(t, pub.VerifyTransaction(fakeTransaction{nil}))
	assert.False(t, pub.VerifyTransaction(fakeTransaction{{BodyBytes: []byte("x")}}))
	assert.False(t, pub.VerifyTransaction(fakeTransaction{signedBody([]byte("x"))}))
}
