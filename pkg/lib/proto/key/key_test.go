package key

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestKey_ECDSAVector(t *testing.T) {
	raw, err := hex.DecodeString("3a21034e0441201f2bf9c7d9873c2a9dc3fd451f64b7c05e17e4d781d916e3a11dfd99")
	require.NoError(t, err)

	var k Key
	require.NoError(t, k.Unmarshal(raw))
	assert.Equal(t, KeyCaseECDSASecp256k1, k.Case())
	assert.Len(t, k.ECDSASecp256k1, 33)
	assert.Equal(t, raw, k.Marshal())
}

func TestKey_RoundTrip(t *testing.T) {
	ed := make([]byte, 32)
	ed[0] = 0xaa

	tests := []struct {
		name string
		key  *Key
		want KeyCase
	}{
		{"ed25519", &Key{Ed25519: ed}, KeyCaseEd25519},
		{"空 ed25519", &Key{Ed25519: []byte{}}, KeyCaseEd25519},
		{"ecdsa", &Key{ECDSASecp256k1: make([]byte, 33)}, KeyCaseECDSASecp256k1},
		{"rsa", &Key{RSA3072: []byte{1, 2, 3}}, KeyCaseRSA3072},
		{"contract", &Key{ContractID: &ContractID{ShardNum: 1, RealmNum: 2, ContractNum: 3}}, KeyCaseContractID},
		{"delegate evm", &Key{DelegatableContractID: &ContractID{EvmAddress: make([]byte, 20)}}, KeyCaseDelegatableContractID},
		{"key list", &Key{KeyList: &KeyList{Keys: []*Key{{Ed25519: ed}, {ECDSASecp256k1: make([]byte, 33)}}}}, KeyCaseKeyList},
		{"空 key list", &Key{KeyList: &KeyList{}}, KeyCaseKeyList},
		{"threshold", &Key{ThresholdKey: &ThresholdKey{
			Threshold: 2,
			Keys:      &KeyList{Keys: []*Key{{Ed25519: ed}, {KeyList: &KeyList{Keys: []*Key{{Ed25519: ed}}}}}},
		}}, KeyCaseThresholdKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.key.Marshal()
			var got Key
			require.NoError(t, got.Unmarshal(data))
			assert.Equal(t, tt.want, got.Case())
			assert.Equal(t, data, got.Marshal())
		})
	}
}

func TestKey_NotSet(t *testing.T) {
	var k Key
	require.NoError(t, k.Unmarshal(nil))
	assert.Equal(t, KeyCaseNotSet, k.Case())
	assert.Empty(t, k.Marshal())

	var nilKey *Key
	assert.Equal(t, KeyCaseNotSet, nilKey.Case())
}

func TestKey_LastOneofWins(t *testing.T) {
	data := (&Key{Ed25519: make([]byte, 32)}).Marshal()
	data = append(data, (&Key{ECDSASecp256k1: make([]byte, 33)}).Marshal()...)

	var k Key
	require.NoError(t, k.Unmarshal(data))
	assert.Equal(t, KeyCaseECDSASecp256k1, k.Case())
	assert.Nil(t, k.Ed25519)
}

func TestKey_SkipsUnknownFields(t *testing.T) {
	data := protowire.AppendTag(nil, 99, protowire.Fixed32Type)
	data = protowire.AppendFixed32(data, 7)
	data = append(data, (&Key{Ed25519: make([]byte, 32)}).Marshal()...)

	var k Key
	require.NoError(t, k.Unmarshal(data))
	assert.Equal(t, KeyCaseEd25519, k.Case())
}

func TestKey_Malformed(t *testing.T) {
	tests := map[string][]byte{
		"截断长度":     {0x12, 0x20, 0x01},
		"截断 tag":   {0x80},
		"错误类型":     {0x10, 0x01},
		"嵌套列表损坏":   {0x32, 0x02, 0x0a, 0x05},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			var k Key
			assert.ErrorIs(t, k.Unmarshal(data), ErrInvalidMessage)
		})
	}
}

func TestThresholdKey_Encoding(t *testing.T) {
	tk := &ThresholdKey{Threshold: 1, Keys: &KeyList{Keys: []*Key{{Ed25519: []byte{1}}}}}
	// threshold=1 → 08 01；keys → 12 05 (0a 03 (12 01 01))
	assert.Equal(t, []byte{0x08, 0x01, 0x12, 0x05, 0x0a, 0x03, 0x12, 0x01, 0x01}, tk.Marshal())

	var got ThresholdKey
	require.NoError(t, got.Unmarshal(tk.Marshal()))
	assert.Equal(t, uint32(1), got.Threshold)
	require.NotNil(t, got.Keys)
	assert.Len(t, got.Keys.Keys, 1)
}

func TestContractID_Encoding(t *testing.T) {
	id := &ContractID{ShardNum: 0, RealmNum: 0, ContractNum: 1001}
	assert.Equal(t, []byte{0x18, 0xe9, 0x07}, id.Marshal())

	var got ContractID
	require.NoError(t, got.Unmarshal(id.Marshal()))
	assert.Equal(t, *id, got)

	evm := &ContractID{ShardNum: 1, EvmAddress: make([]byte, 20)}
	require.NoError(t, got.Unmarshal(evm.Marshal()))
	assert.Equal(t, int64(1), got.ShardNum)
	assert.Len(t, got.EvmAddress, 20)
	assert.Zero(t, got.ContractNum)
}

func TestKeyCase_String(t *testing.T) {
	assert.Equal(t, "RSA_3072", KeyCaseRSA3072.String())
	assert.Equal(t, "not set", KeyCaseNotSet.String())
	assert.Equal(t, "KeyCase(42)", KeyCase(42).String())
}
