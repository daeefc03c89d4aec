package crypto

import (
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

// signCompact 返回 (recoveryID, r, s)
func signCompact(t *testing.T, priv *secp256k1.PrivateKey, hash []byte) (int, *big.Int, *big.Int) {
	t.Helper()
	sig := ecdsa.SignCompact(priv, hash, true)
	require.Len(t, sig, 65)
	// 压缩公钥标记 +4
	recID := int(sig[0]) - 27 - 4
	return recID, new(big.Int).SetBytes(sig[1:33]), new(big.Int).SetBytes(sig[33:65])
}

func TestRecoverPublicKey(t *testing.T) {
	for i := 0; i < 8; i++ {
		priv, err := secp256k1.GeneratePrivateKey()
		require.NoError(t, err)
		hash := Keccak256([]byte("hello hedera"), []byte{byte(i)})

		recID, r, s := signCompact(t, priv, hash)
		got, ok, err := RecoverPublicKey(recID, r, s, hash)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, priv.PubKey().SerializeCompressed(), got)
	}
}

func TestRecoverPublicKey_MatchesGeth(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	hash := Keccak256([]byte("cross check"))

	recID, r, s := signCompact(t, priv, hash)
	got, ok, err := RecoverPublicKey(recID, r, s, hash)
	require.NoError(t, err)
	require.True(t, ok)

	sig := make([]byte, 65)
	r.FillBytes(sig[0:32])
	s.FillBytes(sig[32:64])
	sig[64] = byte(recID)
	uncompressed, err := gethcrypto.Ecrecover(hash, sig)
	require.NoError(t, err)

	pub, err := secp256k1.ParsePubKey(got)
	require.NoError(t, err)
	assert.Equal(t, uncompressed, pub.SerializeUncompressed())
}

func TestRecoverPublicKey_CorruptR(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	hash := Keccak256([]byte("corrupt me"))
	want := priv.PubKey().SerializeCompressed()

	recID, r, s := signCompact(t, priv, hash)
	for delta := int64(1); delta <= 4; delta++ {
		bad := new(big.Int).Add(r, big.NewInt(delta))
		got, ok, err := RecoverPublicKey(recID, bad, s, hash)
		require.NoError(t, err)
		if ok {
			assert.NotEqual(t, want, got)
		}
	}
}

func TestRecoverPublicKey_WrongParity(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	hash := Keccak256([]byte("parity"))

	recID, r, s := signCompact(t, priv, hash)
	got, ok, err := RecoverPublicKey(recID^1, r, s, hash)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, priv.PubKey().SerializeCompressed(), got)
}

func TestRecoverPublicKey_InvalidInputs(t *testing.T) {
	hash := Keccak256([]byte("x"))
	one := big.NewInt(1)

	_, _, err := RecoverPublicKey(2, one, one, hash)
	assert.True(t, types.IsCrypto(err))
	_, _, err = RecoverPublicKey(-1, one, one, hash)
	assert.ErrorIs(t, err, types.ErrInvalidRecoveryID)

	cases := []struct {
		name string
		r, s *big.Int
	}{
		{"负 r", big.NewInt(-5), one},
		{"负 s", one, big.NewInt(-5)},
		{"零 r", big.NewInt(0), one},
		{"零 s", one, big.NewInt(0)},
		{"nil r", nil, one},
		{"r 超出域", new(big.Int).Set(secp256k1.Params().P), one},
		{"r 超过 256 位", new(big.Int).Lsh(one, 300), one},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := RecoverPublicKey(0, tc.r, tc.s, hash)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestRecoverPublicKey_SMultipleOfN(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	hash := Keccak256([]byte("s is n"))
	_, r, _ := signCompact(t, priv, hash)

	// Q = -e·r⁻¹·G
	n := secp256k1.Params().N
	e := new(big.Int).Mod(new(big.Int).SetBytes(hash), n)
	u1 := new(big.Int).Mul(new(big.Int).Sub(n, e), new(big.Int).ModInverse(r, n))
	u1.Mod(u1, n)
	require.NotZero(t, u1.Sign())
	want := secp256k1.PrivKeyFromBytes(u1.FillBytes(make([]byte, 32))).PubKey().SerializeCompressed()

	for recID := 0; recID <= 1; recID++ {
		got, ok, err := RecoverPublicKey(recID, r, new(big.Int).Set(n), hash)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}
