package keystore

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyclone-designs/go-hedera-keys/config"
	"github.com/xyclone-designs/go-hedera-keys/pkg/lib/crypto"
	"github.com/xyclone-designs/go-hedera-keys/pkg/types"
)

const (
	testPassphrase = "correct horse battery staple"
	testIterations = 16
)

var testKey = mustDecode("db484b828e64b2d8f12ce3c0a0e93a0b8cce7aa1786e1eaf0a1a8d8f0f1f6a5d")

func mustDecode(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func testCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(config.DefaultKeystoreConfig().WithIterations(testIterations))
	require.NoError(t, err)
	return c
}

// buildFile 以指定版本构造 keystore 文件的通用 JSON 表示，便于逐字段篡改
func buildFile(t *testing.T, version int, passphrase string, raw []byte) map[string]any {
	t.Helper()
	salt := mustDecode("0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")
	iv := mustDecode("a0a1a2a3a4a5a6a7a8a9aaabacadaeaf")

	cipherKey, err := crypto.DeriveKey([]byte(passphrase), salt, testIterations, crypto.DKLen)
	require.NoError(t, err)
	ciphertext, err := crypto.EncryptCtr(cipherKey, iv, raw)
	require.NoError(t, err)

	mac := macV2
	if version == Version1 {
		mac = macV1
	}
	tag, err := mac(cipherKey, iv, ciphertext)
	require.NoError(t, err)

	return map[string]any{
		"version": version,
		"crypto": map[string]any{
			"cipher":       "aes-128-ctr",
			"cipherparams": map[string]any{"iv": hex.EncodeToString(iv)},
			"ciphertext":   hex.EncodeToString(ciphertext),
			"kdf":          "pbkdf2",
			"kdfparams": map[string]any{
				"dkLen": 32,
				"salt":  hex.EncodeToString(salt),
				"c":     testIterations,
				"prf":   "hmac-sha256",
			},
			"mac": hex.EncodeToString(tag),
		},
	}
}

func encode(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func cryptoSection(f map[string]any) map[string]any { return f["crypto"].(map[string]any) }

// ============================================================================
//                              往返
// ============================================================================

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := testCodec(t)
	data, err := c.Encrypt(testKey, testPassphrase)
	require.NoError(t, err)

	ks, err := c.Decrypt(data, testPassphrase)
	require.NoError(t, err)
	assert.Equal(t, testKey, ks.Bytes())
	assert.Equal(t, Version2, ks.Version())

	// 默认解码器使用文件内参数
	ks, err = Decrypt(data, testPassphrase)
	require.NoError(t, err)
	assert.Equal(t, testKey, ks.Bytes())
}

func TestEncryptDecrypt_EmptyKey(t *testing.T) {
	c := testCodec(t)
	data, err := c.Encrypt([]byte{}, testPassphrase)
	require.NoError(t, err)

	var f map[string]any
	require.NoError(t, json.Unmarshal(data, &f))
	assert.Equal(t, "", cryptoSection(f)["ciphertext"])

	ks, err := c.Decrypt(data, testPassphrase)
	require.NoError(t, err)
	assert.Empty(t, ks.Bytes())
}

func TestEncrypt_Format(t *testing.T) {
	data, err := testCodec(t).Export(New(testKey), testPassphrase)
	require.NoError(t, err)

	var f map[string]any
	require.NoError(t, json.Unmarshal(data, &f))
	assert.EqualValues(t, 2, f["version"])

	cj := cryptoSection(f)
	assert.Equal(t, "aes-128-ctr", cj["cipher"])
	assert.Equal(t, "pbkdf2", cj["kdf"])
	assert.Len(t, cj["ciphertext"], 2*len(testKey))
	assert.Len(t, cj["mac"], 2*crypto.Hmac384Size)
	assert.Len(t, cj["cipherparams"].(map[string]any)["iv"], 2*crypto.IVLen)

	kp := cj["kdfparams"].(map[string]any)
	assert.EqualValues(t, 32, kp["dkLen"])
	assert.EqualValues(t, testIterations, kp["c"])
	assert.Equal(t, "hmac-sha256", kp["prf"])
	assert.Len(t, kp["salt"], 2*config.DefaultSaltLength)
}

func TestEncrypt_Randomized(t *testing.T) {
	c := testCodec(t)
	a, err := c.Encrypt(testKey, testPassphrase)
	require.NoError(t, err)
	b, err := c.Encrypt(testKey, testPassphrase)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecrypt_Versions(t *testing.T) {
	for _, version := range []int{Version1, Version2} {
		ks, err := Decrypt(encode(t, buildFile(t, version, testPassphrase, testKey)), testPassphrase)
		require.NoError(t, err, "version %d", version)
		assert.Equal(t, testKey, ks.Bytes())
		assert.Equal(t, version, ks.Version())
	}
}

func TestDecrypt_CrossVersionMACFails(t *testing.T) {
	f := buildFile(t, Version1, testPassphrase, testKey)
	f["version"] = Version2
	_, err := Decrypt(encode(t, f), testPassphrase)
	assert.ErrorIs(t, err, types.ErrPassphraseMismatch)

	f = buildFile(t, Version2, testPassphrase, testKey)
	f["version"] = Version1
	_, err = Decrypt(encode(t, f), testPassphrase)
	assert.ErrorIs(t, err, types.ErrPassphraseMismatch)
}

func TestDecrypt_WrongPassphrase(t *testing.T) {
	data, err := testCodec(t).Encrypt(testKey, testPassphrase)
	require.NoError(t, err)

	_, err = Decrypt(data, "wrong")
	require.Error(t, err)
	assert.True(t, types.IsBadKey(err))
	assert.Contains(t, err.Error(), "HMAC mismatch; passphrase is incorrect")
}

// ============================================================================
//                              拒绝
// ============================================================================

func TestDecrypt_Unsupported(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f map[string]any)
		wantErr error
		wantMsg string
	}{
		{"version 3", func(f map[string]any) { f["version"] = 3 }, types.ErrUnsupportedVersion, "unsupported keystore version: 3"},
		{"version 0", func(f map[string]any) { f["version"] = 0 }, types.ErrUnsupportedVersion, "unsupported keystore version: 0"},
		{"cipher", func(f map[string]any) { cryptoSection(f)["cipher"] = "aes-256-cbc" }, types.ErrUnsupportedCipher, "unsupported keystore cipher: aes-256-cbc"},
		{"kdf", func(f map[string]any) { cryptoSection(f)["kdf"] = "scrypt" }, types.ErrUnsupportedKDF, "unsupported KDF: scrypt"},
		{"prf", func(f map[string]any) {
			cryptoSection(f)["kdfparams"].(map[string]any)["prf"] = "hmac-sha512"
		}, types.ErrUnsupportedPRF, "unsupported KDF hash function: hmac-sha512"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := buildFile(t, Version2, testPassphrase, testKey)
			tt.mutate(f)
			_, err := Decrypt(encode(t, f), testPassphrase)
			require.Error(t, err)
			assert.True(t, types.IsBadKey(err))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDecrypt_ScryptKeystore(t *testing.T) {
	// scrypt 参数没有 c 与 prf
	f := buildFile(t, Version2, testPassphrase, testKey)
	cryptoSection(f)["kdf"] = "scrypt"
	cryptoSection(f)["kdfparams"] = map[string]any{
		"dklen": 32,
		"n":     262144,
		"r":     8,
		"p":     1,
		"salt":  "ab0c7876052600dd703518d6fc3fe8984592145b591fc8fb5c6d43190334ba19",
	}

	_, err := Decrypt(encode(t, f), testPassphrase)
	require.Error(t, err)
	assert.True(t, types.IsBadKey(err))
	assert.ErrorIs(t, err, types.ErrUnsupportedKDF)
	assert.Contains(t, err.Error(), "unsupported KDF: scrypt")
}

func TestDecrypt_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f map[string]any)
		wantErr error
		wantMsg string
	}{
		{"missing version", func(f map[string]any) { delete(f, "version") }, types.ErrMissingField, "missing key 'version'"},
		{"missing crypto", func(f map[string]any) { delete(f, "crypto") }, types.ErrMissingField, "missing key 'crypto'"},
		{"missing cipher", func(f map[string]any) { delete(cryptoSection(f), "cipher") }, types.ErrMissingField, "missing key 'crypto.cipher'"},
		{"missing kdf", func(f map[string]any) { delete(cryptoSection(f), "kdf") }, types.ErrMissingField, "missing key 'crypto.kdf'"},
		{"missing kdfparams", func(f map[string]any) { delete(cryptoSection(f), "kdfparams") }, types.ErrMissingField, "missing key 'crypto.kdfparams'"},
		{"missing prf", func(f map[string]any) {
			delete(cryptoSection(f)["kdfparams"].(map[string]any), "prf")
		}, types.ErrMissingField, "missing key 'crypto.kdfparams.prf'"},
		{"missing ciphertext", func(f map[string]any) { delete(cryptoSection(f), "ciphertext") }, types.ErrMissingField, "missing key 'crypto.ciphertext'"},
		{"missing mac", func(f map[string]any) { delete(cryptoSection(f), "mac") }, types.ErrMissingField, "missing key 'crypto.mac'"},
		{"missing iv", func(f map[string]any) {
			delete(cryptoSection(f)["cipherparams"].(map[string]any), "iv")
		}, types.ErrMissingField, "missing key 'crypto.cipherparams.iv'"},
		{"missing c", func(f map[string]any) {
			delete(cryptoSection(f)["kdfparams"].(map[string]any), "c")
		}, types.ErrMissingField, "missing key 'crypto.kdfparams.c'"},
		{"cipher type", func(f map[string]any) { cryptoSection(f)["cipher"] = 7 }, types.ErrFieldType, "expected key 'crypto.cipher' to be a string"},
		{"c type", func(f map[string]any) {
			cryptoSection(f)["kdfparams"].(map[string]any)["c"] = "many"
		}, types.ErrFieldType, "expected key 'crypto.kdfparams.c' to be an integer"},
		{"kdfparams type", func(f map[string]any) { cryptoSection(f)["kdfparams"] = "x" }, types.ErrFieldType, "expected key 'crypto.kdfparams' to be an object"},
		{"version type", func(f map[string]any) { f["version"] = "2" }, types.ErrFieldType, "expected key 'version' to be an integer"},
		{"mac hex", func(f map[string]any) { cryptoSection(f)["mac"] = "zz" }, types.ErrInvalidHex, "crypto.mac"},
		{"odd hex", func(f map[string]any) { cryptoSection(f)["ciphertext"] = "abc" }, types.ErrInvalidHex, "crypto.ciphertext"},
		{"short dkLen", func(f map[string]any) {
			cryptoSection(f)["kdfparams"].(map[string]any)["dkLen"] = 16
		}, types.ErrInvalidParameter, "crypto.kdfparams.dkLen"},
		{"zero c", func(f map[string]any) {
			cryptoSection(f)["kdfparams"].(map[string]any)["c"] = 0
		}, types.ErrInvalidParameter, "crypto.kdfparams.c"},
		{"negative c", func(f map[string]any) {
			cryptoSection(f)["kdfparams"].(map[string]any)["c"] = -5
		}, types.ErrInvalidParameter, "crypto.kdfparams.c"},
		{"short iv", func(f map[string]any) {
			cryptoSection(f)["cipherparams"].(map[string]any)["iv"] = "a0a1"
		}, types.ErrInvalidIV, "crypto.cipherparams.iv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := buildFile(t, Version2, testPassphrase, testKey)
			tt.mutate(f)
			_, err := Decrypt(encode(t, f), testPassphrase)
			require.Error(t, err)
			assert.True(t, types.IsBadKey(err))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDecrypt_MalformedJSON(t *testing.T) {
	for _, data := range []string{"", "{", "[]", "null"} {
		_, err := Decrypt([]byte(data), testPassphrase)
		assert.True(t, types.IsBadKey(err), "%q", data)
	}
}

func TestNewCodec_InvalidConfig(t *testing.T) {
	_, err := NewCodec(config.DefaultKeystoreConfig().WithIterations(0))
	assert.Error(t, err)
	_, err = NewCodec(config.DefaultKeystoreConfig().WithSaltLength(4))
	assert.Error(t, err)
}

func TestKeystore_BytesIsCopy(t *testing.T) {
	ks := New(testKey)
	b := ks.Bytes()
	b[0] ^= 0xff
	assert.Equal(t, testKey, ks.Bytes())
}
