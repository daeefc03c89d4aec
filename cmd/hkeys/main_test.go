package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"keystore":{"iterations":8},"pem":{"iterations":8}}`), 0o600))
	return path
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, run(nil, &out), errUsage)
	assert.ErrorIs(t, run([]string{"frobnicate"}, &out), errUsage)
}

func TestRun_EvmAddress(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"evm-address", "-key",
		"034e0441201f2bf9c7d9873c2a9dc3fd451f64b7c05e17e4d781d916e3a11dfd99"}, &out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 40)
	assert.True(t, strings.EqualFold("0x"+lines[0], lines[1]))
}

func TestRun_DER(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"der", "-key",
		"302d300706052b8104000a032200034e0441201f2bf9c7d9873c2a9dc3fd451f64b7c05e17e4d781d916e3a11dfd99"}, &out))
	assert.True(t, strings.HasPrefix(out.String(), "3036301006072a8648ce3d020106052b8104000a032200034e04"))
}

func TestRun_KeystoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	key := "db484b828e64b2d8f12ce3c0a0e93a0b8cce7aa1786e1eaf0a1a8d8f0f1f6a5d"

	var out bytes.Buffer
	require.NoError(t, run([]string{"keystore-encrypt", "-key", key, "-pass", "pw", "-config", cfg}, &out))

	file := filepath.Join(dir, "key.json")
	require.NoError(t, os.WriteFile(file, out.Bytes(), 0o600))

	out.Reset()
	require.NoError(t, run([]string{"keystore-decrypt", "-in", file, "-pass", "pw"}, &out))
	assert.Equal(t, "version: 2\n"+key+"\n", out.String())

	assert.Error(t, run([]string{"keystore-decrypt", "-in", file, "-pass", "nope"}, &out))
}

func TestRun_PEMRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	seed := "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"

	var out bytes.Buffer
	require.NoError(t, run([]string{"pem-encrypt", "-ed25519", seed, "-pass", "pw", "-config", cfg}, &out))
	assert.Contains(t, out.String(), "ENCRYPTED PRIVATE KEY")

	file := filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(file, out.Bytes(), 0o600))

	out.Reset()
	require.NoError(t, run([]string{"pem-read", "-in", file, "-pass", "pw"}, &out))
	assert.Contains(t, out.String(), "algorithm: 1.3.101.112")
	assert.Contains(t, out.String(), "key: "+seed)
}

func TestRun_PEMEncryptInput(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"pem-encrypt", "-pass", "pw"}, &out))
	assert.Error(t, run([]string{"pem-encrypt", "-pkcs8", "00", "-ed25519", "00", "-pass", "pw"}, &out))
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"version"}, &out))
	assert.Contains(t, out.String(), "hedera-keys")
}
