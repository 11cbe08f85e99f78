package keystore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt 参数较重, short 模式跳过")
	}

	secret := "pairing-topic-0.0.123456-deadbeef"
	password := "correct horse battery staple"

	enc, err := EncryptSecret(secret, password)
	require.NoError(t, err)
	assert.Equal(t, 3, enc.Version)
	assert.Equal(t, "aes-256-gcm", enc.Crypto.Cipher)

	got, err := DecryptSecret(enc, password)
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestDecryptWrongPassword(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt 参数较重, short 模式跳过")
	}

	enc, err := EncryptSecret("secret", "right-password")
	require.NoError(t, err)

	_, err = DecryptSecret(enc, "wrong-password")
	assert.Error(t, err, "错误密码必须被 MAC 校验拦下")
}

func TestSaveLoadFile(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt 参数较重, short 模式跳过")
	}

	path := filepath.Join(t.TempDir(), "pairing.json")

	enc, err := EncryptSecret("secret", "pw")
	require.NoError(t, err)
	require.NoError(t, enc.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)

	got, err := DecryptSecret(loaded, "pw")
	require.NoError(t, err)
	assert.Equal(t, "secret", got)
}
