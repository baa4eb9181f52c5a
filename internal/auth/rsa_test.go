package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/shopfloor/internal/config"
)

func generateKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	return priv, base64.StdEncoding.EncodeToString(der)
}

func TestEncrypt_RoundTrip(t *testing.T) {
	priv, pubB64 := generateKey(t)

	cipher, err := EncryptPassword(pubB64, "s3cret")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(cipher)
	require.NoError(t, err)
	plain, err := rsa.DecryptPKCS1v15(nil, priv, raw)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(plain))
}

func TestEncrypt_RandomPadding(t *testing.T) {
	_, pubB64 := generateKey(t)
	enc, err := NewEncryptor(pubB64)
	require.NoError(t, err)

	a, err := enc.Encrypt("same")
	require.NoError(t, err)
	b, err := enc.Encrypt("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEncrypt_EmptyPassword(t *testing.T) {
	_, pubB64 := generateKey(t)
	_, err := EncryptPassword(pubB64, "")
	assert.Error(t, err)
}

func TestParsePublicKey_Formats(t *testing.T) {
	priv, pubB64 := generateKey(t)

	pkixPEM := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: mustDecode(t, pubB64)}))
	pkcs1PEM := string(pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: x509.MarshalPKCS1PublicKey(&priv.PublicKey)}))
	wrapped := pubB64[:40] + "\n" + pubB64[40:]

	for name, key := range map[string]string{
		"bare base64":    pubB64,
		"wrapped base64": wrapped,
		"pkix pem":       pkixPEM,
		"pkcs1 pem":      pkcs1PEM,
	} {
		t.Run(name, func(t *testing.T) {
			pub, err := ParsePublicKey(key)
			require.NoError(t, err)
			assert.Equal(t, priv.PublicKey.N, pub.N)
		})
	}
}

func TestParsePublicKey_Invalid(t *testing.T) {
	_, err := ParsePublicKey("")
	assert.Error(t, err)
	_, err = ParsePublicKey("not base64 !!")
	assert.Error(t, err)
	_, err = ParsePublicKey(base64.StdEncoding.EncodeToString([]byte("garbage")))
	assert.Error(t, err)
}

func TestDefaultKeyParses(t *testing.T) {
	enc, err := NewEncryptor(config.DefaultPublicKey)
	require.NoError(t, err)
	assert.Equal(t, 512, enc.pub.N.BitLen())

	cipher, err := enc.Encrypt("admin123")
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(cipher)
	require.NoError(t, err)
	assert.Len(t, raw, 64)
}

func mustDecode(t *testing.T, s string) []byte {
	t.Helper()
	b, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)
	return b
}
