package cmd

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSigner_FileNotFound(t *testing.T) {
	_, err := loadSigner(filepath.Join(t.TempDir(), "missing_key"))
	require.Error(t, err)
}

func TestLoadSigner_RSAKey(t *testing.T) {
	s, err := loadSigner(writeKey(t, t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, s.PublicKey())
}

func TestLoadSigner_Garbage(t *testing.T) {
	_, err := loadSigner(writeTemp(t, t.TempDir(), "id_rsa", "not a key"))
	require.Error(t, err)
}

func TestLoadSigner_EncryptedKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	block, err := x509.EncryptPEMBlock(rand.Reader, "RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(key), []byte("pp"), x509.PEMCipherAES256)
	require.NoError(t, err)
	p := writeTemp(t, t.TempDir(), "id_rsa_enc", string(pem.EncodeToMemory(block)))

	_, err = loadSigner(p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "is encrypted")
}
