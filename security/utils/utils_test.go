package utils_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"io"
	"testing"

	"github.com/miyakowork/template-utils-security/security/utils"
	"github.com/stretchr/testify/require"
)

func TestPrivateKeyPEMRoundTrip(t *testing.T) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	raw, err := utils.PrivateKeyToPEM(privateKey)
	require.NoError(t, err)

	recovered, err := utils.PEMToPrivateKey(raw)
	require.NoError(t, err)
	require.Equal(t, privateKey, recovered)

	_, err = utils.PrivateKeyToPEM(nil)
	require.Error(t, err)

	_, err = utils.PEMToPrivateKey([]byte("not a pem"))
	require.Error(t, err)
}

func TestPublicKeyPEMRoundTrip(t *testing.T) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)

	raw, err := utils.PublicKeyToPEM(&privateKey.PublicKey)
	require.NoError(t, err)

	recovered, err := utils.PEMToPublicKey(raw)
	require.NoError(t, err)
	require.Equal(t, &privateKey.PublicKey, recovered)
}

func TestSymmetricKeyPEMRoundTrip(t *testing.T) {
	key, err := utils.GetRandomBytes(24)
	require.NoError(t, err)

	raw := utils.SymmetricKeyToPEM("DESede", key)
	recovered, err := utils.PEMToSymmetricKey(raw)
	require.NoError(t, err)
	require.Equal(t, key, recovered)

	_, err = utils.PEMToSymmetricKey(nil)
	require.Error(t, err)
}

func TestGetRandomBytes(t *testing.T) {
	first, err := utils.GetRandomBytes(32)
	require.NoError(t, err)
	require.Len(t, first, 32)

	second, err := utils.GetRandomBytes(32)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = utils.GetRandomBytes(0)
	require.Error(t, err)
}

func TestRandomString(t *testing.T) {
	base := "0123456789abcdef"

	str, err := utils.RandomString(base, 32)
	require.NoError(t, err)
	require.Len(t, str, 32)
	for _, c := range str {
		require.Contains(t, base, string(c))
	}

	_, err = utils.RandomString("", 32)
	require.Error(t, err)
}

func TestSeedReaderDeterminism(t *testing.T) {
	first := make([]byte, 4096)
	_, err := io.ReadFull(utils.NewSeedReader([]byte("seed")), first)
	require.NoError(t, err)

	second := make([]byte, 4096)
	_, err = io.ReadFull(utils.NewSeedReader([]byte("seed")), second)
	require.NoError(t, err)
	require.Equal(t, first, second)

	third := make([]byte, 4096)
	_, err = io.ReadFull(utils.NewSeedReader([]byte("another seed")), third)
	require.NoError(t, err)
	require.NotEqual(t, first, third)
}
