package keystore_test

import (
	"testing"

	"github.com/miyakowork/template-utils-security/security/asymmetric"
	"github.com/miyakowork/template-utils-security/security/keystore"
	"github.com/miyakowork/template-utils-security/security/utils"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSymmetricKey(t *testing.T) {
	fs, err := keystore.NewFileStore(t.TempDir(), false)
	require.NoError(t, err)

	key, err := utils.GetRandomBytes(16)
	require.NoError(t, err)

	ski, err := fs.StoreSymmetricKey("AES", key)
	require.NoError(t, err)
	require.Len(t, ski, 32)

	recovered, err := fs.GetKey(ski)
	require.NoError(t, err)
	require.Equal(t, key, recovered)
}

func TestFileStoreKeyPair(t *testing.T) {
	fs, err := keystore.NewFileStore(t.TempDir(), false)
	require.NoError(t, err)

	keyPair, err := asymmetric.GenerateKeyPair(asymmetric.ECDSA, 256, nil)
	require.NoError(t, err)

	skSKI, err := fs.StorePrivateKey(keyPair.PrivateKey())
	require.NoError(t, err)
	pkSKI, err := fs.StorePublicKey(keyPair.PublicKey())
	require.NoError(t, err)

	privateKey, err := fs.GetKey(skSKI)
	require.NoError(t, err)
	require.Equal(t, keyPair.PrivateKey(), privateKey)

	publicKey, err := fs.GetKey(pkSKI)
	require.NoError(t, err)
	require.Equal(t, keyPair.PublicKey(), publicKey)
}

func TestFileStoreReadOnly(t *testing.T) {
	fs, err := keystore.NewFileStore(t.TempDir(), true)
	require.NoError(t, err)
	require.True(t, fs.ReadOnly())

	_, err = fs.StoreSymmetricKey("AES", make([]byte, 16))
	require.Error(t, err)

	keyPair, err := asymmetric.GenerateKeyPair(asymmetric.Ed25519, 0, nil)
	require.NoError(t, err)
	_, err = fs.StorePrivateKey(keyPair.PrivateKey())
	require.Error(t, err)
}

func TestFileStoreUnknownSKI(t *testing.T) {
	fs, err := keystore.NewFileStore(t.TempDir(), false)
	require.NoError(t, err)

	_, err = fs.GetKey([]byte("not-exists"))
	require.Error(t, err)

	_, err = fs.GetKey(nil)
	require.Error(t, err)
}

func TestFileStoreEmptyPath(t *testing.T) {
	_, err := keystore.NewFileStore("", false)
	require.Error(t, err)
}
