package provider_test

import (
	"bytes"
	"testing"

	"github.com/miyakowork/template-utils-security/common/metrics/disabled"
	"github.com/miyakowork/template-utils-security/security/asymmetric"
	"github.com/miyakowork/template-utils-security/security/digest"
	"github.com/miyakowork/template-utils-security/security/keystore"
	"github.com/miyakowork/template-utils-security/security/mocks"
	"github.com/miyakowork/template-utils-security/security/provider"
	"github.com/miyakowork/template-utils-security/security/symmetric"
	"github.com/stretchr/testify/require"
)

func newTestSuite(t *testing.T) *provider.Suite {
	suite, err := provider.NewSuite(&mocks.MockKeyStore{SKIValue: []byte("ski")}, 0, &disabled.Provider{})
	require.NoError(t, err)
	return suite
}

func TestNewSuiteNilKeyStore(t *testing.T) {
	_, err := provider.NewSuite(nil, 0, &disabled.Provider{})
	require.Error(t, err)
}

func TestSuiteDigest(t *testing.T) {
	suite := newTestSuite(t)

	digested, err := suite.Digest(digest.MD5, nil)
	require.NoError(t, err)
	require.Len(t, digested, 16)

	hexDigest, err := suite.DigestHex(digest.MD5, nil)
	require.NoError(t, err)
	require.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", hexDigest)

	fromStream, err := suite.DigestStream(digest.MD5, bytes.NewReader(nil))
	require.NoError(t, err)
	require.Equal(t, digested, fromStream)

	_, err = suite.Digest("SM3", nil)
	require.Error(t, err)
}

func TestSuiteHmac(t *testing.T) {
	suite := newTestSuite(t)

	key := []byte("0123456789abcdef")
	first, err := suite.Hmac(digest.HmacSHA256, key, []byte("hello"))
	require.NoError(t, err)
	second, err := suite.Hmac(digest.HmacSHA256, key, []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSuiteEncryptDecrypt(t *testing.T) {
	suite := newTestSuite(t)

	key := []byte("0123456789abcdef")
	plaintext := []byte("Pleases provide as much information that you can.")

	ciphertext, err := suite.Encrypt(symmetric.AES, key, plaintext)
	require.NoError(t, err)

	decrypted, err := suite.Decrypt(symmetric.AES, key, ciphertext)
	require.NoError(t, err)
	require.Equal(t, plaintext, decrypted)
}

func TestSuiteSignVerify(t *testing.T) {
	suite := newTestSuite(t)

	keyPair, err := asymmetric.GenerateKeyPair(asymmetric.ECDSA, 256, nil)
	require.NoError(t, err)

	data := []byte("hello world")
	signed, err := suite.Sign(asymmetric.ECDSA, digest.SHA256, keyPair.PrivateKey(), data)
	require.NoError(t, err)

	valid, err := suite.Verify(asymmetric.ECDSA, digest.SHA256, keyPair.PublicKey(), data, signed)
	require.NoError(t, err)
	require.True(t, valid)
}

func TestSuiteKeyLifecycle(t *testing.T) {
	store := &mocks.MockKeyStore{SKIValue: []byte("ski")}
	suite, err := provider.NewSuite(store, 0, &disabled.Provider{})
	require.NoError(t, err)

	secretKey, ski, err := suite.GenerateKey("AES")
	require.NoError(t, err)
	require.Equal(t, []byte("ski"), ski)

	recovered, err := suite.GetKey(ski)
	require.NoError(t, err)
	require.Equal(t, secretKey.Key(), recovered)

	_, _, err = suite.GenerateKey("SM4")
	require.Error(t, err)

	_, err = suite.StoreKey(nil)
	require.Error(t, err)
}

func TestSuiteGenerateKeyPair(t *testing.T) {
	store := &mocks.MockKeyStore{SKIValue: []byte("ski")}
	suite, err := provider.NewSuite(store, 0, &disabled.Provider{})
	require.NoError(t, err)

	keyPair, ski, err := suite.GenerateKeyPair("Ed25519", 0)
	require.NoError(t, err)
	require.Equal(t, []byte("ski"), ski)
	require.NotNil(t, keyPair.PrivateKey())

	recovered, err := suite.GetKey(ski)
	require.NoError(t, err)
	require.Equal(t, keyPair.PrivateKey(), recovered)
}

func TestSuiteWithFileStore(t *testing.T) {
	fs, err := keystore.NewFileStore(t.TempDir(), false)
	require.NoError(t, err)

	suite, err := provider.NewSuite(fs, 0, &disabled.Provider{})
	require.NoError(t, err)

	secretKey, ski, err := suite.GenerateKey("AES")
	require.NoError(t, err)

	recovered, err := suite.GetKey(ski)
	require.NoError(t, err)
	require.Equal(t, secretKey.Key(), recovered)
}
