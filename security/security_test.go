package security_test

import (
	"bytes"
	"testing"

	"github.com/miyakowork/template-utils-security/security"
	"github.com/miyakowork/template-utils-security/security/certgen"
	"github.com/miyakowork/template-utils-security/security/digest"
	"github.com/stretchr/testify/require"
)

func TestDigesterFactories(t *testing.T) {
	require.Equal(t, digest.MD5, security.Md5().Algorithm())
	require.Equal(t, digest.SHA1, security.Sha1().Algorithm())
	require.Equal(t, digest.SHA256, security.Sha256().Algorithm())
	require.Equal(t, digest.SHA512, security.Sha512().Algorithm())
}

func TestHmacFactories(t *testing.T) {
	mac := security.HmacMd5(nil)
	require.NotNil(t, mac)
	require.Len(t, mac.Key(), digest.DefaultHmacKeyLength)

	mac = security.HmacSha1([]byte("0123456789abcdef"))
	require.Equal(t, []byte("0123456789abcdef"), mac.Key())
}

func TestSymmetricFactories(t *testing.T) {
	aes, err := security.Aes(nil)
	require.NoError(t, err)
	require.Len(t, aes.Key(), 16)

	des, err := security.Des(nil)
	require.NoError(t, err)
	require.Len(t, des.Key(), 8)

	plaintext := []byte("Pleases provide as much information that you can.")
	ciphertext, err := aes.Encrypt(plaintext)
	require.NoError(t, err)
	decrypted, err := aes.Decrypt(ciphertext)
	require.NoError(t, err)
	require.Equal(t, plaintext, decrypted)
}

func TestGenerateKey(t *testing.T) {
	_, err := security.GenerateKey("  ", nil)
	require.Error(t, err)

	secretKey, err := security.GenerateKey("AES", nil)
	require.NoError(t, err)
	require.Equal(t, "AES", secretKey.Algorithm())
	require.Len(t, secretKey.Key(), 16)

	given := []byte("0123456789abcdef0123456789abcdef")
	secretKey, err = security.GenerateKey("AES", given)
	require.NoError(t, err)
	require.Equal(t, given, secretKey.Key())

	_, err = security.GenerateKey("AES", []byte("short"))
	require.Error(t, err)

	_, err = security.GenerateKey("SM4", nil)
	require.Error(t, err)
}

func TestGeneratePBEKey(t *testing.T) {
	secretKey, err := security.GenerateKey("PBEWithMD5AndDES", []byte("password"))
	require.NoError(t, err)
	require.Len(t, secretKey.Key(), security.PBEDefaultKeyLength)

	// 盐是随机的，同一口令两次派生出的密钥不同。
	another, err := security.GenerateKey("PBEWithMD5AndDES", []byte("password"))
	require.NoError(t, err)
	require.NotEqual(t, secretKey.Key(), another.Key())

	// 不给口令时随机生成一个，并打出告警日志。
	random, err := security.GenerateKey("PBEWithMD5AndDES", nil)
	require.NoError(t, err)
	require.Len(t, random.Key(), security.PBEDefaultKeyLength)

	_, err = security.GeneratePBEKey("AES", []byte("password"))
	require.Error(t, err)
}

func TestGenerateDESKey(t *testing.T) {
	secretKey, err := security.GenerateKey("DES", nil)
	require.NoError(t, err)
	require.Len(t, secretKey.Key(), 8)

	secretKey, err = security.GenerateKey("DESede", nil)
	require.NoError(t, err)
	require.Len(t, secretKey.Key(), 24)

	_, err = security.GenerateKey("DES", []byte("too long for DES"))
	require.Error(t, err)

	_, err = security.GenerateDESKey("AES", nil)
	require.Error(t, err)
}

func TestSecretKeyReturnsCopy(t *testing.T) {
	secretKey, err := security.GenerateKey("AES", nil)
	require.NoError(t, err)

	key := secretKey.Key()
	key[0] ^= 0xff
	require.NotEqual(t, key[0], secretKey.Key()[0])
}

func TestReadCertificate(t *testing.T) {
	ca, err := certgen.NewCA(256)
	require.NoError(t, err)

	cert, err := security.ReadCertificate("X.509", bytes.NewReader(ca.CertBytes()), "")
	require.NoError(t, err)
	require.Equal(t, ca.X509Cert().Raw, cert.Raw)
}

func TestNewSignature(t *testing.T) {
	keyPair, err := security.GenerateKeyPair("ECDSA", 256, nil)
	require.NoError(t, err)

	signature, err := security.NewSignature("ECDSA", digest.SHA256)
	require.NoError(t, err)
	require.Equal(t, "SHA256withECDSA", signature.Algorithm())

	data := []byte("hello world")
	signed, err := signature.Sign(keyPair.PrivateKey(), data)
	require.NoError(t, err)

	valid, err := signature.Verify(keyPair.PublicKey(), data, signed)
	require.NoError(t, err)
	require.True(t, valid)
}
