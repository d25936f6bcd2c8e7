package asymmetric_test

import (
	"fmt"
	"testing"

	"github.com/miyakowork/template-utils-security/security/asymmetric"
	"github.com/miyakowork/template-utils-security/security/digest"
	"github.com/stretchr/testify/require"
)

func TestSignatureAlgorithmName(t *testing.T) {
	signature, err := asymmetric.NewSignature(asymmetric.RSA, digest.SHA256)
	require.NoError(t, err)
	require.Equal(t, "SHA256withRSA", signature.Algorithm())

	signature, err = asymmetric.NewSignature(asymmetric.Ed25519, "")
	require.NoError(t, err)
	require.Equal(t, "NONEwithEd25519", signature.Algorithm())
}

func TestSignatureDigestAlgorithmRequired(t *testing.T) {
	_, err := asymmetric.NewSignature(asymmetric.RSA, "")
	require.Error(t, err)

	_, err = asymmetric.NewSignature(asymmetric.Ed25519, digest.SHA256)
	require.Error(t, err)

	_, err = asymmetric.NewSignature("SM2", digest.SHA256)
	require.Error(t, err)
}

func TestSignVerifyRSA(t *testing.T) {
	keyPair, err := asymmetric.GenerateKeyPair(asymmetric.RSA, 2048, nil)
	require.NoError(t, err)

	signature, err := asymmetric.NewSignature(asymmetric.RSA, digest.SHA256)
	require.NoError(t, err)

	data := []byte("Pleases provide as much information that you can with the issue you're experiencing.")
	signed, err := signature.Sign(keyPair.PrivateKey(), data)
	require.NoError(t, err)
	fmt.Printf("%x\n", signed)

	valid, err := signature.Verify(keyPair.PublicKey(), data, signed)
	require.NoError(t, err)
	require.True(t, valid)

	valid, _ = signature.Verify(keyPair.PublicKey(), append(data, 'x'), signed)
	require.False(t, valid)
}

func TestSignVerifyECDSA(t *testing.T) {
	keyPair, err := asymmetric.GenerateKeyPair(asymmetric.ECDSA, 256, nil)
	require.NoError(t, err)

	signature, err := asymmetric.NewSignature(asymmetric.ECDSA, digest.SHA256)
	require.NoError(t, err)

	data := []byte("hello world")
	signed, err := signature.Sign(keyPair.PrivateKey(), data)
	require.NoError(t, err)

	valid, err := signature.Verify(keyPair.PublicKey(), data, signed)
	require.NoError(t, err)
	require.True(t, valid)

	valid, _ = signature.Verify(keyPair.PublicKey(), []byte("hello morld"), signed)
	require.False(t, valid)
}

func TestSignVerifyDSA(t *testing.T) {
	keyPair, err := asymmetric.GenerateKeyPair(asymmetric.DSA, 1024, nil)
	require.NoError(t, err)

	signature, err := asymmetric.NewSignature(asymmetric.DSA, digest.SHA1)
	require.NoError(t, err)

	data := []byte("hello world")
	signed, err := signature.Sign(keyPair.PrivateKey(), data)
	require.NoError(t, err)

	valid, err := signature.Verify(keyPair.PublicKey(), data, signed)
	require.NoError(t, err)
	require.True(t, valid)
}

func TestSignVerifyEd25519(t *testing.T) {
	keyPair, err := asymmetric.GenerateKeyPair(asymmetric.Ed25519, 0, nil)
	require.NoError(t, err)

	signature, err := asymmetric.NewSignature(asymmetric.Ed25519, "")
	require.NoError(t, err)

	data := []byte("hello world")
	signed, err := signature.Sign(keyPair.PrivateKey(), data)
	require.NoError(t, err)

	valid, err := signature.Verify(keyPair.PublicKey(), data, signed)
	require.NoError(t, err)
	require.True(t, valid)

	valid, err = signature.Verify(keyPair.PublicKey(), []byte("hello morld"), signed)
	require.NoError(t, err)
	require.False(t, valid)
}

func TestSignWithMismatchedKey(t *testing.T) {
	keyPair, err := asymmetric.GenerateKeyPair(asymmetric.ECDSA, 256, nil)
	require.NoError(t, err)

	signature, err := asymmetric.NewSignature(asymmetric.RSA, digest.SHA256)
	require.NoError(t, err)

	_, err = signature.Sign(keyPair.PrivateKey(), []byte("hello"))
	require.Error(t, err)
}
