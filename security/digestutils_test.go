package security_test

import (
	"bytes"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/miyakowork/template-utils-security/security"
	"github.com/stretchr/testify/require"
)

func TestMd5HexEmptyInput(t *testing.T) {
	require.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", security.Md5BytesHex([]byte("")))

	hexDigest, err := security.Md5StringHex("", "")
	require.NoError(t, err)
	require.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", hexDigest)
}

func TestSha1HexEmptyInput(t *testing.T) {
	require.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", security.Sha1BytesHex([]byte("")))

	hexDigest, err := security.Sha1StringHex("", "")
	require.NoError(t, err)
	require.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", hexDigest)
}

func TestOneShotMatchesDigester(t *testing.T) {
	data := []byte("Pleases provide as much information that you can.")

	require.Equal(t, security.Md5().DigestBytes(data), security.Md5Bytes(data))
	require.Equal(t, security.Sha1().DigestBytes(data), security.Sha1Bytes(data))
	require.Equal(t, security.Sha256().DigestBytesHex(data), security.Sha256BytesHex(data))
	require.Equal(t, security.Sha512().DigestBytesHex(data), security.Sha512BytesHex(data))
}

func TestOneShotStreamAndFile(t *testing.T) {
	data := make([]byte, 10000)
	_, err := rand.Read(data)
	require.NoError(t, err)

	fromStream, err := security.Md5Stream(bytes.NewReader(data), 7)
	require.NoError(t, err)
	require.Equal(t, security.Md5Bytes(data), fromStream)

	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, data, 0600))

	fromFile, err := security.Sha1File(path)
	require.NoError(t, err)
	require.Equal(t, security.Sha1Bytes(data), fromFile)

	hexFromFile, err := security.Sha1FileHex(path)
	require.NoError(t, err)
	require.Equal(t, security.Sha1BytesHex(data), hexFromFile)
}
