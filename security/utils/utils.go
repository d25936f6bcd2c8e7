package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/binary"
	"encoding/pem"
	"io"
	"math/big"

	"github.com/miyakowork/template-utils-security/errors"
)

/* ------------------------------------------------------------------------------------------ */

// PRIVATE KEY / PUBLIC KEY

// PrivateKeyToPEM 将私钥（RSA、ECDSA、Ed25519）序列化成 PKCS#8 编码的 PEM 格式字节切片。
func PrivateKeyToPEM(privateKey interface{}) ([]byte, error) {
	if privateKey == nil {
		return nil, errors.NewError("invalid private key, nil private key")
	}

	der, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, errors.NewErrorf("failed marshaling private key, the error is \"%s\"", err.Error())
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

func PEMToPrivateKey(raw []byte) (interface{}, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.NewError("failed decoding PEM")
	}

	return DerToPrivateKey(block.Bytes)
}

func DerToPrivateKey(der []byte) (interface{}, error) {
	if len(der) == 0 {
		return nil, errors.NewError("invalid der bytes, nil der bytes")
	}

	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, errors.NewErrorf("failed parsing PKCS#8 private key, the error is \"%s\"", err.Error())
	}
	return key, nil
}

func PublicKeyToPEM(publicKey interface{}) ([]byte, error) {
	if publicKey == nil {
		return nil, errors.NewError("invalid public key, nil public key")
	}

	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return nil, errors.NewErrorf("failed marshaling public key, the error is \"%s\"", err.Error())
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

func PEMToPublicKey(raw []byte) (interface{}, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.NewError("failed decoding PEM")
	}

	return DerToPublicKey(block.Bytes)
}

func DerToPublicKey(der []byte) (interface{}, error) {
	if len(der) == 0 {
		return nil, errors.NewError("invalid der bytes, nil der bytes")
	}

	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, errors.NewErrorf("failed parsing PKIX public key, the error is \"%s\"", err.Error())
	}
	return key, nil
}

/* ------------------------------------------------------------------------------------------ */

// SYMMETRIC KEY

// SymmetricKeyToPEM 将对称密钥封装成 PEM 格式，PEM 块的类型形如 "AES PRIVATE KEY"。
func SymmetricKeyToPEM(algorithm string, raw []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: algorithm + " PRIVATE KEY", Bytes: raw})
}

func PEMToSymmetricKey(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, errors.NewError("invalid PEM, nil PEM")
	}

	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.NewError("failed decoding PEM")
	}

	return block.Bytes, nil
}

/* ------------------------------------------------------------------------------------------ */

func GetRandomBytes(size int) ([]byte, error) {
	if size <= 0 {
		return nil, errors.NewError("the size of the random bytes must be larger than 0")
	}

	buffer := make([]byte, size)

	n, err := rand.Read(buffer)
	if err != nil {
		return nil, errors.NewErrorf("cannot generate random bytes, the error is \"%s\"", err.Error())
	}

	if n != size {
		return nil, errors.NewErrorf("want to generate \"%d\" bytes, but got \"%d\"", size, n)
	}

	return buffer, nil
}

// RandomString 从样本 base 中随机选取 length 个字符拼成字符串。
func RandomString(base string, length int) (string, error) {
	if len(base) == 0 {
		return "", errors.NewError("invalid base, nil base")
	}
	if length < 1 {
		length = 1
	}

	result := make([]byte, length)
	max := big.NewInt(int64(len(base)))
	for i := 0; i < length; i++ {
		index, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.NewErrorf("cannot generate random string, the error is \"%s\"", err.Error())
		}
		result[i] = base[index.Int64()]
	}
	return string(result), nil
}

/* ------------------------------------------------------------------------------------------ */

// seedReader 基于 HMAC-SHA256 计数器产生确定性的字节流，相同的种子产生相同的字节序列。
type seedReader struct {
	seed    []byte
	counter uint64
	buffer  []byte
}

func NewSeedReader(seed []byte) io.Reader {
	cpy := make([]byte, len(seed))
	copy(cpy, seed)
	return &seedReader{seed: cpy}
}

func (r *seedReader) Read(p []byte) (int, error) {
	for len(r.buffer) < len(p) {
		var block [8]byte
		binary.BigEndian.PutUint64(block[:], r.counter)
		r.counter++

		mac := hmac.New(sha256.New, r.seed)
		mac.Write(block[:])
		r.buffer = append(r.buffer, mac.Sum(nil)...)
	}

	n := copy(p, r.buffer)
	r.buffer = r.buffer[n:]
	return n, nil
}
