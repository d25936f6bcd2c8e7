// Package security 提供一套便捷的加解密门面：摘要、HMAC、对称加解密、非对称密钥对、
// 签名与密钥库加载的一站式工厂函数。重活都交给 Go 的标准密码库去做。
package security

import (
	"crypto/sha256"
	"crypto/x509"
	"io"
	"strings"

	"github.com/miyakowork/template-utils-security/common/mlog"
	"github.com/miyakowork/template-utils-security/errors"
	"github.com/miyakowork/template-utils-security/security/asymmetric"
	"github.com/miyakowork/template-utils-security/security/digest"
	"github.com/miyakowork/template-utils-security/security/keystore"
	"github.com/miyakowork/template-utils-security/security/symmetric"
	"github.com/miyakowork/template-utils-security/security/utils"
	"golang.org/x/crypto/pbkdf2"
)

var logger = mlog.GetLogger("security", mlog.WarnLevel)

/* ------------------------------------------------------------------------------------------ */

const (
	// PBEDefaultSaltLength 是派生 PBE 密钥时随机盐的字节数。
	PBEDefaultSaltLength = 8
	// PBEDefaultIterations 是 PBKDF2 的迭代次数。
	PBEDefaultIterations = 2048
	// PBEDefaultKeyLength 是派生出的 PBE 密钥的字节数。
	PBEDefaultKeyLength = 32
	// PBEDefaultPasswordLength 是省略口令时随机生成的口令的字符数。
	PBEDefaultPasswordLength = 32
)

// SecretKey 一把对称密钥及其算法名。
type SecretKey struct {
	algorithm string
	key       []byte
}

func (sk *SecretKey) Algorithm() string {
	return sk.algorithm
}

// Key 返回密钥材料的副本。
func (sk *SecretKey) Key() []byte {
	key := make([]byte, len(sk.key))
	copy(key, sk.key)
	return key
}

/* ------------------------------------------------------------------------------------------ */

// Md5 创建一个 MD5 摘要器。
func Md5() *digest.Digester {
	digester, _ := digest.NewDigester(digest.MD5)
	return digester
}

// Sha1 创建一个 SHA-1 摘要器。
func Sha1() *digest.Digester {
	digester, _ := digest.NewDigester(digest.SHA1)
	return digester
}

// Sha256 创建一个 SHA-256 摘要器。
func Sha256() *digest.Digester {
	digester, _ := digest.NewDigester(digest.SHA256)
	return digester
}

// Sha512 创建一个 SHA-512 摘要器。
func Sha512() *digest.Digester {
	digester, _ := digest.NewDigester(digest.SHA512)
	return digester
}

// HmacMd5 创建一个 HMAC-MD5 摘要器，key 为 nil 时生成随机密钥。
func HmacMd5(key []byte) *digest.HMac {
	mac, _ := digest.NewHMac(digest.HmacMD5, key)
	return mac
}

// HmacSha1 创建一个 HMAC-SHA1 摘要器，key 为 nil 时生成随机密钥。
func HmacSha1(key []byte) *digest.HMac {
	mac, _ := digest.NewHMac(digest.HmacSHA1, key)
	return mac
}

// Aes 创建一个 AES 加解密器，key 为 nil 时生成随机密钥。
func Aes(key []byte) (*symmetric.Cryptor, error) {
	return symmetric.NewCryptor(symmetric.AES, key)
}

// Des 创建一个 DES 加解密器，key 为 nil 时生成随机密钥。
func Des(key []byte) (*symmetric.Cryptor, error) {
	return symmetric.NewCryptor(symmetric.DES, key)
}

/* ------------------------------------------------------------------------------------------ */

// GenerateKey 为给定算法生成一把对称密钥。key 为 nil 时随机生成，否则校验后直接采用。
// 算法名以 "PBE" 开头时走基于口令的密钥派生路径，以 "DES" 开头时校验 DES 系密钥长度。
func GenerateKey(algorithm string, key []byte) (*SecretKey, error) {
	if strings.TrimSpace(algorithm) == "" {
		return nil, errors.NewError("failed generating key, the algorithm must not be blank")
	}

	upper := strings.ToUpper(algorithm)
	switch {
	case strings.HasPrefix(upper, "PBE"):
		return GeneratePBEKey(algorithm, key)
	case strings.HasPrefix(upper, "DES"):
		return GenerateDESKey(algorithm, key)
	}

	symAlgorithm := symmetric.Algorithm(algorithm)
	if key == nil {
		length, err := symmetric.DefaultKeyLength(symAlgorithm)
		if err != nil {
			return nil, errors.NewErrorf("failed generating key, the error is \"%s\"", err.Error())
		}
		if key, err = utils.GetRandomBytes(length); err != nil {
			return nil, errors.NewErrorf("failed generating key, the error is \"%s\"", err.Error())
		}
	}
	if err := symmetric.ValidateKey(symAlgorithm, key); err != nil {
		return nil, errors.NewErrorf("failed generating key, the error is \"%s\"", err.Error())
	}
	return &SecretKey{algorithm: algorithm, key: key}, nil
}

// GeneratePBEKey 用 PBKDF2 从口令派生一把密钥，盐是随机的。password 为 nil 时随机
// 生成一个口令，这会让派生出的密钥无法复现，仅适合当作一次性密钥使用。
func GeneratePBEKey(algorithm string, password []byte) (*SecretKey, error) {
	if !strings.HasPrefix(strings.ToUpper(algorithm), "PBE") {
		return nil, errors.NewErrorf("failed generating PBE key, want an algorithm with \"PBE\" prefix, but got \"%s\"", algorithm)
	}
	if password == nil {
		logger.Warnf("generating PBE key for \"%s\" with a random password, the derived key cannot be reproduced", algorithm)
		random, err := utils.RandomString("0123456789abcdefghijklmnopqrstuvwxyz", PBEDefaultPasswordLength)
		if err != nil {
			return nil, errors.NewErrorf("failed generating PBE key, the error is \"%s\"", err.Error())
		}
		password = []byte(random)
	}
	salt, err := utils.GetRandomBytes(PBEDefaultSaltLength)
	if err != nil {
		return nil, errors.NewErrorf("failed generating PBE key, the error is \"%s\"", err.Error())
	}
	key := pbkdf2.Key(password, salt, PBEDefaultIterations, PBEDefaultKeyLength, sha256.New)
	return &SecretKey{algorithm: algorithm, key: key}, nil
}

// GenerateDESKey 生成或校验一把 DES 系密钥，支持 "DES" 和 "DESede"。
func GenerateDESKey(algorithm string, key []byte) (*SecretKey, error) {
	upper := strings.ToUpper(algorithm)
	var symAlgorithm symmetric.Algorithm
	switch upper {
	case "DES":
		symAlgorithm = symmetric.DES
	case "DESEDE", "TRIPLEDES", "3DES":
		symAlgorithm = symmetric.TripleDES
	default:
		return nil, errors.NewErrorf("failed generating DES key, unsupported algorithm \"%s\"", algorithm)
	}
	if key == nil {
		length, err := symmetric.DefaultKeyLength(symAlgorithm)
		if err != nil {
			return nil, errors.NewErrorf("failed generating DES key, the error is \"%s\"", err.Error())
		}
		if key, err = utils.GetRandomBytes(length); err != nil {
			return nil, errors.NewErrorf("failed generating DES key, the error is \"%s\"", err.Error())
		}
	}
	if err := symmetric.ValidateKey(symAlgorithm, key); err != nil {
		return nil, errors.NewErrorf("failed generating DES key, the error is \"%s\"", err.Error())
	}
	return &SecretKey{algorithm: algorithm, key: key}, nil
}

/* ------------------------------------------------------------------------------------------ */

// GenerateKeyPair 为给定的非对称算法生成密钥对。keySize 非正时取默认的 1024，seed 非 nil
// 时用它驱动确定性的随机源，可复现性只对 Ed25519 和 DSA 有保证。
func GenerateKeyPair(algorithm string, keySize int, seed []byte) (*asymmetric.KeyPair, error) {
	return asymmetric.GenerateKeyPair(asymmetric.Algorithm(algorithm), keySize, seed)
}

// GeneratePrivateKey 从 PKCS#8 DER 编码的字节中解析出给定算法的私钥。
func GeneratePrivateKey(algorithm string, der []byte) (interface{}, error) {
	return asymmetric.ParsePKCS8PrivateKey(asymmetric.Algorithm(algorithm), der)
}

// GeneratePublicKey 从 PKIX DER 编码的字节中解析出给定算法的公钥。
func GeneratePublicKey(algorithm string, der []byte) (interface{}, error) {
	return asymmetric.ParsePKIXPublicKey(asymmetric.Algorithm(algorithm), der)
}

/* ------------------------------------------------------------------------------------------ */

// ReadKeyStore 从 in 中读出给定类型的密钥库，目前支持 PKCS#12。
func ReadKeyStore(typ string, in io.Reader, password string) (*keystore.KeyStore, error) {
	return keystore.ReadKeyStore(typ, in, password)
}

// ReadPKCS12KeyStore 从 in 中读出 PKCS#12 密钥库。
func ReadPKCS12KeyStore(in io.Reader, password string) (*keystore.KeyStore, error) {
	return keystore.ReadPKCS12KeyStore(in, password)
}

// PrivateKeyFromKeyStore 从密钥库中取出私钥，password 用于解锁密钥库。
func PrivateKeyFromKeyStore(typ string, in io.Reader, password string) (interface{}, error) {
	ks, err := keystore.ReadKeyStore(typ, in, password)
	if err != nil {
		return nil, err
	}
	return ks.PrivateKey(), nil
}

// ReadCertificate 从 in 中读出给定类型的证书，目前支持 X.509，PEM 或 DER 编码均可。
// password 参数是为对齐密钥库加载的签名而保留的，X.509 证书本身不加密，不会用到它。
func ReadCertificate(typ string, in io.Reader, _ string) (*x509.Certificate, error) {
	return keystore.ReadCertificate(typ, in)
}

// ReadX509Certificate 从 in 中读出 X.509 证书，PEM 或 DER 编码均可。
func ReadX509Certificate(in io.Reader) (*x509.Certificate, error) {
	return keystore.ReadX509Certificate(in)
}

/* ------------------------------------------------------------------------------------------ */

// NewSignature 按摘要算法与非对称算法组合出一个签名器，算法名形如 "SHA256withECDSA"，
// 摘要算法为空时记作 "NONE"。
func NewSignature(asymmetricAlgorithm asymmetric.Algorithm, digestAlgorithm digest.Algorithm) (*asymmetric.Signature, error) {
	return asymmetric.NewSignature(asymmetricAlgorithm, digestAlgorithm)
}
