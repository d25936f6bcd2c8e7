// Package provider 把摘要、HMAC、对称加解密、签名验签和密钥存取汇聚到一个 Suite 上，
// 按算法名分发到各个基础件，并对每次操作计数。
package provider

import (
	"io"

	"github.com/miyakowork/template-utils-security/common/metrics"
	"github.com/miyakowork/template-utils-security/errors"
	"github.com/miyakowork/template-utils-security/security"
	"github.com/miyakowork/template-utils-security/security/asymmetric"
	"github.com/miyakowork/template-utils-security/security/digest"
	"github.com/miyakowork/template-utils-security/security/keystore"
	"github.com/miyakowork/template-utils-security/security/symmetric"
)

/* ------------------------------------------------------------------------------------------ */

// KeyStore 是 Suite 存取密钥所依赖的仓库。
type KeyStore interface {
	ReadOnly() bool
	StoreSymmetricKey(algorithm string, key []byte) ([]byte, error)
	StorePrivateKey(privateKey interface{}) ([]byte, error)
	StorePublicKey(publicKey interface{}) ([]byte, error)
	GetKey(ski []byte) (interface{}, error)
}

var operationCounterOpts = metrics.CounterOpts{
	Namespace:    "security",
	Subsystem:    "suite",
	Name:         "operations",
	Help:         "The number of crypto operations performed, partitioned by operation and algorithm.",
	LabelNames:   []string{"operation", "algorithm"},
	StatsdFormat: "%{#fqname}.%{operation}.%{algorithm}",
}

// Suite 一套组合好的加解密服务。Suite 自身无状态，方法可以并发调用，每次调用都
// 构造新的基础件。
type Suite struct {
	keyStore         KeyStore
	bufferLength     int
	operationCounter metrics.Counter
}

// NewSuite 创建 Suite。keyStore 不能为 nil，bufferLength 非正时取摘要器的默认值，
// metricsProvider 为 nil 时不产生任何度量。
func NewSuite(keyStore KeyStore, bufferLength int, metricsProvider metrics.Provider) (*Suite, error) {
	if keyStore == nil {
		return nil, errors.NewError("invalid key store, nil key store")
	}
	if bufferLength <= 0 {
		bufferLength = digest.DefaultBufferLength
	}

	suite := &Suite{
		keyStore:     keyStore,
		bufferLength: bufferLength,
	}
	if metricsProvider != nil {
		suite.operationCounter = metricsProvider.NewCounter(operationCounterOpts)
	}
	return suite, nil
}

func (s *Suite) count(operation string, algorithm string) {
	if s.operationCounter == nil {
		return
	}
	s.operationCounter.With("operation", operation, "algorithm", algorithm).Add(1)
}

/* ------------------------------------------------------------------------------------------ */

// Digest 用给定的摘要算法计算 data 的摘要。
func (s *Suite) Digest(algorithm digest.Algorithm, data []byte) ([]byte, error) {
	digester, err := digest.NewDigester(algorithm)
	if err != nil {
		return nil, err
	}
	s.count("digest", string(algorithm))
	return digester.DigestBytes(data), nil
}

// DigestHex 用给定的摘要算法计算 data 的摘要并编码成小写十六进制字符串。
func (s *Suite) DigestHex(algorithm digest.Algorithm, data []byte) (string, error) {
	digester, err := digest.NewDigester(algorithm)
	if err != nil {
		return "", err
	}
	s.count("digest", string(algorithm))
	return digester.DigestBytesHex(data), nil
}

// DigestStream 用给定的摘要算法分块读取数据流并计算摘要，分块大小取 Suite 的配置。
func (s *Suite) DigestStream(algorithm digest.Algorithm, data io.Reader) ([]byte, error) {
	digester, err := digest.NewDigester(algorithm)
	if err != nil {
		return nil, err
	}
	s.count("digest", string(algorithm))
	return digester.DigestStream(data, s.bufferLength)
}

// Hmac 用给定的 HMAC 算法和密钥计算 data 的消息认证码。
func (s *Suite) Hmac(algorithm digest.HmacAlgorithm, key, data []byte) ([]byte, error) {
	mac, err := digest.NewHMac(algorithm, key)
	if err != nil {
		return nil, err
	}
	s.count("hmac", string(algorithm))
	return mac.DigestBytes(data), nil
}

/* ------------------------------------------------------------------------------------------ */

// Encrypt 用给定的对称算法和密钥加密明文，密文前缀携带随机 IV。
func (s *Suite) Encrypt(algorithm symmetric.Algorithm, key, plaintext []byte) ([]byte, error) {
	cryptor, err := symmetric.NewCryptor(algorithm, key)
	if err != nil {
		return nil, err
	}
	s.count("encrypt", string(algorithm))
	return cryptor.Encrypt(plaintext)
}

// Decrypt 用给定的对称算法和密钥解密密文。
func (s *Suite) Decrypt(algorithm symmetric.Algorithm, key, ciphertext []byte) ([]byte, error) {
	cryptor, err := symmetric.NewCryptor(algorithm, key)
	if err != nil {
		return nil, err
	}
	s.count("decrypt", string(algorithm))
	return cryptor.Decrypt(ciphertext)
}

/* ------------------------------------------------------------------------------------------ */

// Sign 用给定的非对称算法与摘要算法的组合对 data 签名。
func (s *Suite) Sign(asymmetricAlgorithm asymmetric.Algorithm, digestAlgorithm digest.Algorithm, privateKey interface{}, data []byte) ([]byte, error) {
	signature, err := asymmetric.NewSignature(asymmetricAlgorithm, digestAlgorithm)
	if err != nil {
		return nil, err
	}
	s.count("sign", signature.Algorithm())
	return signature.Sign(privateKey, data)
}

// Verify 用给定的非对称算法与摘要算法的组合验证 data 的签名。
func (s *Suite) Verify(asymmetricAlgorithm asymmetric.Algorithm, digestAlgorithm digest.Algorithm, publicKey interface{}, data, sig []byte) (bool, error) {
	signature, err := asymmetric.NewSignature(asymmetricAlgorithm, digestAlgorithm)
	if err != nil {
		return false, err
	}
	s.count("verify", signature.Algorithm())
	return signature.Verify(publicKey, data, sig)
}

/* ------------------------------------------------------------------------------------------ */

// GenerateKey 生成给定算法的对称密钥并存入密钥库，返回密钥及其 SKI。
func (s *Suite) GenerateKey(algorithm string) (*security.SecretKey, []byte, error) {
	secretKey, err := security.GenerateKey(algorithm, nil)
	if err != nil {
		return nil, nil, err
	}
	ski, err := s.keyStore.StoreSymmetricKey(secretKey.Algorithm(), secretKey.Key())
	if err != nil {
		return nil, nil, err
	}
	s.count("keygen", algorithm)
	return secretKey, ski, nil
}

// GenerateKeyPair 生成给定算法的密钥对并把私钥与公钥都存入密钥库，返回密钥对和
// 私钥的 SKI。
func (s *Suite) GenerateKeyPair(algorithm string, keySize int) (*asymmetric.KeyPair, []byte, error) {
	keyPair, err := asymmetric.GenerateKeyPair(asymmetric.Algorithm(algorithm), keySize, nil)
	if err != nil {
		return nil, nil, err
	}
	ski, err := s.keyStore.StorePrivateKey(keyPair.PrivateKey())
	if err != nil {
		return nil, nil, err
	}
	if _, err = s.keyStore.StorePublicKey(keyPair.PublicKey()); err != nil {
		return nil, nil, err
	}
	s.count("keygen", algorithm)
	return keyPair, ski, nil
}

// StoreKey 把一把对称密钥存入密钥库，返回它的 SKI。
func (s *Suite) StoreKey(secretKey *security.SecretKey) ([]byte, error) {
	if secretKey == nil {
		return nil, errors.NewError("invalid key, nil key")
	}
	s.count("storekey", secretKey.Algorithm())
	return s.keyStore.StoreSymmetricKey(secretKey.Algorithm(), secretKey.Key())
}

// GetKey 按 SKI 从密钥库中取出密钥。
func (s *Suite) GetKey(ski []byte) (interface{}, error) {
	s.count("getkey", "")
	return s.keyStore.GetKey(ski)
}

/* ------------------------------------------------------------------------------------------ */

// ReadKeyStore 从数据流中读出密钥库，委托给 keystore 包。
func (s *Suite) ReadKeyStore(typ string, in io.Reader, password string) (*keystore.KeyStore, error) {
	s.count("readkeystore", typ)
	return keystore.ReadKeyStore(typ, in, password)
}
