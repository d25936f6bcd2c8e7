package asymmetric

import (
	"crypto/dsa"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"io"

	"github.com/miyakowork/template-utils-security/errors"
	"github.com/miyakowork/template-utils-security/security/utils"
)

/* ------------------------------------------------------------------------------------------ */

// Algorithm 非对称加密算法的封闭枚举。
type Algorithm string

const (
	RSA     Algorithm = "RSA"
	DSA     Algorithm = "DSA"
	ECDSA   Algorithm = "ECDSA"
	Ed25519 Algorithm = "Ed25519"
)

// DefaultKeySize 默认的密钥模长度。RSA/DSA 的 keySize 必须是 64 的倍数，取值范围 [512, 1024]。
const DefaultKeySize = 1024

/* ------------------------------------------------------------------------------------------ */

// KeyPair 一对公私钥，所有权在返回后转移给调用者。
type KeyPair struct {
	algorithm  Algorithm
	privateKey interface{}
	publicKey  interface{}
}

func (kp *KeyPair) Algorithm() Algorithm {
	return kp.algorithm
}

func (kp *KeyPair) PrivateKey() interface{} {
	return kp.privateKey
}

func (kp *KeyPair) PublicKey() interface{} {
	return kp.publicKey
}

/* ------------------------------------------------------------------------------------------ */

// GenerateKeyPair 生成非对称加密的公私钥对。keySize 小于等于 0 时使用 DefaultKeySize 作为
// 默认值；对 ECDSA 来说 keySize 选择曲线（256/384/521）；Ed25519 忽略 keySize。
//
// seed 不为 nil 时，用种子构造确定性的随机字节流来生成密钥。相同种子产生相同密钥这一性质
// 只对 Ed25519 和 DSA 成立，Go 的 rsa/ecdsa 生成器会故意以不确定的方式消耗随机流。
func GenerateKeyPair(algorithm Algorithm, keySize int, seed []byte) (*KeyPair, error) {
	if keySize <= 0 {
		keySize = DefaultKeySize
	}

	var random io.Reader = rand.Reader
	if seed != nil {
		random = utils.NewSeedReader(seed)
	}

	switch algorithm {
	case RSA:
		privateKey, err := rsa.GenerateKey(random, keySize)
		if err != nil {
			return nil, errors.NewErrorf("failed generating RSA key pair, the error is \"%s\"", err.Error())
		}
		return &KeyPair{algorithm: algorithm, privateKey: privateKey, publicKey: &privateKey.PublicKey}, nil
	case DSA:
		var sizes dsa.ParameterSizes
		switch keySize {
		case 1024:
			sizes = dsa.L1024N160
		case 2048:
			sizes = dsa.L2048N256
		case 3072:
			sizes = dsa.L3072N256
		default:
			return nil, errors.NewErrorf("invalid DSA key size, the supported sizes contain [1024, 2048, 3072], but got \"%d\"", keySize)
		}

		privateKey := &dsa.PrivateKey{}
		if err := dsa.GenerateParameters(&privateKey.Parameters, random, sizes); err != nil {
			return nil, errors.NewErrorf("failed generating DSA parameters, the error is \"%s\"", err.Error())
		}
		if err := dsa.GenerateKey(privateKey, random); err != nil {
			return nil, errors.NewErrorf("failed generating DSA key pair, the error is \"%s\"", err.Error())
		}
		return &KeyPair{algorithm: algorithm, privateKey: privateKey, publicKey: &privateKey.PublicKey}, nil
	case ECDSA:
		var curve elliptic.Curve
		switch keySize {
		case 256, DefaultKeySize:
			curve = elliptic.P256()
		case 384:
			curve = elliptic.P384()
		case 521:
			curve = elliptic.P521()
		default:
			return nil, errors.NewErrorf("invalid ECDSA key size, the supported sizes contain [256, 384, 521], but got \"%d\"", keySize)
		}

		privateKey, err := ecdsa.GenerateKey(curve, random)
		if err != nil {
			return nil, errors.NewErrorf("failed generating ECDSA key pair, the error is \"%s\"", err.Error())
		}
		return &KeyPair{algorithm: algorithm, privateKey: privateKey, publicKey: &privateKey.PublicKey}, nil
	case Ed25519:
		publicKey, privateKey, err := ed25519.GenerateKey(random)
		if err != nil {
			return nil, errors.NewErrorf("failed generating Ed25519 key pair, the error is \"%s\"", err.Error())
		}
		return &KeyPair{algorithm: algorithm, privateKey: privateKey, publicKey: publicKey}, nil
	default:
		return nil, errors.NewErrorf("asymmetric algorithm \"%s\" is not recognized", algorithm)
	}
}

/* ------------------------------------------------------------------------------------------ */

// ParsePKCS8PrivateKey 解析 PKCS#8 编码的私钥，并校验解析出来的私钥与声明的算法一致。
func ParsePKCS8PrivateKey(algorithm Algorithm, der []byte) (interface{}, error) {
	key, err := utils.DerToPrivateKey(der)
	if err != nil {
		return nil, err
	}

	if err = checkKeyAlgorithm(algorithm, key); err != nil {
		return nil, err
	}
	return key, nil
}

// ParsePKIXPublicKey 解析 X.509/PKIX 编码的公钥，并校验解析出来的公钥与声明的算法一致。
func ParsePKIXPublicKey(algorithm Algorithm, der []byte) (interface{}, error) {
	key, err := utils.DerToPublicKey(der)
	if err != nil {
		return nil, err
	}

	if err = checkKeyAlgorithm(algorithm, key); err != nil {
		return nil, err
	}
	return key, nil
}

func checkKeyAlgorithm(algorithm Algorithm, key interface{}) error {
	var actual Algorithm
	switch key.(type) {
	case *rsa.PrivateKey, *rsa.PublicKey:
		actual = RSA
	case *dsa.PrivateKey, *dsa.PublicKey:
		actual = DSA
	case *ecdsa.PrivateKey, *ecdsa.PublicKey:
		actual = ECDSA
	case ed25519.PrivateKey, ed25519.PublicKey:
		actual = Ed25519
	default:
		return errors.NewErrorf("the parsed key type \"%T\" is not recognized", key)
	}

	if actual != algorithm {
		return errors.NewErrorf("the parsed key belongs to \"%s\", but the declared algorithm is \"%s\"", actual, algorithm)
	}
	return nil
}
