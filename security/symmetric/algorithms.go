package symmetric

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"

	"github.com/miyakowork/template-utils-security/errors"
)

/* ------------------------------------------------------------------------------------------ */

// Algorithm 对称加密算法的封闭枚举。
type Algorithm string

const (
	AES       Algorithm = "AES"
	DES       Algorithm = "DES"
	TripleDES Algorithm = "DESede"
)

// DefaultKeyLength 未提供密钥时随机生成的密钥的字节数。
func DefaultKeyLength(algorithm Algorithm) (int, error) {
	switch algorithm {
	case AES:
		return 16, nil
	case DES:
		return 8, nil
	case TripleDES:
		return 24, nil
	default:
		return 0, errors.NewErrorf("symmetric algorithm \"%s\" is not recognized", algorithm)
	}
}

// ValidateKey 校验密钥长度是否与算法匹配。
func ValidateKey(algorithm Algorithm, key []byte) error {
	return validateKeyLength(algorithm, len(key))
}

func validateKeyLength(algorithm Algorithm, length int) error {
	switch algorithm {
	case AES:
		if length != 16 && length != 24 && length != 32 {
			return errors.NewErrorf("invalid AES key, the length of the key must be 16, 24 or 32, but got \"%d\"", length)
		}
	case DES:
		if length != 8 {
			return errors.NewErrorf("invalid DES key, the length of the key must be 8, but got \"%d\"", length)
		}
	case TripleDES:
		if length != 24 {
			return errors.NewErrorf("invalid DESede key, the length of the key must be 24, but got \"%d\"", length)
		}
	default:
		return errors.NewErrorf("symmetric algorithm \"%s\" is not recognized", algorithm)
	}
	return nil
}

func newBlockCipher(algorithm Algorithm, key []byte) (cipher.Block, error) {
	switch algorithm {
	case AES:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, errors.NewErrorf("cannot create AES cipher, the error is \"%s\"", err.Error())
		}
		return block, nil
	case DES:
		block, err := des.NewCipher(key)
		if err != nil {
			return nil, errors.NewErrorf("cannot create DES cipher, the error is \"%s\"", err.Error())
		}
		return block, nil
	case TripleDES:
		block, err := des.NewTripleDESCipher(key)
		if err != nil {
			return nil, errors.NewErrorf("cannot create DESede cipher, the error is \"%s\"", err.Error())
		}
		return block, nil
	default:
		return nil, errors.NewErrorf("symmetric algorithm \"%s\" is not recognized", algorithm)
	}
}
