package symmetric

import (
	"bytes"
	"crypto/cipher"

	"github.com/miyakowork/template-utils-security/errors"
	"github.com/miyakowork/template-utils-security/security/utils"
)

/* ------------------------------------------------------------------------------------------ */

// Cryptor 对称加解密器，采用 CBC 分组模式和 PKCS#7 填充，加密时随机生成的初始向量被放在
// 密文的最前面，解密时从密文前面取回初始向量，因此解密只需要相同的密钥。
// 注意：Cryptor 实例不是并发安全的。
type Cryptor struct {
	algorithm Algorithm
	key       []byte
}

// NewCryptor 创建对称加解密器，key 为 nil 时随机生成一个密钥，之后可以通过 Key 方法拿到该密钥。
// 解密时必须使用相同的密钥。
func NewCryptor(algorithm Algorithm, key []byte) (*Cryptor, error) {
	if key == nil {
		length, err := DefaultKeyLength(algorithm)
		if err != nil {
			return nil, err
		}
		if key, err = utils.GetRandomBytes(length); err != nil {
			return nil, errors.NewErrorf("cannot generate random key for \"%s\", the error is \"%s\"", algorithm, err.Error())
		}
	} else if err := validateKeyLength(algorithm, len(key)); err != nil {
		return nil, err
	}

	return &Cryptor{
		algorithm: algorithm,
		key:       key,
	}, nil
}

func (c *Cryptor) Algorithm() Algorithm {
	return c.algorithm
}

// Key 返回密钥的拷贝，密钥的处置由调用者负责。
func (c *Cryptor) Key() []byte {
	cpy := make([]byte, len(c.key))
	copy(cpy, c.key)
	return cpy
}

// Encrypt 加密明文，随机生成初始向量并放在密文的最前面。
func (c *Cryptor) Encrypt(plaintext []byte) ([]byte, error) {
	block, err := newBlockCipher(c.algorithm, c.key)
	if err != nil {
		return nil, err
	}

	iv, err := utils.GetRandomBytes(block.BlockSize())
	if err != nil {
		return nil, errors.NewErrorf("failed get initial vector, the error is \"%s\"", err.Error())
	}

	return encryptWithIV(block, iv, plaintext)
}

// EncryptWithIV 用调用者指定的初始向量加密明文，初始向量的长度必须等于分组长度。
func (c *Cryptor) EncryptWithIV(iv, plaintext []byte) ([]byte, error) {
	block, err := newBlockCipher(c.algorithm, c.key)
	if err != nil {
		return nil, err
	}

	return encryptWithIV(block, iv, plaintext)
}

// Decrypt 解密密文，初始向量从密文的最前面取回。
func (c *Cryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	block, err := newBlockCipher(c.algorithm, c.key)
	if err != nil {
		return nil, err
	}

	blockSize := block.BlockSize()
	if len(ciphertext) < 2*blockSize {
		return nil, errors.NewErrorf("invalid ciphertext, the length of the ciphertext must be at least \"%d\"", 2*blockSize)
	}

	iv := ciphertext[:blockSize]
	ciphertext = ciphertext[blockSize:]

	if len(ciphertext)%blockSize != 0 {
		return nil, errors.NewErrorf("invalid ciphertext, the length of the ciphertext must be multiple of \"%d\"", blockSize)
	}

	plaintext := make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(block, iv)
	mode.CryptBlocks(plaintext, ciphertext)

	return pkcs7UnPadding(plaintext, blockSize)
}

/* ------------------------------------------------------------------------------------------ */

func encryptWithIV(block cipher.Block, iv, plaintext []byte) ([]byte, error) {
	blockSize := block.BlockSize()

	if len(iv) != blockSize {
		return nil, errors.NewErrorf("the length of the initial vector must be \"%d\"", blockSize)
	}

	plaintext = pkcs7Padding(plaintext, blockSize)

	ciphertext := make([]byte, blockSize+len(plaintext))
	copy(ciphertext[:blockSize], iv)

	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(ciphertext[blockSize:], plaintext)

	return ciphertext, nil
}

// pkcs7Padding 补全字节切片，使其长度达到分组长度的倍数。
func pkcs7Padding(src []byte, blockSize int) []byte {
	padding := blockSize - len(src)%blockSize
	padtext := bytes.Repeat([]byte{byte(padding)}, padding)
	return append(src, padtext...)
}

func pkcs7UnPadding(src []byte, blockSize int) ([]byte, error) {
	size := len(src)
	if size == 0 {
		return nil, errors.NewError("invalid padded data, nil data")
	}
	padding := int(src[size-1])

	if padding > blockSize || padding == 0 {
		return nil, errors.NewErrorf("the padded byte should be less than %d and larger than 0", blockSize)
	}

	pad := src[size-padding:]
	for i := 0; i < padding; i++ {
		if pad[i] != byte(padding) {
			return nil, errors.NewErrorf("invalid padding, pad[%d] != %d", i, padding)
		}
	}

	return src[:size-padding], nil
}
