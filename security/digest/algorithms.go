package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/miyakowork/template-utils-security/errors"
	"golang.org/x/crypto/sha3"
)

/* ------------------------------------------------------------------------------------------ */

// Algorithm 摘要算法的封闭枚举，算法与哈希函数构造器之间是一一对应的关系，运行时不可变。
type Algorithm string

const (
	MD5      Algorithm = "MD5"
	SHA1     Algorithm = "SHA1"
	SHA256   Algorithm = "SHA256"
	SHA384   Algorithm = "SHA384"
	SHA512   Algorithm = "SHA512"
	SHA3_256 Algorithm = "SHA3_256"
	SHA3_384 Algorithm = "SHA3_384"
)

// NewHashFunc 给定摘要算法，返回对应的哈希函数构造器，无法识别的算法返回错误。
func NewHashFunc(algorithm Algorithm) (func() hash.Hash, error) {
	switch algorithm {
	case MD5:
		return md5.New, nil
	case SHA1:
		return sha1.New, nil
	case SHA256:
		return sha256.New, nil
	case SHA384:
		return sha512.New384, nil
	case SHA512:
		return sha512.New, nil
	case SHA3_256:
		return sha3.New256, nil
	case SHA3_384:
		return sha3.New384, nil
	default:
		return nil, errors.NewErrorf("digest algorithm \"%s\" is not recognized", algorithm)
	}
}

/* ------------------------------------------------------------------------------------------ */

// HmacAlgorithm 带密钥的摘要算法的封闭枚举。
type HmacAlgorithm string

const (
	HmacMD5    HmacAlgorithm = "HmacMD5"
	HmacSHA1   HmacAlgorithm = "HmacSHA1"
	HmacSHA256 HmacAlgorithm = "HmacSHA256"
	HmacSHA512 HmacAlgorithm = "HmacSHA512"
)

func (algorithm HmacAlgorithm) digestAlgorithm() (Algorithm, error) {
	switch algorithm {
	case HmacMD5:
		return MD5, nil
	case HmacSHA1:
		return SHA1, nil
	case HmacSHA256:
		return SHA256, nil
	case HmacSHA512:
		return SHA512, nil
	default:
		return "", errors.NewErrorf("hmac algorithm \"%s\" is not recognized", algorithm)
	}
}
