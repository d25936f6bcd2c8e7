package asymmetric

import (
	"crypto"
	"crypto/dsa"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"encoding/asn1"
	"math/big"

	"github.com/miyakowork/template-utils-security/errors"
	"github.com/miyakowork/template-utils-security/security/digest"
)

/* ------------------------------------------------------------------------------------------ */

// Signature 签名器，算法名由摘要算法和非对称算法拼接而成，形如 "SHA1withRSA"，
// 未指定摘要算法时摘要部分为 "NONE"（只有 Ed25519 支持）。
type Signature struct {
	name            string
	asymmetric      Algorithm
	digestAlgorithm digest.Algorithm
	hash            crypto.Hash
}

// NewSignature 创建签名器。digestAlgorithm 为空字符串表示不做预摘要（"NONE"）。
// RSA/DSA/ECDSA 必须指定摘要算法，Ed25519 必须不指定。
func NewSignature(asymmetric Algorithm, digestAlgorithm digest.Algorithm) (*Signature, error) {
	digestPart := "NONE"
	var hashID crypto.Hash

	if digestAlgorithm != "" {
		digestPart = string(digestAlgorithm)
		var err error
		if hashID, err = cryptoHash(digestAlgorithm); err != nil {
			return nil, err
		}
	}

	switch asymmetric {
	case RSA, DSA, ECDSA:
		if digestAlgorithm == "" {
			return nil, errors.NewErrorf("algorithm \"%s\" requires a digest algorithm", asymmetric)
		}
	case Ed25519:
		if digestAlgorithm != "" {
			return nil, errors.NewError("Ed25519 signs the message directly, the digest algorithm must be unspecified")
		}
	default:
		return nil, errors.NewErrorf("asymmetric algorithm \"%s\" is not recognized", asymmetric)
	}

	return &Signature{
		name:            digestPart + "with" + string(asymmetric),
		asymmetric:      asymmetric,
		digestAlgorithm: digestAlgorithm,
		hash:            hashID,
	}, nil
}

// Algorithm 返回拼接后的算法名，例如 "SHA1withRSA"、"NONEwithEd25519"。
func (s *Signature) Algorithm() string {
	return s.name
}

/* ------------------------------------------------------------------------------------------ */

// Sign 用私钥对数据签名，签名前先按照构造时指定的摘要算法计算数据的摘要。
func (s *Signature) Sign(privateKey interface{}, data []byte) ([]byte, error) {
	switch s.asymmetric {
	case RSA:
		key, ok := privateKey.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.NewErrorf("invalid private key, want *rsa.PrivateKey, but got \"%T\"", privateKey)
		}
		digested, err := s.digestData(data)
		if err != nil {
			return nil, err
		}
		signature, err := rsa.SignPKCS1v15(rand.Reader, key, s.hash, digested)
		if err != nil {
			return nil, errors.NewErrorf("failed signing with \"%s\", the error is \"%s\"", s.name, err.Error())
		}
		return signature, nil
	case DSA:
		key, ok := privateKey.(*dsa.PrivateKey)
		if !ok {
			return nil, errors.NewErrorf("invalid private key, want *dsa.PrivateKey, but got \"%T\"", privateKey)
		}
		digested, err := s.digestData(data)
		if err != nil {
			return nil, err
		}
		digested = truncateForDSA(key.Q, digested)
		r, ss, err := dsa.Sign(rand.Reader, key, digested)
		if err != nil {
			return nil, errors.NewErrorf("failed signing with \"%s\", the error is \"%s\"", s.name, err.Error())
		}
		signature, err := asn1.Marshal(dsaSignature{R: r, S: ss})
		if err != nil {
			return nil, errors.NewErrorf("failed marshaling DSA signature, the error is \"%s\"", err.Error())
		}
		return signature, nil
	case ECDSA:
		key, ok := privateKey.(*ecdsa.PrivateKey)
		if !ok {
			return nil, errors.NewErrorf("invalid private key, want *ecdsa.PrivateKey, but got \"%T\"", privateKey)
		}
		digested, err := s.digestData(data)
		if err != nil {
			return nil, err
		}
		signature, err := ecdsa.SignASN1(rand.Reader, key, digested)
		if err != nil {
			return nil, errors.NewErrorf("failed signing with \"%s\", the error is \"%s\"", s.name, err.Error())
		}
		return signature, nil
	case Ed25519:
		key, ok := privateKey.(ed25519.PrivateKey)
		if !ok {
			return nil, errors.NewErrorf("invalid private key, want ed25519.PrivateKey, but got \"%T\"", privateKey)
		}
		return ed25519.Sign(key, data), nil
	default:
		return nil, errors.NewErrorf("asymmetric algorithm \"%s\" is not recognized", s.asymmetric)
	}
}

// Verify 用公钥验证签名的正确性。
func (s *Signature) Verify(publicKey interface{}, data, signature []byte) (bool, error) {
	switch s.asymmetric {
	case RSA:
		key, ok := publicKey.(*rsa.PublicKey)
		if !ok {
			return false, errors.NewErrorf("invalid public key, want *rsa.PublicKey, but got \"%T\"", publicKey)
		}
		digested, err := s.digestData(data)
		if err != nil {
			return false, err
		}
		return rsa.VerifyPKCS1v15(key, s.hash, digested, signature) == nil, nil
	case DSA:
		key, ok := publicKey.(*dsa.PublicKey)
		if !ok {
			return false, errors.NewErrorf("invalid public key, want *dsa.PublicKey, but got \"%T\"", publicKey)
		}
		var decoded dsaSignature
		if _, err := asn1.Unmarshal(signature, &decoded); err != nil {
			return false, errors.NewErrorf("failed unmarshaling DSA signature, the error is \"%s\"", err.Error())
		}
		digested, err := s.digestData(data)
		if err != nil {
			return false, err
		}
		digested = truncateForDSA(key.Q, digested)
		return dsa.Verify(key, digested, decoded.R, decoded.S), nil
	case ECDSA:
		key, ok := publicKey.(*ecdsa.PublicKey)
		if !ok {
			return false, errors.NewErrorf("invalid public key, want *ecdsa.PublicKey, but got \"%T\"", publicKey)
		}
		digested, err := s.digestData(data)
		if err != nil {
			return false, err
		}
		return ecdsa.VerifyASN1(key, digested, signature), nil
	case Ed25519:
		key, ok := publicKey.(ed25519.PublicKey)
		if !ok {
			return false, errors.NewErrorf("invalid public key, want ed25519.PublicKey, but got \"%T\"", publicKey)
		}
		return ed25519.Verify(key, data, signature), nil
	default:
		return false, errors.NewErrorf("asymmetric algorithm \"%s\" is not recognized", s.asymmetric)
	}
}

/* ------------------------------------------------------------------------------------------ */

type dsaSignature struct {
	R, S *big.Int
}

func (s *Signature) digestData(data []byte) ([]byte, error) {
	newHash, err := digest.NewHashFunc(s.digestAlgorithm)
	if err != nil {
		return nil, err
	}
	hashFunc := newHash()
	hashFunc.Write(data)
	return hashFunc.Sum(nil), nil
}

// truncateForDSA 按照 FIPS 186-3 的要求把摘要截短到子群 Q 的字节长度。
func truncateForDSA(q *big.Int, digested []byte) []byte {
	n := (q.BitLen() + 7) / 8
	if len(digested) > n {
		return digested[:n]
	}
	return digested
}

func cryptoHash(algorithm digest.Algorithm) (crypto.Hash, error) {
	switch algorithm {
	case digest.MD5:
		return crypto.MD5, nil
	case digest.SHA1:
		return crypto.SHA1, nil
	case digest.SHA256:
		return crypto.SHA256, nil
	case digest.SHA384:
		return crypto.SHA384, nil
	case digest.SHA512:
		return crypto.SHA512, nil
	case digest.SHA3_256:
		return crypto.SHA3_256, nil
	case digest.SHA3_384:
		return crypto.SHA3_384, nil
	default:
		return 0, errors.NewErrorf("digest algorithm \"%s\" is not recognized", algorithm)
	}
}
