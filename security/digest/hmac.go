package digest

import (
	"bufio"
	"crypto/hmac"
	"encoding/hex"
	"hash"
	"io"
	"os"

	"github.com/miyakowork/template-utils-security/errors"
	"github.com/miyakowork/template-utils-security/security/utils"
)

/* ------------------------------------------------------------------------------------------ */

// DefaultHmacKeyLength 未提供密钥时随机生成的 HMAC 密钥的字节数。
const DefaultHmacKeyLength = 64

// HMac 带密钥的摘要计算器，输入面与 Digester 一致。
// 注意：HMac 实例不是并发安全的，内部的哈希上下文会被原地修改。
type HMac struct {
	algorithm HmacAlgorithm
	key       []byte
	mac       hash.Hash
}

// NewHMac 创建 HMac，key 为 nil 时随机生成一个 DefaultHmacKeyLength 字节的密钥，
// 之后可以通过 Key 方法拿到该密钥。
func NewHMac(algorithm HmacAlgorithm, key []byte) (*HMac, error) {
	digestAlgorithm, err := algorithm.digestAlgorithm()
	if err != nil {
		return nil, err
	}

	newHash, err := NewHashFunc(digestAlgorithm)
	if err != nil {
		return nil, err
	}

	if key == nil {
		if key, err = utils.GetRandomBytes(DefaultHmacKeyLength); err != nil {
			return nil, errors.NewErrorf("cannot generate random hmac key, the error is \"%s\"", err.Error())
		}
	}

	return &HMac{
		algorithm: algorithm,
		key:       key,
		mac:       hmac.New(newHash, key),
	}, nil
}

func (h *HMac) Algorithm() HmacAlgorithm {
	return h.algorithm
}

// Key 返回 HMAC 密钥的拷贝，密钥的处置由调用者负责。
func (h *HMac) Key() []byte {
	cpy := make([]byte, len(h.key))
	copy(cpy, h.key)
	return cpy
}

func (h *HMac) Reset() {
	h.mac.Reset()
}

/* ------------------------------------------------------------------------------------------ */

func (h *HMac) DigestBytes(data []byte) []byte {
	return digestBytes(h.mac, data)
}

func (h *HMac) DigestBytesHex(data []byte) string {
	return hex.EncodeToString(h.DigestBytes(data))
}

func (h *HMac) DigestString(data string, charset string) ([]byte, error) {
	encoded, err := encodeString(data, charset)
	if err != nil {
		return nil, err
	}
	return h.DigestBytes(encoded), nil
}

func (h *HMac) DigestStringHex(data string, charset string) (string, error) {
	result, err := h.DigestString(data, charset)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(result), nil
}

func (h *HMac) DigestFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewErrorf("cannot open file \"%s\", the error is \"%s\"", path, err.Error())
	}
	defer file.Close()

	return h.DigestStream(bufio.NewReader(file), DefaultBufferLength)
}

func (h *HMac) DigestFileHex(path string) (string, error) {
	result, err := h.DigestFile(path)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(result), nil
}

func (h *HMac) DigestStream(data io.Reader, bufferLength int) ([]byte, error) {
	return digestStream(h.mac, data, bufferLength)
}

func (h *HMac) DigestStreamHex(data io.Reader, bufferLength int) (string, error) {
	result, err := h.DigestStream(data, bufferLength)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(result), nil
}
