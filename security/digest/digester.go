package digest

import (
	"bufio"
	"encoding/hex"
	"hash"
	"io"
	"os"

	"github.com/miyakowork/template-utils-security/errors"
	"golang.org/x/text/encoding/ianaindex"
)

/* ------------------------------------------------------------------------------------------ */

// DefaultBufferLength 从数据流中分块读取数据时默认的缓冲区长度。
const DefaultBufferLength = 1024

// Digester 摘要计算器，内部持有一个可变的哈希上下文，每次计算后自动重置。
// 注意：Digester 实例不是并发安全的，多个 goroutine 并发摘要时请使用 Clone 出来的各自实例。
type Digester struct {
	algorithm Algorithm
	hash      hash.Hash
}

func NewDigester(algorithm Algorithm) (*Digester, error) {
	newHash, err := NewHashFunc(algorithm)
	if err != nil {
		return nil, err
	}

	return &Digester{
		algorithm: algorithm,
		hash:      newHash(),
	}, nil
}

func (d *Digester) Algorithm() Algorithm {
	return d.algorithm
}

// Clone 返回一个同算法的全新 Digester，供需要并发摘要的调用者使用。
func (d *Digester) Clone() (*Digester, error) {
	return NewDigester(d.algorithm)
}

func (d *Digester) Reset() {
	d.hash.Reset()
}

/* ------------------------------------------------------------------------------------------ */

// DigestBytes 计算给定字节切片的摘要，计算结束后哈希上下文被重置，实例可以继续复用。
func (d *Digester) DigestBytes(data []byte) []byte {
	return digestBytes(d.hash, data)
}

func (d *Digester) DigestBytesHex(data []byte) string {
	return hex.EncodeToString(d.DigestBytes(data))
}

// DigestString 先按照 charset 指定的字符集编码字符串，再计算摘要，charset 为空时默认使用 UTF-8。
func (d *Digester) DigestString(data string, charset string) ([]byte, error) {
	encoded, err := encodeString(data, charset)
	if err != nil {
		return nil, err
	}
	return d.DigestBytes(encoded), nil
}

func (d *Digester) DigestStringHex(data string, charset string) (string, error) {
	result, err := d.DigestString(data, charset)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(result), nil
}

// DigestFile 对文件的全部内容计算摘要，无论成功与否文件句柄都会被关闭，关闭失败被有意忽略。
func (d *Digester) DigestFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewErrorf("cannot open file \"%s\", the error is \"%s\"", path, err.Error())
	}
	defer file.Close()

	return d.DigestStream(bufio.NewReader(file), DefaultBufferLength)
}

func (d *Digester) DigestFileHex(path string) (string, error) {
	result, err := d.DigestFile(path)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(result), nil
}

// DigestStream 以 bufferLength 为块长度分块读取数据流并计算摘要，bufferLength 小于 1 时
// 使用 DefaultBufferLength 作为默认值。调用者传入的数据流不会被关闭。
func (d *Digester) DigestStream(data io.Reader, bufferLength int) ([]byte, error) {
	return digestStream(d.hash, data, bufferLength)
}

func (d *Digester) DigestStreamHex(data io.Reader, bufferLength int) (string, error) {
	result, err := d.DigestStream(data, bufferLength)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(result), nil
}

/* ------------------------------------------------------------------------------------------ */

func digestBytes(h hash.Hash, data []byte) []byte {
	defer h.Reset()
	h.Write(data)
	return h.Sum(nil)
}

func digestStream(h hash.Hash, data io.Reader, bufferLength int) ([]byte, error) {
	if bufferLength < 1 {
		bufferLength = DefaultBufferLength
	}
	buffer := make([]byte, bufferLength)

	defer h.Reset()
	for {
		read, err := data.Read(buffer)
		if read > 0 {
			h.Write(buffer[:read])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewErrorf("failed reading stream, the error is \"%s\"", err.Error())
		}
	}
	return h.Sum(nil), nil
}

// encodeString 按照 IANA 注册的字符集名字编码字符串，Go 的字符串本身就是 UTF-8 编码的，
// 所以 charset 为空或者为 UTF-8 时直接返回原始字节。
func encodeString(data string, charset string) ([]byte, error) {
	if charset == "" || charset == "UTF-8" || charset == "utf-8" {
		return []byte(data), nil
	}

	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, errors.NewErrorf("charset \"%s\" is not recognized", charset)
	}

	encoded, err := enc.NewEncoder().Bytes([]byte(data))
	if err != nil {
		return nil, errors.NewErrorf("cannot encode string with charset \"%s\", the error is \"%s\"", charset, err.Error())
	}
	return encoded, nil
}
