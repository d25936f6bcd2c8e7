package security

import (
	"io"
)

/* ------------------------------------------------------------------------------------------ */

// Md5Bytes 计算 data 的 MD5 摘要。
func Md5Bytes(data []byte) []byte {
	return Md5().DigestBytes(data)
}

// Md5BytesHex 计算 data 的 MD5 摘要并编码成小写十六进制字符串。
func Md5BytesHex(data []byte) string {
	return Md5().DigestBytesHex(data)
}

// Md5String 按 charset 编码字符串后计算 MD5 摘要，charset 为空时按 UTF-8 处理。
func Md5String(data string, charset string) ([]byte, error) {
	return Md5().DigestString(data, charset)
}

func Md5StringHex(data string, charset string) (string, error) {
	return Md5().DigestStringHex(data, charset)
}

// Md5File 计算文件内容的 MD5 摘要。
func Md5File(path string) ([]byte, error) {
	return Md5().DigestFile(path)
}

func Md5FileHex(path string) (string, error) {
	return Md5().DigestFileHex(path)
}

// Md5Stream 按 bufferLength 分块读取数据流并计算 MD5 摘要，不会关闭数据流。
func Md5Stream(data io.Reader, bufferLength int) ([]byte, error) {
	return Md5().DigestStream(data, bufferLength)
}

func Md5StreamHex(data io.Reader, bufferLength int) (string, error) {
	return Md5().DigestStreamHex(data, bufferLength)
}

/* ------------------------------------------------------------------------------------------ */

// Sha1Bytes 计算 data 的 SHA-1 摘要。
func Sha1Bytes(data []byte) []byte {
	return Sha1().DigestBytes(data)
}

// Sha1BytesHex 计算 data 的 SHA-1 摘要并编码成小写十六进制字符串。
func Sha1BytesHex(data []byte) string {
	return Sha1().DigestBytesHex(data)
}

// Sha1String 按 charset 编码字符串后计算 SHA-1 摘要，charset 为空时按 UTF-8 处理。
func Sha1String(data string, charset string) ([]byte, error) {
	return Sha1().DigestString(data, charset)
}

func Sha1StringHex(data string, charset string) (string, error) {
	return Sha1().DigestStringHex(data, charset)
}

// Sha1File 计算文件内容的 SHA-1 摘要。
func Sha1File(path string) ([]byte, error) {
	return Sha1().DigestFile(path)
}

func Sha1FileHex(path string) (string, error) {
	return Sha1().DigestFileHex(path)
}

// Sha1Stream 按 bufferLength 分块读取数据流并计算 SHA-1 摘要，不会关闭数据流。
func Sha1Stream(data io.Reader, bufferLength int) ([]byte, error) {
	return Sha1().DigestStream(data, bufferLength)
}

func Sha1StreamHex(data io.Reader, bufferLength int) (string, error) {
	return Sha1().DigestStreamHex(data, bufferLength)
}

/* ------------------------------------------------------------------------------------------ */

// Sha256BytesHex 计算 data 的 SHA-256 摘要并编码成小写十六进制字符串。
func Sha256BytesHex(data []byte) string {
	return Sha256().DigestBytesHex(data)
}

// Sha512BytesHex 计算 data 的 SHA-512 摘要并编码成小写十六进制字符串。
func Sha512BytesHex(data []byte) string {
	return Sha512().DigestBytesHex(data)
}
