package mlog

import (
	"bytes"
	"os"
	"sync"
)

/* ------------------------------------------------------------------------------------------ */

// writer 定义了条目写入器接口。
type writer interface {
	// WriteEntry 利用写入器将日志条目写入到指定位置，返回可能出现的错误。
	WriteEntry(e *entry) error
}

/* ------------------------------------------------------------------------------------------ */

type terminalWriter struct{}

func NewTerminalWriter() writer {
	return &terminalWriter{}
}

func (*terminalWriter) WriteEntry(e *entry) error {
	_, err := os.Stdout.Write([]byte(e.ColorString()))
	return err
}

/* ------------------------------------------------------------------------------------------ */

// bufferWriter 将日志条目写入到内存缓冲区中，供测试使用。
type bufferWriter struct {
	buf   *bytes.Buffer
	mutex *sync.Mutex
}

func NewBufferWriter() *bufferWriter {
	return &bufferWriter{
		buf:   &bytes.Buffer{},
		mutex: &sync.Mutex{},
	}
}

func (bw *bufferWriter) WriteEntry(e *entry) error {
	bw.mutex.Lock()
	defer bw.mutex.Unlock()
	_, err := bw.buf.WriteString(e.NormalString())
	return err
}

func (bw *bufferWriter) String() string {
	bw.mutex.Lock()
	defer bw.mutex.Unlock()
	return bw.buf.String()
}

/* ------------------------------------------------------------------------------------------ */

// SetWriter 替换默认的控制台写入器，之后通过 GetLogger 创建的 logger 会把日志写入到 w 中。
func SetWriter(w writer) {
	loggerBus.mutex.Lock()
	defer loggerBus.mutex.Unlock()
	loggerBus.terminal = w
}
