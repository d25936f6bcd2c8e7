package errors

import (
	"fmt"
	"runtime"
	"strings"
)

const PrefixPath = "github.com/miyakowork/"

var trace = false

// Error 本项目中所有加密操作产生的错误都是此类型的，底层失败原因被包进错误消息里。
type Error struct {
	content string
	path    string
}

func (e *Error) Error() string {
	if trace {
		return fmt.Sprintf("[%s] => {%s}", e.path, e.content)
	}
	return e.content
}

func NewError(content string) *Error {
	var path string
	if trace {
		path = constructPath()
	}

	return &Error{
		content: content,
		path:    path,
	}
}

func NewErrorf(format string, args ...interface{}) *Error {
	var path string
	if trace {
		path = constructPath()
	}

	return &Error{
		content: fmt.Sprintf(format, args...),
		path:    path,
	}
}

// SetTrace 开启错误路径追踪，开启后 Error 的字符串形式会带上产生错误的 file_func:line 信息。
func SetTrace() {
	trace = true
}

func constructPath() string {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown path"
	}

	index := strings.Index(file, PrefixPath)
	if index == -1 {
		file = "unknown file"
	} else {
		file = file[index+len(PrefixPath):]
	}

	funcName := runtime.FuncForPC(pc).Name()
	index = strings.LastIndex(funcName, ".")
	if index == -1 {
		funcName = "unknown function"
	} else {
		funcName = funcName[index+1:]
	}

	return fmt.Sprintf("%s_%s:%d", file, funcName, line)
}
