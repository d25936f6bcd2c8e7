package mlog

import (
	"fmt"
	"sync"
	"time"
)

/* ------------------------------------------------------------------------------------------ */

type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	Panic(msg string)
	Panicf(format string, args ...interface{})
	With(key, value string) Logger
}

/* ------------------------------------------------------------------------------------------ */

var now = func() string {
	return time.Now().Format("2006-01-02 15:04:05.000")
}

var loggerBus *logger

func init() {
	loggerBus = &logger{
		lvl:       InfoLevel,
		printPath: false,
		module:    "SECURITY",
		terminal:  NewTerminalWriter(),
		ctx:       make([]string, 0),
		mutex:     &sync.RWMutex{},
	}
}

/* ------------------------------------------------------------------------------------------ */

type logger struct {
	// lvl 定义记录的日志等级。
	lvl level

	// printPath 字段控制是否在每条日志记录上增加 file:line 信息。
	printPath bool

	// module 定义日志输出器 logger 属于项目的哪个模块。
	module string

	// ctx 定义日志输出器 logger 的上下文信息。
	ctx []string

	// terminal 定义将日志输出到控制台的日志输出器。
	terminal writer

	mutex *sync.RWMutex
}

func GetLogger(module string, lvl level, printPath ...bool) Logger {
	l := &logger{
		lvl:       lvl,
		printPath: loggerBus.printPath,
		module:    module,
		terminal:  loggerBus.terminal,
		ctx:       make([]string, 0),
		mutex:     &sync.RWMutex{},
	}
	if len(printPath) > 0 {
		l.printPath = printPath[0]
	}
	return l
}

func (l *logger) Debug(msg string) {
	if l.silent(DebugLevel) {
		return
	}
	l.log(newEntry(now(), l.module, DebugLevel, msg, l.ctxStr(), l.printPath))
}

func (l *logger) Debugf(format string, args ...interface{}) {
	if l.silent(DebugLevel) {
		return
	}
	l.log(newEntry(now(), l.module, DebugLevel, fmt.Sprintf(format, args...), l.ctxStr(), l.printPath))
}

func (l *logger) Info(msg string) {
	if l.silent(InfoLevel) {
		return
	}
	l.log(newEntry(now(), l.module, InfoLevel, msg, l.ctxStr(), l.printPath))
}

func (l *logger) Infof(format string, args ...interface{}) {
	if l.silent(InfoLevel) {
		return
	}
	l.log(newEntry(now(), l.module, InfoLevel, fmt.Sprintf(format, args...), l.ctxStr(), l.printPath))
}

func (l *logger) Warn(msg string) {
	if l.silent(WarnLevel) {
		return
	}
	l.log(newEntry(now(), l.module, WarnLevel, msg, l.ctxStr(), l.printPath))
}

func (l *logger) Warnf(format string, args ...interface{}) {
	if l.silent(WarnLevel) {
		return
	}
	l.log(newEntry(now(), l.module, WarnLevel, fmt.Sprintf(format, args...), l.ctxStr(), l.printPath))
}

func (l *logger) Error(msg string) {
	if l.silent(ErrorLevel) {
		return
	}
	l.log(newEntry(now(), l.module, ErrorLevel, msg, l.ctxStr(), l.printPath))
}

func (l *logger) Errorf(format string, args ...interface{}) {
	if l.silent(ErrorLevel) {
		return
	}
	l.log(newEntry(now(), l.module, ErrorLevel, fmt.Sprintf(format, args...), l.ctxStr(), l.printPath))
}

func (l *logger) Panic(msg string) {
	l.log(newEntry(now(), l.module, PanicLevel, msg, l.ctxStr(), l.printPath))
	panic(msg)
}

func (l *logger) Panicf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.log(newEntry(now(), l.module, PanicLevel, msg, l.ctxStr(), l.printPath))
	panic(msg)
}

func (l *logger) With(key, value string) Logger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	cpy := &logger{
		lvl:       l.lvl,
		printPath: l.printPath,
		module:    l.module,
		terminal:  l.terminal,
		ctx:       make([]string, 0, len(l.ctx)+2),
		mutex:     &sync.RWMutex{},
	}
	cpy.ctx = append(cpy.ctx, l.ctx...)
	cpy.ctx = append(cpy.ctx, key, value)
	return cpy
}

// silent 给定的日志等级如果小于 logger 设定的日志等级，则保持沉默，不输出日志信息。
func (l *logger) silent(lvl level) bool {
	return lvl < l.lvl
}

func (l *logger) log(e *entry) {
	l.terminal.WriteEntry(e)
}

func (l *logger) ctxStr() string {
	if len(l.ctx) == 0 {
		return ""
	}
	var ctx string
	for i := 0; i <= len(l.ctx)-2; i += 2 {
		key := l.ctx[i]
		value := l.ctx[i+1]

		if key == "" {
			key = "unknown"
		}

		if value == "" {
			value = "unknown"
		}

		if i == 0 {
			ctx = key + "=" + value
		} else {
			ctx = ctx + ";" + key + "=" + value
		}
	}
	return ctx
}
