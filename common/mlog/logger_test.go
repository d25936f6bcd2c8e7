package mlog_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/miyakowork/template-utils-security/common/mlog"
	"github.com/stretchr/testify/require"
)

func TestLog(t *testing.T) {
	l := mlog.GetLogger("test-module", mlog.DebugLevel, true)
	l.Debug("哈哈哈哈哈哈👌")
	l.Debugf("%s 哈哈哈哈哈哈👌", "7671236")
	l.Info("哈哈哈哈哈哈👌")
	l.Infof("%s 哈哈哈哈哈哈👌", "7671236")
	l.Warn("哈哈哈哈哈哈👌")
	l.Warnf("%s 哈哈哈哈哈哈👌", "7671236")
	l.Error("哈哈哈哈哈哈👌")
	l.Errorf("%s 哈哈哈哈哈哈👌", "7671236")
}

func TestLevelFiltering(t *testing.T) {
	buffer := mlog.NewBufferWriter()
	mlog.SetWriter(buffer)
	defer mlog.SetWriter(mlog.NewTerminalWriter())

	l := mlog.GetLogger("filter", mlog.WarnLevel)
	l.Debug("should be filtered")
	l.Info("should be filtered")
	l.Warn("should be kept")
	l.Error("should be kept")

	out := buffer.String()
	require.NotContains(t, out, "should be filtered")
	require.Contains(t, out, "should be kept")
}

func TestWith(t *testing.T) {
	buffer := mlog.NewBufferWriter()
	mlog.SetWriter(buffer)
	defer mlog.SetWriter(mlog.NewTerminalWriter())

	l := mlog.GetLogger("ctx", mlog.InfoLevel).With("channel", "testchannel")
	l.Info("message with context")

	require.Contains(t, buffer.String(), "testchannel")
}

func TestPanic(t *testing.T) {
	buffer := mlog.NewBufferWriter()
	mlog.SetWriter(buffer)
	defer mlog.SetWriter(mlog.NewTerminalWriter())

	l := mlog.GetLogger("panicker", mlog.DebugLevel)
	require.Panics(t, func() { l.Panic("facing an unrecoverable state") })
	require.Panics(t, func() { l.Panicf("facing an %s state", "unrecoverable") })
}

func TestAsync(t *testing.T) {
	buffer := mlog.NewBufferWriter()
	mlog.SetWriter(buffer)
	defer mlog.SetWriter(mlog.NewTerminalWriter())

	wg := &sync.WaitGroup{}
	for _, module := range []string{"digest", "symmetric", "asymmetric", "keystore", "provider", "certgen"} {
		wg.Add(1)
		go func(module string) {
			defer wg.Done()
			l := mlog.GetLogger(module, mlog.DebugLevel)
			for i := 0; i < 100; i++ {
				l.Infof("message %d", i)
			}
		}(module)
	}
	wg.Wait()

	require.Equal(t, 600, strings.Count(buffer.String(), "message"))
}
