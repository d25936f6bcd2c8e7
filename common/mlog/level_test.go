package mlog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintColorLevel(t *testing.T) {
	t.Log(DebugLevel.ColorString())
	t.Log(InfoLevel.ColorString())
	t.Log(WarnLevel.ColorString())
	t.Log(ErrorLevel.ColorString())
	t.Log(PanicLevel.ColorString())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, DebugLevel, ParseLevel("debug"))
	require.Equal(t, InfoLevel, ParseLevel("INFO"))
	require.Equal(t, WarnLevel, ParseLevel("Warn"))
	require.Equal(t, ErrorLevel, ParseLevel("error"))
	require.Equal(t, PanicLevel, ParseLevel("panic"))
	require.Equal(t, InfoLevel, ParseLevel("whatever"))
}
