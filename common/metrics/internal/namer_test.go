package internal_test

import (
	"testing"

	"github.com/miyakowork/template-utils-security/common/metrics"
	"github.com/miyakowork/template-utils-security/common/metrics/internal"
	"github.com/stretchr/testify/require"
)

func TestFullyQualifiedName(t *testing.T) {
	namer := internal.NewCounterNamer(metrics.CounterOpts{
		Namespace: "security",
		Subsystem: "suite",
		Name:      "operations",
	})
	require.Equal(t, "security.suite.operations", namer.FullyQualifiedName())

	namer = internal.NewCounterNamer(metrics.CounterOpts{
		Namespace: "security",
		Name:      "operations",
	})
	require.Equal(t, "security.operations", namer.FullyQualifiedName())
}

func TestFormat(t *testing.T) {
	namer := internal.NewCounterNamer(metrics.CounterOpts{
		Namespace:    "security",
		Subsystem:    "suite",
		Name:         "operations",
		LabelNames:   []string{"operation", "algorithm"},
		StatsdFormat: "%{#fqname}.%{operation}.%{algorithm}",
	})
	require.Equal(t, "security.suite.operations.digest.MD5", namer.Format("operation", "digest", "algorithm", "MD5"))
}

func TestFormatInvalidLabelValue(t *testing.T) {
	namer := internal.NewCounterNamer(metrics.CounterOpts{
		Name:         "operations",
		LabelNames:   []string{"operation"},
		StatsdFormat: "%{#fqname}.%{operation}",
	})
	// 点、竖线、冒号和空白都会被替换成下划线。
	require.Equal(t, "operations.read_keystore", namer.Format("operation", "read keystore"))
}
