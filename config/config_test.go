package config_test

import (
	"testing"

	"github.com/miyakowork/template-utils-security/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := config.GetConfig()
	require.NotNil(t, cfg)

	require.Equal(t, "keys", cfg.GetString("security.keystorepath"))
	require.False(t, cfg.GetBool("security.readonly"))
	require.Equal(t, "disabled", cfg.GetString("security.metrics"))
	require.Equal(t, 1024, cfg.GetInt("security.bufferlength"))
}

func TestGetConfigReturnsSameInstance(t *testing.T) {
	require.Same(t, config.GetConfig(), config.GetConfig())
}
