package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("reads the RSC_ variables", func(t *testing.T) {
		singleConfig = nil
		t.Setenv("RSC_URL", "https://acct.my.rubrik.com")
		t.Setenv("RSC_CLIENT_ID", "client|abc")
		t.Setenv("RSC_CLIENT_SECRET", "s3cret")
		t.Setenv("RSC_LOG_LEVEL", "debug")
		t.Setenv("RSC_PAGE_SIZE", "250")
		t.Setenv("RSC_TIMEOUT", "120")

		cfg, err := New()
		require.NoError(t, err)
		assert.Equal(t, "https://acct.my.rubrik.com", cfg.Service.AccountURL)
		assert.Equal(t, "client|abc", cfg.Service.ClientID)
		assert.Equal(t, "s3cret", cfg.Service.ClientSecret)
		assert.Equal(t, "debug", cfg.Service.LogLevel)
		assert.Equal(t, 250, cfg.Service.PageSize)
		assert.Equal(t, 120, cfg.Service.TimeoutSec)
	})

	t.Run("applies defaults when the environment is empty", func(t *testing.T) {
		singleConfig = nil
		for _, key := range []string{"RSC_LOG_LEVEL", "RSC_PAGE_SIZE", "RSC_TIMEOUT"} {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}

		cfg, err := New()
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.Service.LogLevel)
		assert.Equal(t, 1000, cfg.Service.PageSize)
		assert.Equal(t, 60, cfg.Service.TimeoutSec)
	})

	t.Run("returns the same instance on repeated calls", func(t *testing.T) {
		singleConfig = nil
		first, err := New()
		require.NoError(t, err)
		second, err := New()
		require.NoError(t, err)
		assert.Same(t, first, second)
	})
}
