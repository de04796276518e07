package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/config"
)

func stubEnvConfig(t *testing.T) *config.Config {
	t.Helper()
	env, err := config.New()
	require.NoError(t, err)
	saved := *env.Service
	t.Cleanup(func() { *env.Service = saved })
	return env
}

func TestApplyEnvDefaults(t *testing.T) {
	env := stubEnvConfig(t)
	env.Service.PageSize = 400
	env.Service.TimeoutSec = 120

	t.Run("fills zero values from the environment", func(t *testing.T) {
		cfg := &client.Config{Service: client.Service{
			Server:       "https://acct.my.rubrik.com",
			ClientID:     "id",
			ClientSecret: "secret",
		}}
		applyEnvDefaults(cfg, env)
		assert.Equal(t, 400, cfg.Service.PageSize)
		assert.Equal(t, 120, cfg.Service.TimeoutSeconds)
	})

	t.Run("explicit file values win over the environment", func(t *testing.T) {
		cfg := &client.Config{Service: client.Service{
			Server:         "https://acct.my.rubrik.com",
			ClientID:       "id",
			ClientSecret:   "secret",
			PageSize:       25,
			TimeoutSeconds: 10,
		}}
		applyEnvDefaults(cfg, env)
		assert.Equal(t, 25, cfg.Service.PageSize)
		assert.Equal(t, 10, cfg.Service.TimeoutSeconds)
	})
}

func TestLoadClientConfig(t *testing.T) {
	env := stubEnvConfig(t)
	env.Service.PageSize = 400
	env.Service.TimeoutSec = 120

	path := filepath.Join(t.TempDir(), "client.yaml")
	contents := "service:\n" +
		"  server: https://acct.my.rubrik.com\n" +
		"  clientId: id\n" +
		"  clientSecret: secret\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))

	cfg, err := loadClientConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://acct.my.rubrik.com", cfg.Service.Server)
	assert.Equal(t, 400, cfg.Service.PageSize)
	assert.Equal(t, 120, cfg.Service.TimeoutSeconds)
}
