package cli

import (
	"github.com/joshuastenhouse/rscreporting-sub000/internal/client"
	"github.com/joshuastenhouse/rscreporting-sub000/internal/config"
)

// loadClientConfig reads the YAML client config and fills anything the file
// leaves unset from the RSC_* environment.
func loadClientConfig(path string) (*client.Config, error) {
	cfg, err := client.ParseConfigFile(path)
	if err != nil {
		return nil, err
	}
	if env, envErr := config.New(); envErr == nil {
		applyEnvDefaults(cfg, env)
	}
	return cfg, nil
}

// applyEnvDefaults is the precedence rule between the two config sources: an
// explicit file value wins, a zero value falls back to the environment.
func applyEnvDefaults(cfg *client.Config, env *config.Config) {
	if cfg.Service.PageSize == 0 {
		cfg.Service.PageSize = env.Service.PageSize
	}
	if cfg.Service.TimeoutSeconds == 0 {
		cfg.Service.TimeoutSeconds = env.Service.TimeoutSec
	}
}
