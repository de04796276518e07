package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Service *svcConfig
}

type svcConfig struct {
	AccountURL   string `envconfig:"RSC_URL" default:""`
	ClientID     string `envconfig:"RSC_CLIENT_ID" default:""`
	ClientSecret string `envconfig:"RSC_CLIENT_SECRET" default:""`
	LogLevel     string `envconfig:"RSC_LOG_LEVEL" default:"info"`
	PageSize     int    `envconfig:"RSC_PAGE_SIZE" default:"1000"`
	TimeoutSec   int    `envconfig:"RSC_TIMEOUT" default:"60"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}
