package client

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"sigs.k8s.io/yaml"
)

// Config holds the information needed to connect to an account's API.
type Config struct {
	Service Service `json:"service"`
}

// Service contains the account URL and the service-account credentials used
// for the token exchange.
type Service struct {
	// Server is the account URL, e.g. https://myaccount.my.rubrik.com
	Server       string `json:"server"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	// PageSize overrides the requested page size when > 0.
	PageSize int `json:"pageSize,omitempty"`
	// TimeoutSeconds overrides the HTTP timeout when > 0.
	TimeoutSeconds int `json:"timeoutSeconds,omitempty"`
}

func NewDefault() *Config {
	return &Config{}
}

// NewFromConfig returns a client built from the given config.
func NewFromConfig(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	opts := []Option{}
	if config.Service.PageSize > 0 {
		opts = append(opts, WithPageSize(config.Service.PageSize))
	}
	if config.Service.TimeoutSeconds > 0 {
		opts = append(opts, WithTimeout(time.Duration(config.Service.TimeoutSeconds)*time.Second))
	}
	return New(config.Service.Server, config.Service.ClientID, config.Service.ClientSecret, opts...), nil
}

// NewFromConfigFile returns a client using the config read from the given file.
func NewFromConfigFile(filename string) (*Client, error) {
	config, err := ParseConfigFile(filename)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(config)
}

// DefaultClientConfigPath returns the default path to the client config file.
func DefaultClientConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".rscreport", "client.yaml")
	}
	return filepath.Join(home, ".rscreport", "client.yaml")
}

func ParseConfigFile(filename string) (*Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	config := NewDefault()
	if err := yaml.Unmarshal(contents, config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// WriteConfig writes a client config file using the given parameters.
func WriteConfig(filename, server, clientID, clientSecret string) error {
	config := NewDefault()
	config.Service = Service{
		Server:       server,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}
	return config.Persist(filename)
}

func (c *Config) Persist(filename string) error {
	contents, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.WriteFile(filename, contents, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if len(c.Service.Server) == 0 {
		return fmt.Errorf("invalid configuration: no server found")
	}
	u, err := url.Parse(c.Service.Server)
	if err != nil {
		return fmt.Errorf("invalid configuration: bad server format %q: %w", c.Service.Server, err)
	}
	if len(u.Hostname()) == 0 {
		return fmt.Errorf("invalid configuration: bad server format %q: no hostname", c.Service.Server)
	}
	if c.Service.ClientID == "" || c.Service.ClientSecret == "" {
		return fmt.Errorf("invalid configuration: client id and secret are required")
	}
	return nil
}
