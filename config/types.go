package config

import "fmt"

// Config represents the complete configuration structure
type Config struct {
	Console ConsoleConfig `mapstructure:"console"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ConsoleConfig holds the management API connection details
type ConsoleConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	TLS      bool   `mapstructure:"tls"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// Credential is the pre-hashed username:password pair. When set it
	// takes precedence over Username/Password.
	Credential  string `mapstructure:"credential"`
	TokenHeader string `mapstructure:"token_header"`
}

// BaseURL returns the API root address for the configured endpoint.
func (c ConsoleConfig) BaseURL() string {
	scheme := "http"
	if c.TLS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d/api/", scheme, c.Host, c.Port)
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
