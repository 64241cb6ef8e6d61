// Package config handles configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/zorak1103/dmon/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Docker       DockerConfig       `mapstructure:"docker"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
	Notification NotificationConfig `mapstructure:"notification"`

	// ConfigFilePath stores the path to the loaded config file (not marshaled from YAML)
	ConfigFilePath string `mapstructure:"-"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	AuthToken       string        `mapstructure:"auth_token"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the host:port pair the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DockerConfig contains Docker-specific settings
type DockerConfig struct {
	SocketPath  string        `mapstructure:"socket_path"`
	PingTimeout time.Duration `mapstructure:"ping_timeout"`
}

// MetricsConfig contains host metrics sampling settings
type MetricsConfig struct {
	CPUSampleInterval time.Duration `mapstructure:"cpu_sample_interval"`
	DiskPath          string        `mapstructure:"disk_path"`
}

// NotificationConfig contains notification settings
type NotificationConfig struct {
	ShoutrrrURL string `mapstructure:"shoutrrr_url"` // Shoutrrr URL format
	Enabled     bool   `mapstructure:"enabled"`
}

// autoDetectDockerSocket determines the Docker socket path based on environment and platform.
func autoDetectDockerSocket() string {
	if os.Getenv("DOCKER_HOST") != "" {
		return os.Getenv("DOCKER_HOST")
	}
	// Check for Unix socket
	if _, err := os.Stat("/var/run/docker.sock"); err == nil {
		return "unix:///var/run/docker.sock"
	}
	// Default to Windows named pipe if Unix socket not found
	return "npipe:////./pipe/docker_engine"
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/dmon")
		v.AddConfigPath("/etc/dmon")
	}

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			configFile := v.ConfigFileUsed()
			if configFile == "" {
				configFile = configPath
			}
			return nil, fmt.Errorf("error reading config file from %s: %w", configFile, err)
		}
		// Config file not found; using defaults and env vars
	}

	// Environment variable support
	v.SetEnvPrefix("DMON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		configFile := v.ConfigFileUsed()
		if configFile == "" {
			configFile = "(using defaults and environment variables)"
		}
		return nil, fmt.Errorf("error unmarshaling config from %s: %w", configFile, err)
	}

	// Store the config file path in the struct (DI approach, no global state)
	cfg.ConfigFilePath = v.ConfigFileUsed()

	// Auto-detect Docker socket if not specified
	if cfg.Docker.SocketPath == "" {
		cfg.Docker.SocketPath = autoDetectDockerSocket()
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromViper reads configuration from the global viper instance (for testing)
func LoadFromViper() (*Config, error) {
	// Set defaults first
	setDefaults(viper.GetViper())

	// Environment variable support
	viper.SetEnvPrefix("DMON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Unmarshal into config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config from global viper instance: %w", err)
	}

	// Store the config file path (DI approach, even for testing)
	cfg.ConfigFilePath = viper.ConfigFileUsed()

	// Auto-detect Docker socket if not specified
	if cfg.Docker.SocketPath == "" {
		cfg.Docker.SocketPath = autoDetectDockerSocket()
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.auth_token", "") // Required for AutomaticEnv to work
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	// Docker defaults
	if os.Getenv("DOCKER_HOST") != "" {
		v.SetDefault("docker.socket_path", os.Getenv("DOCKER_HOST"))
	} else {
		// Default Docker socket paths by platform
		if _, err := os.Stat("/var/run/docker.sock"); err == nil {
			v.SetDefault("docker.socket_path", "unix:///var/run/docker.sock")
		} else {
			v.SetDefault("docker.socket_path", "npipe:////./pipe/docker_engine")
		}
	}
	v.SetDefault("docker.ping_timeout", 2*time.Second)

	// Metrics defaults
	v.SetDefault("metrics.cpu_sample_interval", 500*time.Millisecond)
	v.SetDefault("metrics.disk_path", "/")

	// Notification defaults
	v.SetDefault("notification.shoutrrr_url", "") // Required for AutomaticEnv to work
	v.SetDefault("notification.enabled", false)
}

// Validate ensures all required fields are set and values are within valid ranges.
func (c *Config) Validate() error {
	configSource := c.ConfigFilePath
	if configSource == "" {
		configSource = "(defaults/environment)"
	}

	if err := c.validateRequiredFields(configSource); err != nil {
		return err
	}

	return c.validateRanges(configSource)
}

func (c *Config) validateRequiredFields(configSource string) error {
	requiredFields := []struct {
		value   string
		key     string
		message string
	}{
		{c.Server.AuthToken, "server.auth_token", "server.auth_token is required (set DMON_SERVER_AUTH_TOKEN environment variable)"},
		{c.Docker.SocketPath, "docker.socket_path", "docker.socket_path is required"},
		{c.Metrics.DiskPath, "metrics.disk_path", "metrics.disk_path is required"},
	}

	for _, field := range requiredFields {
		if field.value == "" {
			return &apperrors.ConfigurationError{
				ConfigPath: configSource,
				Key:        field.key,
				Err:        errors.New(field.message),
			}
		}
	}
	return nil
}

func (c *Config) validateRanges(configSource string) error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &apperrors.ConfigurationError{
			ConfigPath: configSource,
			Key:        "server.port",
			Err:        fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port),
		}
	}

	if c.Server.ShutdownTimeout <= 0 {
		return &apperrors.ConfigurationError{
			ConfigPath: configSource,
			Key:        "server.shutdown_timeout",
			Err:        fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout),
		}
	}

	if c.Docker.PingTimeout <= 0 {
		return &apperrors.ConfigurationError{
			ConfigPath: configSource,
			Key:        "docker.ping_timeout",
			Err:        fmt.Errorf("docker.ping_timeout must be positive, got %s", c.Docker.PingTimeout),
		}
	}

	if c.Metrics.CPUSampleInterval < 100*time.Millisecond || c.Metrics.CPUSampleInterval > 10*time.Second {
		return &apperrors.ConfigurationError{
			ConfigPath: configSource,
			Key:        "metrics.cpu_sample_interval",
			Err: fmt.Errorf("metrics.cpu_sample_interval must be between 100ms and 10s, got %s",
				c.Metrics.CPUSampleInterval),
		}
	}

	return nil
}
