package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"recordbook/internal/domain/record"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultLogLevel      = "warn"
	defaultEnv           = "local"
	defaultConfigDir     = ".recordbook"
	defaultTimeout       = 10 * time.Second
)

type Config struct {
	Env           string        `mapstructure:"app_env"`
	ServerAddress string        `mapstructure:"server_address"`
	LogLevel      string        `mapstructure:"log_level"`
	ConfigDir     string        `mapstructure:"config_dir"`
	SessionPath   string        `mapstructure:"session_path"`
	SessionID     string        `mapstructure:"session_id"`
	Kind          record.Kind   `mapstructure:"book_kind"`
	Timeout       time.Duration `mapstructure:"timeout"`
	EnableTLS     bool          `mapstructure:"enable_tls"`
	Format        string        `mapstructure:"format"`
}

// Load reads .env, the environment and whatever config file the global
// viper instance has already read.
func Load() (*Config, error) {
	envPath := ".env"
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("BOOK_KIND", string(record.KindTodo))
	viper.SetDefault("TIMEOUT", defaultTimeout)
	viper.SetDefault("FORMAT", "text")

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		configDir = filepath.Join(home, configDir)
	}

	sessionPath := viper.GetString("SESSION_PATH")
	if sessionPath == "" {
		sessionPath = filepath.Join(configDir, "session")
	}

	cfg := &Config{
		Env:           strings.ToLower(viper.GetString("APP_ENV")),
		ServerAddress: viper.GetString("SERVER_ADDRESS"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
		ConfigDir:     configDir,
		SessionPath:   sessionPath,
		SessionID:     viper.GetString("SESSION_ID"),
		Kind:          record.Kind(strings.ToLower(viper.GetString("BOOK_KIND"))),
		Timeout:       viper.GetDuration("TIMEOUT"),
		EnableTLS:     viper.GetBool("ENABLE_TLS"),
		Format:        viper.GetString("FORMAT"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("client config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return errors.New("server_address must not be empty")
	}
	if err := c.Kind.Validate(); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

// BaseURL returns the server root, adding a scheme when the address has none.
func (c *Config) BaseURL() string {
	if strings.HasPrefix(c.ServerAddress, "http://") || strings.HasPrefix(c.ServerAddress, "https://") {
		return strings.TrimRight(c.ServerAddress, "/")
	}
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}
	return scheme + strings.TrimRight(c.ServerAddress, "/")
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}
