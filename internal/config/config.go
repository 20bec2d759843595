package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"recordbook/internal/domain/record"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	defaultRunAddress    = "localhost:8080"
	defaultLogLevel      = "info"
	defaultSessionTTL    = 24 * time.Hour
	defaultSweepInterval = time.Minute
	defaultShutdown      = 10 * time.Second
)

type Config struct {
	Env     string
	Server  server
	Logger  logger
	Book    book
	Session session
}

type server struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type book struct {
	// Kind of the book a session gets when the client does not ask for one
	Kind record.Kind `env:"BOOK_KIND" envDefault:"todo"`
	// IDStart overrides the counter start; negative keeps the kind default
	IDStart  int    `env:"ID_START" envDefault:"-1"`
	SeedPath string `env:"SEED_PATH"`
}

type session struct {
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
}

// Load reads the optional .env file and the environment.
func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load %s: %w", envPath, err)
		}
	}
	return fromViper(newViper())
}

// MustLoad is Load that stops the process on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", defaultRunAddress)
	v.SetDefault("shutdown_timeout", defaultShutdown)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("book_kind", string(record.KindTodo))
	v.SetDefault("id_start", -1)
	v.SetDefault("session_ttl", defaultSessionTTL)
	v.SetDefault("session_sweep_interval", defaultSweepInterval)
	return v
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env: strings.ToLower(v.GetString("app_env")),
		Server: server{
			RunAddress:      v.GetString("run_address"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Logger: logger{LogLevel: v.GetString("log_level")},
		Book: book{
			Kind:     record.Kind(strings.ToLower(v.GetString("book_kind"))),
			IDStart:  v.GetInt("id_start"),
			SeedPath: v.GetString("seed_path"),
		},
		Session: session{
			TTL:           v.GetDuration("session_ttl"),
			SweepInterval: v.GetDuration("session_sweep_interval"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("app_env must be one of %s, %s, %s, got %q", EnvLocal, EnvDev, EnvProd, c.Env)
	}
	if c.Server.RunAddress == "" {
		return errors.New("run_address must not be empty")
	}
	if err := c.Book.Kind.Validate(); err != nil {
		return fmt.Errorf("book_kind: %w", err)
	}
	if c.Session.TTL <= 0 {
		return errors.New("session_ttl must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return errors.New("session_sweep_interval must be positive")
	}
	return nil
}

func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}
