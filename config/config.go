package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Server holds the HTTP listener settings.
type Server struct {
	Host            string   `mapstructure:"host"`
	Port            int      `mapstructure:"port"`
	ReadTimeoutSec  int      `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec int      `mapstructure:"write_timeout_sec"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
}

// DB selects and configures the relational store. Driver is postgres in
// deployments and sqlite for local hacking and tests.
type DB struct {
	Driver             string `mapstructure:"driver"`
	DSN                string `mapstructure:"dsn"`
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int    `mapstructure:"conn_max_lifetime_min"`
	MigrationsDir      string `mapstructure:"migrations_dir"`
}

// Redis configures the rate-limiter backend. Optional: with no address the
// write endpoints simply run unthrottled.
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Log configures the zap logger.
type Log struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Config holds all configuration for the application.
type Config struct {
	Server Server `mapstructure:"server"`
	DB     DB     `mapstructure:"db"`
	Redis  Redis  `mapstructure:"redis"`
	Log    Log    `mapstructure:"log"`
}

// Load reads configuration from the yaml file at path (or $CONFIG_PATH, or
// ./configs/config.yaml) with APP_-prefixed environment overrides, e.g.
// APP_DB_DSN overrides db.dsn.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine when env vars carry the settings.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_sec", 10)
	v.SetDefault("server.write_timeout_sec", 10)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "recipebook.db")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 25)
	v.SetDefault("db.conn_max_lifetime_min", 5)
	v.SetDefault("db.migrations_dir", "./migrations")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// Validate rejects configurations the server cannot start with.
func Validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	switch cfg.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("db.driver %q is not supported (postgres, sqlite)", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return fmt.Errorf("db.dsn is required")
	}
	return nil
}

// Addr returns the listener address.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
