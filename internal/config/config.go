// Package config loads simulator configuration from YAML files and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level configuration tree.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Scryfall   ScryfallConfig   `mapstructure:"scryfall"`
	Tags       TagsConfig       `mapstructure:"tags"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Viewer     ViewerConfig     `mapstructure:"viewer"`
}

// TagsConfig points at an optional TOML file of per-card tag overrides that
// replace the classifier's built-in table entries.
type TagsConfig struct {
	OverridesFile string `mapstructure:"overrides_file"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format is "console" or "json".
	Format string `mapstructure:"format"`
}

// SimulationConfig controls batch runs.
type SimulationConfig struct {
	Games          int   `mapstructure:"games"`
	Turns          int   `mapstructure:"turns"`
	CheckpointTurn int   `mapstructure:"checkpoint_turn"`
	Seed           int64 `mapstructure:"seed"`
	// Workers is the number of concurrent games; zero means GOMAXPROCS.
	Workers int `mapstructure:"workers"`
}

// ScryfallConfig controls the card data client.
type ScryfallConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	CacheDir string        `mapstructure:"cache_dir"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	// RequestDelay is the minimum spacing between API calls.
	RequestDelay time.Duration `mapstructure:"request_delay"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig holds PostgreSQL connection settings for the card store.
// The card store is optional; an empty host disables it.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// DSN builds the pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// Enabled reports whether a database was configured at all.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// ViewerConfig controls the live game viewer server.
type ViewerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration from the given file, layered under GOLDFISH_*
// environment variables. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("simulation.games", 100)
	v.SetDefault("simulation.turns", 10)
	v.SetDefault("simulation.checkpoint_turn", 4)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.workers", 0)

	v.SetDefault("scryfall.base_url", "https://api.scryfall.com")
	v.SetDefault("scryfall.cache_dir", defaultCacheDir())
	v.SetDefault("scryfall.cache_ttl", 30*24*time.Hour)
	v.SetDefault("scryfall.request_delay", 100*time.Millisecond)
	v.SetDefault("scryfall.timeout", 15*time.Second)

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 4)

	v.SetDefault("viewer.addr", ":8080")

	v.SetEnvPrefix("GOLDFISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	if c.Simulation.Games < 1 {
		return fmt.Errorf("simulation.games must be positive, got %d", c.Simulation.Games)
	}
	if c.Simulation.Turns < 1 {
		return fmt.Errorf("simulation.turns must be positive, got %d", c.Simulation.Turns)
	}
	if c.Simulation.CheckpointTurn > c.Simulation.Turns {
		return fmt.Errorf("simulation.checkpoint_turn %d exceeds turns %d",
			c.Simulation.CheckpointTurn, c.Simulation.Turns)
	}
	return nil
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".goldfish-cache"
	}
	return dir + "/goldfish/scryfall"
}
