package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the rnaplot configuration file, decoded from TOML. Flags
// override config values; config values override built-in defaults.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
	Server ServerConfig `toml:"server"`
	Render RenderConfig `toml:"render"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir is the file cache directory.
	Dir string `toml:"dir"`
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the drawing store used by serve.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// RenderConfig holds default render options applied when the
// corresponding flags are not set.
type RenderConfig struct {
	Format string  `toml:"format"`
	Scale  float64 `toml:"scale"`
	Legend string  `toml:"legend"`
}

// defaultConfig returns the built-in defaults used when no config file
// exists.
func defaultConfig() *Config {
	return &Config{
		Cache:  CacheConfig{Backend: backendFile},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// loadConfig reads the TOML config file at path. An empty path falls
// back to the default location; a missing default file is not an error.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return defaultConfig(), nil
		}
	}

	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfigPath returns the XDG config location
// (~/.config/rnaplot/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

func validateConfig(cfg *Config) error {
	switch cfg.Cache.Backend {
	case "", backendFile, backendRedis, backendNone:
	default:
		return fmt.Errorf("unknown cache backend: %s (must be 'file', 'redis', or 'none')", cfg.Cache.Backend)
	}
	if cfg.Cache.Backend == backendRedis && cfg.Redis.Addr == "" {
		return fmt.Errorf("cache backend 'redis' requires redis.addr")
	}
	return nil
}
