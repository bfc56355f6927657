// Package config loads loan-qualifier settings from an optional YAML file,
// LOANQ_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "LOANQ"

type Config struct {
	RateSheet string        `mapstructure:"rate_sheet"`
	Server    ServerConfig  `mapstructure:"server"`
	Cache     CacheConfig   `mapstructure:"cache"`
	Logging   LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	RateLimit       int           `mapstructure:"rate_limit"` // requests per window per client
	RateWindow      time.Duration `mapstructure:"rate_window"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CacheConfig struct {
	Driver    string        `mapstructure:"driver"` // "memory" or "redis"
	RedisAddr string        `mapstructure:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Load reads configuration. When path is empty, ./loanq.yaml is used if it
// exists; environment variables override file values, e.g. LOANQ_CACHE_DRIVER.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("loanq")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rate_sheet", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_limit", 5)
	v.SetDefault("server.rate_window", time.Minute)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.ttl", 10*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", false)
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	switch c.Cache.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("config error: unknown cache driver %q", c.Cache.Driver)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("config error: 'cache.ttl' must be non-negative")
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("config error: 'server.rate_limit' must be positive")
	}
	if c.Server.RateWindow <= 0 {
		return fmt.Errorf("config error: 'server.rate_window' must be positive")
	}
	return nil
}
