package config

import (
	"os"
	"regexp"
	"time"

	"github.com/stratocost/stratocost/pkg/helper"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type (
	// TCOServerConfig represents the full server configuration
	TCOServerConfig struct {
		Port     int           `yaml:"port"`
		Database DatabaseConfig `yaml:"database"`
		Pricing  PricingConfig  `yaml:"pricing"`
		Logger   LoggerConfig   `yaml:"logger"`
		JWT      JWTConfig      `yaml:"jwt"`
		Metrics  MetricsConfig  `yaml:"metrics"`
	}

	// DatabaseConfig represents the persistence configuration
	DatabaseConfig struct {
		Type     string `yaml:"type"`     // mysql, postgres, sqlite, memory
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"` // database name, or file path for sqlite
		SSLMode  string `yaml:"sslmode"`
	}

	// PricingConfig represents the pricing snapshot cache configuration
	PricingConfig struct {
		Cache PricingCacheConfig `yaml:"cache"`
	}

	// PricingCacheConfig selects where active pricing snapshots are cached
	PricingCacheConfig struct {
		Type  string             `yaml:"type"` // "memory" or "redis"
		TTL   time.Duration      `yaml:"ttl"`
		Redis PricingRedisConfig `yaml:"redis"`
	}

	// PricingRedisConfig represents the Redis configuration for the snapshot cache
	PricingRedisConfig struct {
		Addr     string `yaml:"addr"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	}

	// LoggerConfig represents the logger configuration
	LoggerConfig struct {
		Level      string `yaml:"level"`       // debug, info, warn, error
		Format     string `yaml:"format"`      // json, console
		Output     string `yaml:"output"`      // stdout, file
		FilePath   string `yaml:"file_path"`   // path to log file when output is file
		MaxSize    int    `yaml:"max_size"`    // max size of log file in MB
		MaxBackups int    `yaml:"max_backups"` // max number of backup files
		MaxAge     int    `yaml:"max_age"`     // max age of backup files in days
		Compress   bool   `yaml:"compress"`    // whether to compress backup files
		Color      bool   `yaml:"color"`       // whether to use color in console output
		Stacktrace bool   `yaml:"stacktrace"`  // whether to include stacktrace in error logs
	}

	// JWTConfig represents the caller-token validation configuration
	JWTConfig struct {
		SecretKey string        `yaml:"secret_key"`
		Duration  time.Duration `yaml:"duration"`
	}

	// MetricsConfig represents the prometheus metrics configuration
	MetricsConfig struct {
		Namespace string    `yaml:"namespace"`
		Buckets   []float64 `yaml:"buckets"`
	}
)

// LoadConfig loads configuration from a YAML file with environment variable support
func LoadConfig(filename string) (*TCOServerConfig, string, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfgPath := helper.GetCfgPath(filename)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, cfgPath, err
	}

	data = resolveEnv(data)
	var cfg TCOServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, cfgPath, err
	}

	if cfg.Port == 0 {
		cfg.Port = 5230
	}
	if cfg.Pricing.Cache.Type == "" {
		cfg.Pricing.Cache.Type = "memory"
	}
	if cfg.Pricing.Cache.TTL <= 0 {
		cfg.Pricing.Cache.TTL = 10 * time.Minute
	}

	return &cfg, cfgPath, nil
}

// resolveEnv replaces ${VAR:default} placeholders in YAML content
func resolveEnv(content []byte) []byte {
	regex := regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

	return regex.ReplaceAllFunc(content, func(match []byte) []byte {
		matches := regex.FindSubmatch(match)
		envKey := string(matches[1])
		var defaultValue string

		if len(matches) > 2 {
			defaultValue = string(matches[2])
		}

		if value, exists := os.LookupEnv(envKey); exists {
			return []byte(value)
		}
		return []byte(defaultValue)
	})
}
