// Package config resolves runtime configuration from flags, environment, .env and config files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"inventory_manager/store"
)

// Keys shared by flags, environment variables (INVENTORY_ + upper snake case) and config files.
const (
	KeyConfig          = "config"
	KeyEnvFile         = "env-file"
	KeyStore           = "store"
	KeyStoreDir        = "store-dir"
	KeyRedisAddr       = "redis-addr"
	KeyRedisPassword   = "redis-password"
	KeyRedisDB         = "redis-db"
	KeyRedisPrefix     = "redis-prefix"
	KeyDatabaseURL     = "database-url"
	KeyPostgresTable   = "postgres-table"
	KeyMongoURI        = "mongo-uri"
	KeyMongoDB         = "mongo-db"
	KeyMongoCollection = "mongo-collection"
	KeyLogLevel        = "log-level"
	KeyLogFormat       = "log-format"
	KeyHTTPAddr        = "http-addr"
	KeyReportSchedule  = "report-schedule"
)

// Config represents the full application configuration surface.
type Config struct {
	Store  store.Options
	Log    LogConfig
	HTTP   HTTPConfig
	Report ReportConfig
}

// LogConfig holds logger options.
type LogConfig struct {
	Level  string
	Format string
}

// HTTPConfig holds HTTP adapter options.
type HTTPConfig struct {
	Addr string
}

// ReportConfig holds the cron schedule for the periodic summary report. Empty disables it.
type ReportConfig struct {
	Schedule string
}

// NewViper returns a viper instance reading INVENTORY_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyStore, "file")
	v.SetDefault(KeyStoreDir, "data")
	v.SetDefault(KeyRedisPrefix, "inventory:")
	v.SetDefault(KeyPostgresTable, "inventory_collections")
	v.SetDefault(KeyMongoDB, "inventory")
	v.SetDefault(KeyMongoCollection, "inventory_collections")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyHTTPAddr, ":8080")
	return v
}

// LoadEnvFile loads variables from envFile into the process environment.
// An empty envFile loads ./.env if present; an explicit envFile must exist.
func LoadEnvFile(envFile string) error {
	if envFile == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed loading .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed loading env file %s: %w", envFile, err)
	}
	return nil
}

// Load materializes a validated Config from v, reading the optional config file first.
func Load(v *viper.Viper) (Config, error) {
	if err := LoadEnvFile(v.GetString(KeyEnvFile)); err != nil {
		return Config{}, err
	}
	if cfg := v.GetString(KeyConfig); cfg != "" {
		v.SetConfigFile(cfg)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfg, err)
		}
	}

	c := Config{
		Store: store.Options{
			Kind:            strings.ToLower(v.GetString(KeyStore)),
			Dir:             v.GetString(KeyStoreDir),
			RedisAddr:       v.GetString(KeyRedisAddr),
			RedisPassword:   v.GetString(KeyRedisPassword),
			RedisDB:         v.GetInt(KeyRedisDB),
			RedisPrefix:     v.GetString(KeyRedisPrefix),
			DatabaseURL:     v.GetString(KeyDatabaseURL),
			PostgresTable:   v.GetString(KeyPostgresTable),
			MongoURI:        v.GetString(KeyMongoURI),
			MongoDB:         v.GetString(KeyMongoDB),
			MongoCollection: v.GetString(KeyMongoCollection),
		},
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		HTTP: HTTPConfig{
			Addr: v.GetString(KeyHTTPAddr),
		},
		Report: ReportConfig{
			Schedule: v.GetString(KeyReportSchedule),
		},
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate ensures that the selected backend has what it needs.
func (c *Config) Validate() error {
	switch c.Store.Kind {
	case "memory", "mem":
	case "file":
		if c.Store.Dir == "" {
			return errors.New("store-dir must be provided for the file store")
		}
	case "redis":
		if c.Store.RedisAddr == "" {
			return errors.New("redis-addr must be provided for the redis store")
		}
	case "postgres":
		if c.Store.DatabaseURL == "" {
			return errors.New("database-url must be provided for the postgres store")
		}
	case "mongo":
		if c.Store.MongoURI == "" {
			return errors.New("mongo-uri must be provided for the mongo store")
		}
		if c.Store.MongoDB == "" {
			return errors.New("mongo-db must not be empty")
		}
	default:
		return fmt.Errorf("unknown store kind: %s", c.Store.Kind)
	}

	if c.Store.RedisDB < 0 {
		return errors.New("redis-db must be non-negative")
	}
	return nil
}
