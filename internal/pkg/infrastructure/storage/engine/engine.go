// Package engine selects and opens the keyed-list engine a service stores its
// field logs in.
package engine

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/diwise/eventity/internal/pkg/infrastructure/storage"
	"github.com/diwise/eventity/internal/pkg/infrastructure/storage/memory"
	"github.com/diwise/eventity/internal/pkg/infrastructure/storage/postgres"
	"github.com/diwise/eventity/internal/pkg/infrastructure/storage/redis"
	"github.com/diwise/eventity/internal/pkg/infrastructure/storage/sqlite"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	yaml "gopkg.in/yaml.v2"
)

const (
	DriverMemory   string = "memory"
	DriverRedis    string = "redis"
	DriverPostgres string = "postgres"
	DriverSQLite   string = "sqlite"
)

type RedisConfig struct {
	URL      string `yaml:"url"`
	PoolSize int    `yaml:"poolSize"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type Config struct {
	Driver   string          `yaml:"driver"`
	Redis    RedisConfig     `yaml:"redis"`
	Postgres postgres.Config `yaml:"postgres"`
	SQLite   SQLiteConfig    `yaml:"sqlite"`
}

func defaultConfig() *Config {
	return &Config{
		Driver: DriverRedis,
		Redis: RedisConfig{
			URL: "redis://localhost:6379/0",
		},
		Postgres: postgres.Config{
			Port:    "5432",
			DBName:  "eventity",
			SSLMode: "disable",
		},
		SQLite: SQLiteConfig{
			Path: "eventity.db",
		},
	}
}

// LoadConfiguration reads a yaml storage configuration. Settings missing from
// the file keep their defaults.
func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	err = yaml.Unmarshal(buf, cfg)

	return cfg, err
}

// LoadConfigurationFromEnv builds the storage configuration from environment variables.
func LoadConfigurationFromEnv(ctx context.Context) (*Config, error) {
	def := defaultConfig()

	poolSize, err := strconv.Atoi(env.GetVariableOrDefault(ctx, "REDIS_POOL_SIZE", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_POOL_SIZE: %w", err)
	}

	return &Config{
		Driver: env.GetVariableOrDefault(ctx, "STORAGE_DRIVER", def.Driver),
		Redis: RedisConfig{
			URL:      env.GetVariableOrDefault(ctx, "REDIS_URL", def.Redis.URL),
			PoolSize: poolSize,
		},
		Postgres: postgres.Config{
			Host:     env.GetVariableOrDefault(ctx, "POSTGRES_HOST", ""),
			User:     env.GetVariableOrDefault(ctx, "POSTGRES_USER", ""),
			Password: env.GetVariableOrDefault(ctx, "POSTGRES_PASSWORD", ""),
			Port:     env.GetVariableOrDefault(ctx, "POSTGRES_PORT", def.Postgres.Port),
			DBName:   env.GetVariableOrDefault(ctx, "POSTGRES_DBNAME", def.Postgres.DBName),
			SSLMode:  env.GetVariableOrDefault(ctx, "POSTGRES_SSLMODE", def.Postgres.SSLMode),
		},
		SQLite: SQLiteConfig{
			Path: env.GetVariableOrDefault(ctx, "SQLITE_PATH", def.SQLite.Path),
		},
	}, nil
}

// Open connects to the engine named by cfg.Driver.
func Open(ctx context.Context, cfg *Config) (storage.ListStore, error) {
	switch cfg.Driver {
	case DriverMemory:
		return memory.New(), nil
	case DriverRedis:
		return redis.New(ctx, cfg.Redis.URL, cfg.Redis.PoolSize)
	case DriverPostgres:
		return postgres.New(ctx, cfg.Postgres)
	case DriverSQLite:
		return sqlite.Open(cfg.SQLite.Path)
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
