package engine

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/diwise/eventity/internal/pkg/infrastructure/storage"
	"github.com/matryer/is"
)

func TestLoadConfiguration(t *testing.T) {
	is := is.New(t)

	cfg, err := LoadConfiguration(bytes.NewBufferString(configFile))
	is.NoErr(err)

	is.Equal(cfg.Driver, DriverPostgres)
	is.Equal(cfg.Postgres.Host, "db")
	is.Equal(cfg.Postgres.User, "eventity")
	is.Equal(cfg.Postgres.Port, "5432") // default is kept
	is.Equal(cfg.Redis.PoolSize, 20)
	is.Equal(cfg.Redis.URL, "redis://localhost:6379/0")
}

func TestLoadConfigurationRejectsInvalidYAML(t *testing.T) {
	is := is.New(t)

	_, err := LoadConfiguration(bytes.NewBufferString("driver: [redis"))
	is.True(err != nil)
}

func TestLoadConfigurationFromEnv(t *testing.T) {
	is := is.New(t)

	t.Setenv("STORAGE_DRIVER", DriverSQLite)
	t.Setenv("SQLITE_PATH", "/var/lib/eventity/log.db")
	t.Setenv("REDIS_POOL_SIZE", "8")

	cfg, err := LoadConfigurationFromEnv(context.Background())
	is.NoErr(err)
	is.Equal(cfg.Driver, DriverSQLite)
	is.Equal(cfg.SQLite.Path, "/var/lib/eventity/log.db")
	is.Equal(cfg.Redis.PoolSize, 8)
	is.Equal(cfg.Postgres.DBName, "eventity")
}

func TestLoadConfigurationFromEnvRejectsBadPoolSize(t *testing.T) {
	is := is.New(t)

	t.Setenv("REDIS_POOL_SIZE", "many")

	_, err := LoadConfigurationFromEnv(context.Background())
	is.True(err != nil)
}

func TestOpenEachDriver(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	server := miniredis.RunT(t)

	for _, cfg := range []*Config{
		{Driver: DriverMemory},
		{Driver: DriverRedis, Redis: RedisConfig{URL: "redis://" + server.Addr()}},
		{Driver: DriverSQLite, SQLite: SQLiteConfig{Path: filepath.Join(t.TempDir(), "eventity.db")}},
	} {
		s, err := Open(ctx, cfg)
		is.NoErr(err)

		is.NoErr(s.Push(ctx, []storage.Push{{Key: "_car-speed", Values: [][]byte{[]byte("1")}}}))
		keys, err := s.Keys(ctx, "_car-")
		is.NoErr(err)
		is.Equal(keys, []string{"_car-speed"})

		is.NoErr(s.Close())
	}
}

func TestOpenUnknownDriverFails(t *testing.T) {
	is := is.New(t)

	_, err := Open(context.Background(), &Config{Driver: "etcd"})
	is.True(err != nil)
}

const configFile string = `
driver: postgres
redis:
  poolSize: 20
postgres:
  host: db
  user: eventity
  password: secret
`
