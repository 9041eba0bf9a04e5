// Package postgres keeps every keyed list in a single table, ordered by an
// increasing sequence number.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/diwise/eventity/internal/pkg/infrastructure/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Port     string `yaml:"port"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	return Connect(ctx, cfg.ConnStr())
}

// Connect opens a pool against connStr and makes sure the list table exists.
func Connect(ctx context.Context, connStr string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}

	s := &Store{pool: pool}

	err = s.initialize(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Store) initialize(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS list_entries (
			seq   BIGSERIAL PRIMARY KEY,
			key   TEXT NOT NULL,
			value BYTEA NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS list_entries_key_seq_idx ON list_entries (key, seq);`,
	}

	for _, sql := range statements {
		_, err := s.pool.Exec(ctx, sql)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) Push(ctx context.Context, pushes []storage.Push) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}

	for _, p := range pushes {
		for _, v := range p.Values {
			_, err := tx.Exec(ctx, `INSERT INTO list_entries (key, value) VALUES ($1, $2);`, p.Key, v)
			if err != nil {
				tx.Rollback(ctx)
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) Range(ctx context.Context, key string) ([][]byte, error) {
	rows, err := s.pool.Query(ctx, `SELECT value FROM list_entries WHERE key = $1 ORDER BY seq;`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([][]byte, 0)

	for rows.Next() {
		var v []byte
		err := rows.Scan(&v)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT key FROM list_entries WHERE key LIKE $1 ESCAPE '\' ORDER BY key;`,
		escapeLike(prefix)+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0)

	for rows.Next() {
		var k string
		err := rows.Scan(&k)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}

func (s *Store) Delete(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	_, err := s.pool.Exec(ctx, `DELETE FROM list_entries WHERE key = ANY($1);`, keys)
	return err
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
