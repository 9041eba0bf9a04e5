// Package redis stores field logs as redis lists, one list per key.
package redis

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/diwise/eventity/internal/pkg/infrastructure/storage"
	goredis "github.com/redis/go-redis/v9"
)

const scanBatchSize int64 = 100

type Store struct {
	client *goredis.Client
}

// New connects to the redis server at url, e.g. redis://localhost:6379/0.
// A poolSize of zero keeps the client default.
func New(ctx context.Context, url string, poolSize int) (*Store, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	if poolSize > 0 {
		opts.PoolSize = poolSize
	}

	client := goredis.NewClient(opts)

	if err = client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Store{client: client}, nil
}

func NewWithClient(client *goredis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Push(ctx context.Context, pushes []storage.Push) error {
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, p := range pushes {
			if len(p.Values) == 0 {
				continue
			}

			args := make([]any, len(p.Values))
			for i, v := range p.Values {
				args[i] = v
			}

			pipe.RPush(ctx, p.Key, args...)
		}
		return nil
	})

	return err
}

func (s *Store) Range(ctx context.Context, key string) ([][]byte, error) {
	list, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	result := make([][]byte, len(list))
	for i, v := range list {
		result[i] = []byte(v)
	}

	return result, nil
}

// Keys scans for keys beginning with prefix. Glob characters in the prefix are
// escaped and the results are checked again, since SCAN may return a key twice.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	pattern := escapeGlob(prefix) + "*"
	seen := make(map[string]struct{})
	keys := make([]string, 0)

	iter := s.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if _, ok := seen[k]; ok || !strings.HasPrefix(k, prefix) {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	if err := iter.Err(); err != nil {
		return nil, err
	}

	slices.Sort(keys)

	return keys, nil
}

func (s *Store) Delete(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		return nil
	})

	return err
}

func (s *Store) Close() error {
	return s.client.Close()
}

var globEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}
