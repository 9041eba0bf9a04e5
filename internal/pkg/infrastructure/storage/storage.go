// Package storage maps entity field histories onto an append-only keyed-list
// engine. Every (entity, field) pair owns one list; each list element is one
// encoded entry, appended in arrival order.
package storage

import (
	"context"
)

//go:generate moq -rm -out liststore_mock.go . ListStore

// ListStore is the keyed-list engine that field logs are persisted in.
// Implementations must apply Push and Delete atomically across all keys.
type ListStore interface {
	// Push appends values to the end of every listed key in one transaction.
	Push(ctx context.Context, pushes []Push) error
	// Range returns the complete list stored at key. A missing key is an empty list.
	Range(ctx context.Context, key string) ([][]byte, error)
	// Keys returns every key that starts with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Delete removes every listed key in one transaction.
	Delete(ctx context.Context, keys []string) error

	Close() error
}

// Push is a batch of values to append to a single list.
type Push struct {
	Key    string
	Values [][]byte
}
