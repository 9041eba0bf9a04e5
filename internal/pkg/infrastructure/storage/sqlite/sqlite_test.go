package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/diwise/eventity/internal/pkg/infrastructure/storage"
	"github.com/diwise/eventity/internal/pkg/infrastructure/storage/storagetest"
	"github.com/matryer/is"
)

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.ListStore {
		s, err := Open(filepath.Join(t.TempDir(), "eventity.db"))
		if err != nil {
			t.Fatalf("failed to open sqlite db: %s", err.Error())
		}
		return s
	})
}

func TestKeysAreCaseSensitive(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	s, err := Open(filepath.Join(t.TempDir(), "eventity.db"))
	is.NoErr(err)
	defer s.Close()

	is.NoErr(s.Push(ctx, []storage.Push{
		{Key: "_car-speed", Values: [][]byte{[]byte("1")}},
		{Key: "_CAR-speed", Values: [][]byte{[]byte("1")}},
	}))

	keys, err := s.Keys(ctx, "_car-")
	is.NoErr(err)
	is.Equal(keys, []string{"_car-speed"})
}

func TestListsSurviveReopen(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "eventity.db")

	s, err := Open(path)
	is.NoErr(err)
	is.NoErr(s.Push(ctx, []storage.Push{{Key: "_car-speed", Values: [][]byte{[]byte("1"), []byte("2")}}}))
	is.NoErr(s.Close())

	s, err = Open(path)
	is.NoErr(err)
	defer s.Close()

	list, err := s.Range(ctx, "_car-speed")
	is.NoErr(err)
	is.Equal(len(list), 2)
}

func TestOpenRequiresPath(t *testing.T) {
	is := is.New(t)

	_, err := Open("  ")
	is.True(err != nil)
}
