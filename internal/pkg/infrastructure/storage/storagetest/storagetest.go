// Package storagetest holds behaviour checks that every keyed-list engine must pass.
package storagetest

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/diwise/eventity/internal/pkg/infrastructure/storage"
	"github.com/matryer/is"
)

// Run exercises the ListStore contract against engines created by newStore.
// Each check gets a fresh engine.
func Run(t *testing.T, newStore func(t *testing.T) storage.ListStore) {
	t.Run("PushAppendsInArrivalOrder", func(t *testing.T) {
		is, ctx, s := setup(t, newStore)

		is.NoErr(s.Push(ctx, []storage.Push{{Key: "_e-a", Values: values("1", "2")}}))
		is.NoErr(s.Push(ctx, []storage.Push{{Key: "_e-a", Values: values("3")}}))

		list, err := s.Range(ctx, "_e-a")
		is.NoErr(err)
		is.Equal(asStrings(list), []string{"1", "2", "3"})
	})

	t.Run("PushSpansSeveralKeys", func(t *testing.T) {
		is, ctx, s := setup(t, newStore)

		is.NoErr(s.Push(ctx, []storage.Push{
			{Key: "_e-a", Values: values("a1")},
			{Key: "_e-b", Values: values("b1", "b2")},
		}))

		a, err := s.Range(ctx, "_e-a")
		is.NoErr(err)
		is.Equal(asStrings(a), []string{"a1"})

		b, err := s.Range(ctx, "_e-b")
		is.NoErr(err)
		is.Equal(asStrings(b), []string{"b1", "b2"})
	})

	t.Run("RangeOfMissingKeyIsEmpty", func(t *testing.T) {
		is, ctx, s := setup(t, newStore)

		list, err := s.Range(ctx, "_nothing-here")
		is.NoErr(err)
		is.Equal(len(list), 0)
	})

	t.Run("ValuesAreBinarySafe", func(t *testing.T) {
		is, ctx, s := setup(t, newStore)

		raw := []byte{0x92, 0x00, 0xff, 0x0a, 0x00}
		is.NoErr(s.Push(ctx, []storage.Push{{Key: "_e-bin", Values: [][]byte{raw}}}))

		list, err := s.Range(ctx, "_e-bin")
		is.NoErr(err)
		is.Equal(len(list), 1)
		is.Equal(list[0], raw)
	})

	t.Run("KeysMatchesLiteralPrefixOnly", func(t *testing.T) {
		is, ctx, s := setup(t, newStore)

		is.NoErr(s.Push(ctx, []storage.Push{
			{Key: "_e-x", Values: values("1")},
			{Key: "_e-y", Values: values("1")},
			{Key: `_e\-f-x`, Values: values("1")},
			{Key: "_ex-x", Values: values("1")},
			{Key: "_e%_*?[a]-x", Values: values("1")},
		}))

		keys, err := s.Keys(ctx, "_e-")
		is.NoErr(err)
		is.Equal(sorted(keys), []string{"_e-x", "_e-y"})

		keys, err = s.Keys(ctx, `_e\-f-`)
		is.NoErr(err)
		is.Equal(keys, []string{`_e\-f-x`})

		keys, err = s.Keys(ctx, "_e%_*?[a]-")
		is.NoErr(err)
		is.Equal(keys, []string{"_e%_*?[a]-x"}) // wildcard characters in the prefix are literal

		keys, err = s.Keys(ctx, "_none-")
		is.NoErr(err)
		is.Equal(len(keys), 0)
	})

	t.Run("DeleteRemovesEveryListedKey", func(t *testing.T) {
		is, ctx, s := setup(t, newStore)

		is.NoErr(s.Push(ctx, []storage.Push{
			{Key: "_e-a", Values: values("1")},
			{Key: "_e-b", Values: values("1")},
			{Key: "_f-a", Values: values("1")},
		}))

		is.NoErr(s.Delete(ctx, []string{"_e-a", "_e-b"}))

		keys, err := s.Keys(ctx, "_e-")
		is.NoErr(err)
		is.Equal(len(keys), 0)

		list, err := s.Range(ctx, "_f-a")
		is.NoErr(err)
		is.Equal(len(list), 1) // other keys are left alone
	})

	t.Run("DeleteOfMissingKeysSucceeds", func(t *testing.T) {
		is, ctx, s := setup(t, newStore)

		is.NoErr(s.Delete(ctx, []string{"_gone-a"}))
		is.NoErr(s.Delete(ctx, []string{}))
	})

	t.Run("ManyValues", func(t *testing.T) {
		is, ctx, s := setup(t, newStore)

		expected := make([]string, 0, 250)
		for i := range 250 {
			expected = append(expected, fmt.Sprintf("v%03d", i))
		}

		is.NoErr(s.Push(ctx, []storage.Push{{Key: "_e-many", Values: values(expected...)}}))

		list, err := s.Range(ctx, "_e-many")
		is.NoErr(err)
		is.Equal(asStrings(list), expected)
	})
}

func setup(t *testing.T, newStore func(t *testing.T) storage.ListStore) (*is.I, context.Context, storage.ListStore) {
	is := is.New(t)
	s := newStore(t)
	t.Cleanup(func() { s.Close() })
	return is, context.Background(), s
}

func values(vs ...string) [][]byte {
	result := make([][]byte, len(vs))
	for i, v := range vs {
		result[i] = []byte(v)
	}
	return result
}

func asStrings(list [][]byte) []string {
	result := make([]string, len(list))
	for i, v := range list {
		result[i] = string(v)
	}
	return result
}

func sorted(keys []string) []string {
	result := slices.Clone(keys)
	slices.Sort(result)
	return result
}
