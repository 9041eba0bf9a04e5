package storage_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/diwise/eventity/internal/pkg/infrastructure/storage"
	"github.com/diwise/eventity/internal/pkg/infrastructure/storage/memory"
	eventityerrors "github.com/diwise/eventity/pkg/eventity/errors"
	"github.com/diwise/eventity/pkg/eventity/types"
	"github.com/matryer/is"
)

func TestFieldKeyLayout(t *testing.T) {
	is := is.New(t)

	is.Equal(storage.FieldKey("car", "speed"), "_car-speed")
	is.Equal(storage.EntityPrefix("car"), "_car-")
	is.Equal(storage.FieldKey("a-b", "c"), `_a\-b-c`)
	is.Equal(storage.FieldKey(`a\`, "c"), `_a\\-c`)
}

func TestEntityPrefixesDoNotOverlap(t *testing.T) {
	is := is.New(t)

	key := storage.FieldKey("a-b", "c")
	is.True(!strings.HasPrefix(key, storage.EntityPrefix("a"))) // entity "a" must not own keys of entity "a-b"

	is.True(storage.FieldKey("a", "b-c") != storage.FieldKey("a-b", "c"))
}

func TestAppendThenReadAll(t *testing.T) {
	is, ctx, log := setupPatchLog(t)

	err := log.Append(ctx, "car", []types.Patch{
		{Field: "speed", Value: types.Number(1)},
		{Field: "name", Value: types.String("volvo")},
		{Field: "speed", Value: types.Number(2)},
	}, 1000)
	is.NoErr(err)

	err = log.Append(ctx, "car", []types.Patch{{Field: "speed", Value: types.Number(3)}}, 2000)
	is.NoErr(err)

	entries, err := log.ReadAll(ctx, "car", "speed")
	is.NoErr(err)
	is.Equal(len(entries), 3)
	is.Equal(entries[0].Timestamp, int64(1000))
	is.Equal(entries[2].Timestamp, int64(2000))
	is.True(entries[0].Patch.Value.Equal(types.Number(1)))
	is.True(entries[1].Patch.Value.Equal(types.Number(2)))
	is.True(entries[2].Patch.Value.Equal(types.Number(3)))
	is.Equal(entries[2].Patch.Field, "speed")

	entries, err = log.ReadAll(ctx, "car", "name")
	is.NoErr(err)
	is.Equal(len(entries), 1)
	is.True(entries[0].Patch.Value.Equal(types.String("volvo")))
}

func TestAppendGroupsByFieldInOneTransaction(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	engine := memory.New()
	mock := &storage.ListStoreMock{PushFunc: engine.Push}

	err := storage.NewPatchLog(mock).Append(ctx, "car", []types.Patch{
		{Field: "speed", Value: types.Number(1)},
		{Field: "name", Value: types.String("volvo")},
		{Field: "speed", Value: types.Number(2)},
	}, 1000)
	is.NoErr(err)

	is.Equal(len(mock.PushCalls()), 1) // every field is appended in the same transaction

	pushes := mock.PushCalls()[0].Pushes
	is.Equal(len(pushes), 2)
	is.Equal(pushes[0].Key, "_car-speed")
	is.Equal(len(pushes[0].Values), 2)
	is.Equal(pushes[1].Key, "_car-name")
	is.Equal(len(pushes[1].Values), 1)
}

func TestAppendOfNothingDoesNotTouchTheStore(t *testing.T) {
	is := is.New(t)

	mock := &storage.ListStoreMock{}
	is.NoErr(storage.NewPatchLog(mock).Append(context.Background(), "car", nil, 1000))
	is.Equal(len(mock.PushCalls()), 0)
}

func TestFailedAppendLeavesNothingVisible(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	engine := memory.New()
	mock := &storage.ListStoreMock{
		PushFunc: func(ctx context.Context, pushes []storage.Push) error {
			return errors.New("connection reset")
		},
		RangeFunc: engine.Range,
	}

	log := storage.NewPatchLog(mock)
	err := log.Append(ctx, "car", []types.Patch{{Field: "speed", Value: types.Number(1)}}, 1000)
	is.True(errors.Is(err, eventityerrors.ErrStorage))

	entries, err := log.ReadAll(ctx, "car", "speed")
	is.NoErr(err)
	is.Equal(len(entries), 0)
}

func TestReadAllOfUnknownFieldIsEmpty(t *testing.T) {
	is, ctx, log := setupPatchLog(t)

	entries, err := log.ReadAll(ctx, "car", "never-written")
	is.NoErr(err)
	is.True(entries != nil)
	is.Equal(len(entries), 0)
}

func TestReadAllReportsCorruptEntriesAsStorageErrors(t *testing.T) {
	is := is.New(t)

	mock := &storage.ListStoreMock{
		RangeFunc: func(ctx context.Context, key string) ([][]byte, error) {
			return [][]byte{[]byte("not msgpack")}, nil
		},
	}

	_, err := storage.NewPatchLog(mock).ReadAll(context.Background(), "car", "speed")
	is.True(errors.Is(err, eventityerrors.ErrStorage))
}

func TestDeleteEntityRemovesAllFieldsInOneTransaction(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	engine := memory.New()
	mock := &storage.ListStoreMock{
		PushFunc:   engine.Push,
		RangeFunc:  engine.Range,
		KeysFunc:   engine.Keys,
		DeleteFunc: engine.Delete,
	}
	log := storage.NewPatchLog(mock)

	is.NoErr(log.Append(ctx, "car", []types.Patch{
		{Field: "speed", Value: types.Number(1)},
		{Field: "name", Value: types.String("volvo")},
	}, 1000))
	is.NoErr(log.Append(ctx, "car-2", []types.Patch{{Field: "speed", Value: types.Number(9)}}, 1000))

	is.NoErr(log.DeleteEntity(ctx, "car"))

	is.Equal(len(mock.DeleteCalls()), 1)
	is.Equal(len(mock.DeleteCalls()[0].Keys), 2)

	entries, err := log.ReadAll(ctx, "car", "speed")
	is.NoErr(err)
	is.Equal(len(entries), 0)

	entries, err = log.ReadAll(ctx, "car-2", "speed")
	is.NoErr(err)
	is.Equal(len(entries), 1) // a neighbouring entity survives
}

func TestDeleteOfUnknownEntityIsANoop(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	engine := memory.New()
	mock := &storage.ListStoreMock{KeysFunc: engine.Keys, DeleteFunc: engine.Delete}
	log := storage.NewPatchLog(mock)

	is.NoErr(log.DeleteEntity(ctx, "ghost"))
	is.NoErr(log.DeleteEntity(ctx, "ghost"))
	is.Equal(len(mock.DeleteCalls()), 0)
}

func TestStorageFailuresAreWrapped(t *testing.T) {
	is := is.New(t)
	cause := errors.New("boom")

	mock := &storage.ListStoreMock{
		KeysFunc: func(ctx context.Context, prefix string) ([]string, error) { return nil, cause },
		RangeFunc: func(ctx context.Context, key string) ([][]byte, error) {
			return nil, cause
		},
	}
	log := storage.NewPatchLog(mock)

	err := log.DeleteEntity(context.Background(), "car")
	is.True(errors.Is(err, eventityerrors.ErrStorage))
	is.True(errors.Is(err, cause)) // the cause is kept

	_, err = log.ReadAll(context.Background(), "car", "speed")
	is.True(errors.Is(err, eventityerrors.ErrStorage))
}

func setupPatchLog(t *testing.T) (*is.I, context.Context, *storage.PatchLog) {
	return is.New(t), context.Background(), storage.NewPatchLog(memory.New())
}
