package storage

import (
	"context"
	"fmt"

	"github.com/diwise/eventity/pkg/eventity/errors"
	"github.com/diwise/eventity/pkg/eventity/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("eventity/storage")

const (
	TraceAttributeEntityID string = "entity-id"
	TraceAttributeField    string = "field"
)

// PatchLog stores entity field histories in a ListStore. It does not retry:
// any engine failure is returned to the caller as a storage error.
type PatchLog struct {
	store ListStore
}

func NewPatchLog(store ListStore) *PatchLog {
	return &PatchLog{store: store}
}

// Append groups patches by field and appends one entry per patch, all stamped
// with timestamp, to the matching field logs in a single transaction.
func (l *PatchLog) Append(ctx context.Context, entityID string, patches []types.Patch, timestamp int64) error {
	var err error

	ctx, span := tracer.Start(ctx, "append",
		trace.WithAttributes(attribute.String(TraceAttributeEntityID, entityID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if len(patches) == 0 {
		return nil
	}

	pushes := make([]Push, 0)
	index := make(map[string]int)

	for _, p := range patches {
		var data []byte
		data, err = encodeEntry(timestamp, p)
		if err != nil {
			err = errors.NewStorageError("append", err)
			return err
		}

		idx, ok := index[p.Field]
		if !ok {
			idx = len(pushes)
			index[p.Field] = idx
			pushes = append(pushes, Push{Key: FieldKey(entityID, p.Field)})
		}

		pushes[idx].Values = append(pushes[idx].Values, data)
	}

	err = l.store.Push(ctx, pushes)
	if err != nil {
		err = errors.NewStorageError("append", err)
		return err
	}

	return nil
}

// ReadAll returns every entry of a field log in arrival order. A field that
// was never written yields an empty slice.
func (l *PatchLog) ReadAll(ctx context.Context, entityID, field string) ([]types.Entry, error) {
	var err error

	ctx, span := tracer.Start(ctx, "read-all",
		trace.WithAttributes(
			attribute.String(TraceAttributeEntityID, entityID),
			attribute.String(TraceAttributeField, field),
		),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	raw, err := l.store.Range(ctx, FieldKey(entityID, field))
	if err != nil {
		err = errors.NewStorageError("read", err)
		return nil, err
	}

	entries := make([]types.Entry, 0, len(raw))

	for i, data := range raw {
		var e types.Entry
		e, err = decodeEntry(data)
		if err != nil {
			err = errors.NewStorageError("read", fmt.Errorf("entry %d of field %q: %w", i, field, err))
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// DeleteEntity removes every field log of the entity in one transaction.
// Deleting an entity without fields succeeds.
func (l *PatchLog) DeleteEntity(ctx context.Context, entityID string) error {
	var err error

	ctx, span := tracer.Start(ctx, "delete-entity",
		trace.WithAttributes(attribute.String(TraceAttributeEntityID, entityID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	keys, err := l.store.Keys(ctx, EntityPrefix(entityID))
	if err != nil {
		err = errors.NewStorageError("delete", err)
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	err = l.store.Delete(ctx, keys)
	if err != nil {
		err = errors.NewStorageError("delete", err)
		return err
	}

	return nil
}
