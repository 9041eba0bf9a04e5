package eventity

import (
	"context"
	"strings"
	"time"

	"github.com/diwise/eventity/internal/pkg/application/notifications"
	"github.com/diwise/eventity/internal/pkg/application/views"
	"github.com/diwise/eventity/pkg/eventity/errors"
	"github.com/diwise/eventity/pkg/eventity/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

//go:generate moq -rm -out entitylog_mock.go . EntityLog

type EntityLog interface {
	PatchEntity(ctx context.Context, entityID string, patches []types.Patch) error
	DeleteEntity(ctx context.Context, entityID string) error
	QueryEntity(ctx context.Context, entityID string, views []types.View) (map[string]types.Value, error)
}

// App is an EntityLog with a lifecycle for its background workers.
type App interface {
	EntityLog

	Start() error
	Stop() error
}

// PatchLog is the storage side of an entity log.
type PatchLog interface {
	Append(ctx context.Context, entityID string, patches []types.Patch, timestamp int64) error
	ReadAll(ctx context.Context, entityID, field string) ([]types.Entry, error)
	DeleteEntity(ctx context.Context, entityID string) error
}

const TraceAttributeEntityID string = "entity-id"

var tracer = otel.Tracer("eventity/app")

type app struct {
	log      PatchLog
	notifier notifications.Notifier
	now      func() time.Time
}

type Option func(*app)

// WithClock replaces the clock used to stamp incoming patches.
func WithClock(now func() time.Time) Option {
	return func(a *app) {
		a.now = now
	}
}

// WithNotifier reports accepted patches and deletions to n.
func WithNotifier(n notifications.Notifier) Option {
	return func(a *app) {
		a.notifier = n
	}
}

func New(log PatchLog, options ...Option) App {
	a := &app{
		log: log,
		now: time.Now,
	}

	for _, option := range options {
		option(a)
	}

	return a
}

func (a *app) Start() error {
	if a.notifier != nil {
		return a.notifier.Start()
	}
	return nil
}

func (a *app) Stop() error {
	if a.notifier != nil {
		return a.notifier.Stop()
	}
	return nil
}

// PatchEntity stamps every patch with the same ingestion time and appends the
// batch to the entity's field logs. Nothing is written if any patch is invalid.
func (a *app) PatchEntity(ctx context.Context, entityID string, patches []types.Patch) error {
	var err error

	ctx, span := tracer.Start(ctx, "patch-entity",
		trace.WithAttributes(attribute.String(TraceAttributeEntityID, entityID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if err = validateEntityID(entityID); err != nil {
		return err
	}

	for _, p := range patches {
		if p.Field == "" {
			err = errors.NewBadRequestError("every patch must name a field")
			return err
		}
	}

	timestamp := a.now().UnixMilli()

	// a started write is allowed to finish even if the caller goes away
	err = a.log.Append(context.WithoutCancel(ctx), entityID, patches, timestamp)
	if err != nil {
		return err
	}

	logging.GetFromContext(ctx).Debug("patches appended", "entity_id", entityID, "count", len(patches))

	if a.notifier != nil && len(patches) > 0 {
		entries := make([]types.Entry, 0, len(patches))
		for _, p := range patches {
			entries = append(entries, types.Entry{Timestamp: timestamp, Patch: p})
		}
		a.notifier.PatchesAppended(ctx, entityID, entries)
	}

	return nil
}

// DeleteEntity removes every field log of the entity. Deleting an unknown
// entity succeeds.
func (a *app) DeleteEntity(ctx context.Context, entityID string) error {
	var err error

	ctx, span := tracer.Start(ctx, "delete-entity",
		trace.WithAttributes(attribute.String(TraceAttributeEntityID, entityID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if err = validateEntityID(entityID); err != nil {
		return err
	}

	err = a.log.DeleteEntity(context.WithoutCancel(ctx), entityID)
	if err != nil {
		return err
	}

	logging.GetFromContext(ctx).Debug("entity deleted", "entity_id", entityID)

	if a.notifier != nil {
		a.notifier.EntityDeleted(ctx, entityID)
	}

	return nil
}

// QueryEntity reads each distinct field referenced by the views concurrently
// and evaluates the views in request order. The first view that fails aborts
// the query and its error is returned.
func (a *app) QueryEntity(ctx context.Context, entityID string, vs []types.View) (map[string]types.Value, error) {
	var err error

	ctx, span := tracer.Start(ctx, "query-entity",
		trace.WithAttributes(attribute.String(TraceAttributeEntityID, entityID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if err = validateEntityID(entityID); err != nil {
		return nil, err
	}

	for _, v := range vs {
		if v.Field == "" {
			err = errors.NewBadRequestError("every view must name a field")
			return nil, err
		}
	}

	result := make(map[string]types.Value, len(vs))
	if len(vs) == 0 {
		return result, nil
	}

	history, err := a.readFields(ctx, entityID, distinctFields(vs))
	if err != nil {
		return nil, err
	}

	for _, v := range vs {
		var value types.Value
		value, err = views.Evaluate(history, v)
		if err != nil {
			return nil, err
		}
		result[v.Label()] = value
	}

	return result, nil
}

func (a *app) readFields(ctx context.Context, entityID string, fields []string) (views.History, error) {
	entries := make([][]types.Entry, len(fields))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(fields))

	for i, field := range fields {
		g.Go(func() error {
			e, err := a.log.ReadAll(gctx, entityID, field)
			if err != nil {
				return err
			}
			entries[i] = e
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	history := make(views.History, len(fields))
	for i, field := range fields {
		history[field] = entries[i]
	}

	return history, nil
}

func distinctFields(vs []types.View) []string {
	seen := make(map[string]struct{}, len(vs))
	fields := make([]string, 0, len(vs))

	for _, v := range vs {
		if _, ok := seen[v.Field]; ok {
			continue
		}
		seen[v.Field] = struct{}{}
		fields = append(fields, v.Field)
	}

	return fields
}

func validateEntityID(entityID string) error {
	if entityID == "" {
		return errors.NewBadRequestError("entity id must not be empty")
	}

	if strings.HasPrefix(entityID, types.ReservedPrefix) {
		return errors.NewInvalidEntityIDError(entityID)
	}

	return nil
}
