package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/diwise/eventity/internal/pkg/application/eventity"
	"github.com/diwise/eventity/pkg/eventity/errors"
	"github.com/diwise/eventity/pkg/eventity/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// NewPatchEntityHandler appends the patches in the request body to the entity.
func NewPatchEntityHandler(app eventity.EntityLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		entityID := entityIDFromRequest(r)

		ctx, span := tracer.Start(r.Context(), "patch-entity",
			trace.WithAttributes(attribute.String(TraceAttributeEntityID, entityID)),
		)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		patches := []types.Patch{}
		err = json.NewDecoder(r.Body).Decode(&patches)
		if err != nil {
			err = errors.NewBadRequestError(fmt.Sprintf("unable to decode request payload: %s", err.Error()))
			errors.WriteResponse(w, err)
			return
		}

		err = app.PatchEntity(ctx, entityID, patches)
		if err != nil {
			log.Error("failed to patch entity", "entity_id", entityID, "err", err.Error())
			errors.WriteResponse(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// NewDeleteEntityHandler removes every field log of the entity.
func NewDeleteEntityHandler(app eventity.EntityLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		entityID := entityIDFromRequest(r)

		ctx, span := tracer.Start(r.Context(), "delete-entity",
			trace.WithAttributes(attribute.String(TraceAttributeEntityID, entityID)),
		)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		err = app.DeleteEntity(ctx, entityID)
		if err != nil {
			log.Error("failed to delete entity", "entity_id", entityID, "err", err.Error())
			errors.WriteResponse(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// NewQueryEntityHandler evaluates the views in the request body and responds
// with a JSON object mapping each view label to its result.
func NewQueryEntityHandler(app eventity.EntityLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		entityID := entityIDFromRequest(r)

		ctx, span := tracer.Start(r.Context(), "query-entity",
			trace.WithAttributes(attribute.String(TraceAttributeEntityID, entityID)),
		)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

		views := []types.View{}
		err = json.NewDecoder(r.Body).Decode(&views)
		if err != nil {
			err = errors.NewBadRequestError(fmt.Sprintf("unable to decode request payload: %s", err.Error()))
			errors.WriteResponse(w, err)
			return
		}

		result, err := app.QueryEntity(ctx, entityID, views)
		if err != nil {
			log.Debug("failed to query entity", "entity_id", entityID, "err", err.Error())
			errors.WriteResponse(w, err)
			return
		}

		body, err := json.Marshal(result)
		if err != nil {
			log.Error("failed to marshal query result", "entity_id", entityID, "err", err.Error())
			errors.WriteResponse(w, err)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

func entityIDFromRequest(r *http.Request) string {
	param := chi.URLParam(r, "entityId")

	entityID, err := url.PathUnescape(param)
	if err != nil {
		return param
	}

	return entityID
}
