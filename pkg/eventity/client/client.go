package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/diwise/eventity/pkg/eventity/errors"
	"github.com/diwise/eventity/pkg/eventity/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:generate moq -rm -out ../../test/eventityclient_mock.go . EventityClient

type EventityClient interface {
	Patch(ctx context.Context, entityID string, patches []types.Patch) error
	Delete(ctx context.Context, entityID string) error
	Query(ctx context.Context, entityID string, views []types.View) (map[string]types.Value, error)
}

func Debug(enabled string) func(*client) {
	return func(c *client) {
		c.debug = (enabled == "true")
	}
}

func NewEventityClient(baseURL string, options ...func(*client)) EventityClient {
	c := &client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		debug:   false,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}

const TraceAttributeEntityID string = "entity-id"

var tracer = otel.Tracer("eventity-client")

type client struct {
	baseURL    string
	debug      bool
	httpClient http.Client
}

func (c *client) Patch(ctx context.Context, entityID string, patches []types.Patch) error {
	var err error

	ctx, span := tracer.Start(ctx, "patch-entity",
		trace.WithAttributes(attribute.String(TraceAttributeEntityID, entityID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if patches == nil {
		patches = []types.Patch{}
	}

	body, err := json.Marshal(patches)
	if err != nil {
		err = fmt.Errorf("failed to marshal patches: %s (%w)", err.Error(), errors.ErrBadRequest)
		return err
	}

	response, responseBody, err := c.call(ctx, http.MethodPatch, c.entityURL(entityID), bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	err = expectStatus(response, responseBody, http.StatusNoContent)
	return err
}

func (c *client) Delete(ctx context.Context, entityID string) error {
	var err error

	ctx, span := tracer.Start(ctx, "delete-entity",
		trace.WithAttributes(attribute.String(TraceAttributeEntityID, entityID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	response, responseBody, err := c.call(ctx, http.MethodDelete, c.entityURL(entityID), nil)
	if err != nil {
		return err
	}

	err = expectStatus(response, responseBody, http.StatusNoContent)
	return err
}

func (c *client) Query(ctx context.Context, entityID string, views []types.View) (map[string]types.Value, error) {
	var err error

	ctx, span := tracer.Start(ctx, "query-entity",
		trace.WithAttributes(attribute.String(TraceAttributeEntityID, entityID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if views == nil {
		views = []types.View{}
	}

	body, err := json.Marshal(views)
	if err != nil {
		err = fmt.Errorf("failed to marshal views: %s (%w)", err.Error(), errors.ErrBadRequest)
		return nil, err
	}

	response, responseBody, err := c.call(ctx, http.MethodPost, c.entityURL(entityID), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}

	err = expectStatus(response, responseBody, http.StatusOK)
	if err != nil {
		return nil, err
	}

	result := map[string]types.Value{}
	err = json.Unmarshal(responseBody, &result)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal query result: %s (%w)", err.Error(), errors.ErrBadResponse)
		return nil, err
	}

	return result, nil
}

func (c *client) entityURL(entityID string) string {
	return c.baseURL + "/" + url.PathEscape(entityID)
}

func expectStatus(response *http.Response, body []byte, expected int) error {
	if response.StatusCode == expected {
		return nil
	}

	if response.StatusCode >= http.StatusBadRequest {
		return errors.NewErrorFromResponse(response.StatusCode, response.Header.Get(errors.ErrorTypeHeader), body)
	}

	return fmt.Errorf("unexpected response code %d (%w)", response.StatusCode, errors.ErrInternal)
}

func (c *client) call(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %s (%w)", err.Error(), errors.ErrInternal)
	}

	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %s (%w)", err.Error(), errors.ErrRequest)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	if c.debug && resp.StatusCode >= http.StatusBadRequest {
		reqbytes, _ := httputil.DumpRequest(req, false)
		respbytes, _ := httputil.DumpResponse(resp, false)

		logging.GetFromContext(ctx).Error("request failed", "request", string(reqbytes), "response", string(respbytes))
	}

	return resp, respBody, nil
}
