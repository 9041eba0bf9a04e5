package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/diwise/eventity/pkg/eventity/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Notifier interface {
	Start() error
	Stop() error

	PatchesAppended(ctx context.Context, entityID string, entries []types.Entry)
	EntityDeleted(ctx context.Context, entityID string)
}

const (
	TypePatchesAppended string = "PatchesAppended"
	TypeEntityDeleted   string = "EntityDeleted"
)

// Notification is the payload posted to the notification endpoint.
type Notification struct {
	ID         string        `json:"id"`
	Type       string        `json:"type"`
	EntityID   string        `json:"entityId"`
	NotifiedAt string        `json:"notifiedAt"`
	Data       []types.Entry `json:"data"`
}

func NewNotification(notificationType, entityID string, entries []types.Entry) Notification {
	if entries == nil {
		entries = []types.Entry{}
	}

	return Notification{
		ID:         fmt.Sprintf("urn:eventity:Notification:%s", uuid.NewString()),
		Type:       notificationType,
		EntityID:   entityID,
		NotifiedAt: time.Now().UTC().Format(time.RFC3339),
		Data:       entries,
	}
}

var tracer = otel.Tracer("eventity/notifier")

const queueSize int = 32

type action func()

type notifier struct {
	mu       sync.Mutex
	started  bool
	endpoint string
	client   http.Client

	queue chan action
}

func NewNotifier(ctx context.Context, endpoint string) (Notifier, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("notification endpoint must not be empty")
	}

	return &notifier{
		endpoint: endpoint,
		client: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
	}, nil
}

func (n *notifier) Start() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.started {
		return fmt.Errorf("already started")
	}

	n.started = true
	n.queue = make(chan action, queueSize)

	go n.run(n.queue)

	return nil
}

// Stop blocks until every queued notification has been posted. Notifications
// raised after Stop has been called are dropped.
func (n *notifier) Stop() error {
	n.mu.Lock()
	if !n.started {
		n.mu.Unlock()
		return nil
	}
	n.started = false
	queue := n.queue
	n.mu.Unlock()

	// enqueue only sends while holding the lock and started is now false,
	// so nothing else writes to the queue from here on
	done := make(chan struct{})
	queue <- func() {
		close(queue)
		close(done)
	}

	<-done

	return nil
}

func (n *notifier) PatchesAppended(ctx context.Context, entityID string, entries []types.Entry) {
	n.enqueue(ctx, NewNotification(TypePatchesAppended, entityID, entries))
}

func (n *notifier) EntityDeleted(ctx context.Context, entityID string) {
	n.enqueue(ctx, NewNotification(TypeEntityDeleted, entityID, nil))
}

// enqueue never blocks the caller. A notification that does not fit in the
// queue is dropped and logged.
func (n *notifier) enqueue(ctx context.Context, notification Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.started {
		return
	}

	var err error

	logger := logging.GetFromContext(ctx)

	// the post outlives the request, so only the trace headers are carried over
	ctx, span := tracer.Start(
		tracing.ExtractHeaders(context.Background(), tracing.InjectHeaders(ctx)),
		"post-notification",
		trace.WithAttributes(
			attribute.String("notification-type", notification.Type),
			attribute.String("entity-id", notification.EntityID),
		),
	)

	post := func() {
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		err = n.post(ctx, notification)
		if err != nil {
			logger.Error("failed to post notification", "entity_id", notification.EntityID, "err", err.Error())
		}
	}

	select {
	case n.queue <- post:
	default:
		err = fmt.Errorf("notification queue is full")
		tracing.RecordAnyErrorAndEndSpan(err, span)
		logger.Warn("dropped notification", "entity_id", notification.EntityID, "type", notification.Type, "err", err.Error())
	}
}

func (n *notifier) post(ctx context.Context, notification Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshalling error (%w)", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("unable to create new request (%w)", err)
	}

	req.Header.Add("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request (%w)", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notification endpoint returned status code %d", resp.StatusCode)
	}

	return nil
}

func (n *notifier) run(queue chan action) {
	for action := range queue {
		if action == nil {
			return
		}

		action()
	}
}
