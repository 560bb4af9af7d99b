package deliveryqueue

import (
	"context"

	"oneroom-connector/internal/app/contracts"
	"oneroom-connector/internal/app/models"
	"oneroom-connector/internal/pkg/constvars"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type queuedDispatcher struct {
	queue *Service
	log   *zap.Logger
}

// NewQueuedDispatcher adapts the durable queue to the dispatcher contract.
// Deliver only enqueues; the background worker performs the actual POSTs.
func NewQueuedDispatcher(queue *Service, logger *zap.Logger) contracts.EventDispatcher {
	return &queuedDispatcher{queue: queue, log: logger}
}

func (d *queuedDispatcher) Deliver(ctx context.Context, event *models.RoomEvent) models.DeliveryOutcome {
	outcome := models.DeliveryOutcome{}

	payload, err := json.Marshal(event)
	if err != nil {
		d.log.Error("queuedDispatcher.Deliver error marshaling event",
			zap.String(constvars.LoggingEventIDKey, event.EventID),
			zap.Error(err),
		)
		outcome.LastError = err.Error()
		return outcome
	}

	msg := QueueMessage{
		ID:      uuid.NewString(),
		EventID: event.EventID,
		Payload: payload,
	}
	if err := d.queue.Enqueue(ctx, msg); err != nil {
		d.log.Error("queuedDispatcher.Deliver error enqueueing event",
			zap.String(constvars.LoggingEventIDKey, event.EventID),
			zap.Error(err),
		)
		outcome.LastError = err.Error()
		return outcome
	}

	outcome.Enqueued = true
	return outcome
}
