package contracts

import (
	"context"

	"oneroom-connector/internal/app/models"
)

// EventDispatcher pushes one RoomEvent toward the backend. Implementations
// report the outcome instead of returning an error: delivery failure is
// logged and swallowed, never surfaced to the event-processing caller. A
// queue-backed implementation may satisfy this contract transparently.
type EventDispatcher interface {
	Deliver(ctx context.Context, event *models.RoomEvent) models.DeliveryOutcome
}
