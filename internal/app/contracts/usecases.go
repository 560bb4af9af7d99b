package contracts

import (
	"context"

	"oneroom-connector/internal/app/models"
	"oneroom-connector/internal/pkg/dto/requests"
	"oneroom-connector/internal/pkg/dto/responses"
)

// EventUsecase runs the full pipeline for one host event. The returned
// acknowledgement carries the fixed narrative and the originating note id
// regardless of delivery outcome; an error is returned only for requests the
// pipeline could not even start on.
type EventUsecase interface {
	Process(ctx context.Context, event *requests.HostEvent) (*responses.Acknowledgement, error)
}

// DeliveryUsecase exposes the persisted dispatch outcomes.
type DeliveryUsecase interface {
	FindByEventID(ctx context.Context, eventID string) ([]models.DeliveryRecord, error)
}
