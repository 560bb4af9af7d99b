package contracts

import (
	"context"

	"oneroom-connector/internal/app/models"
)

// DeliveryLogRepository persists dispatch outcomes for operational review.
type DeliveryLogRepository interface {
	Insert(ctx context.Context, record *models.DeliveryRecord) error
	FindByEventID(ctx context.Context, eventID string) ([]models.DeliveryRecord, error)
}
