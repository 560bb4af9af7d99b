package deliveries

import (
	"context"

	"oneroom-connector/internal/app/contracts"
	"oneroom-connector/internal/app/models"
	"oneroom-connector/internal/pkg/constvars"

	"go.uber.org/zap"
)

type deliveryUsecase struct {
	repository contracts.DeliveryLogRepository
	log        *zap.Logger
}

func NewDeliveryUsecase(repository contracts.DeliveryLogRepository, logger *zap.Logger) contracts.DeliveryUsecase {
	return &deliveryUsecase{repository: repository, log: logger}
}

func (u *deliveryUsecase) FindByEventID(ctx context.Context, eventID string) ([]models.DeliveryRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	u.log.Info("deliveryUsecase.FindByEventID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventIDKey, eventID),
	)
	return u.repository.FindByEventID(ctx, eventID)
}
