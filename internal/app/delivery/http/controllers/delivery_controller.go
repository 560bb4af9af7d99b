package controllers

import (
	"net/http"
	"sync"

	"oneroom-connector/internal/app/contracts"
	"oneroom-connector/internal/pkg/constvars"
	"oneroom-connector/internal/pkg/exceptions"
	"oneroom-connector/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DeliveryController struct {
	Log     *zap.Logger
	Usecase contracts.DeliveryUsecase
}

var (
	deliveryControllerInstance *DeliveryController
	onceDeliveryController     sync.Once
)

func NewDeliveryController(logger *zap.Logger, usecase contracts.DeliveryUsecase) *DeliveryController {
	onceDeliveryController.Do(func() {
		deliveryControllerInstance = &DeliveryController{Log: logger, Usecase: usecase}
	})
	return deliveryControllerInstance
}

// HandleFindByEventID processes GET /api/v1/deliveries/{eventID}.
func (ctrl *DeliveryController) HandleFindByEventID(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	if eventID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.BuildNewCustomError(nil, constvars.StatusBadRequest, "event id is required", "DELIVERY_MISSING_EVENT_ID"))
		return
	}

	records, err := ctrl.Usecase.FindByEventID(r.Context(), eventID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, "deliveries retrieved", records)
}
