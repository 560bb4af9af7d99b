package controllers

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"oneroom-connector/internal/app/contracts"
	"oneroom-connector/internal/pkg/constvars"
	"oneroom-connector/internal/pkg/dto/requests"
	"oneroom-connector/internal/pkg/exceptions"
	"oneroom-connector/internal/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type EventController struct {
	Log      *zap.Logger
	Usecase  contracts.EventUsecase
	Validate *validator.Validate
}

var (
	eventControllerInstance *EventController
	onceEventController     sync.Once
)

func NewEventController(logger *zap.Logger, usecase contracts.EventUsecase, validate *validator.Validate) *EventController {
	onceEventController.Do(func() {
		eventControllerInstance = &EventController{Log: logger, Usecase: usecase, Validate: validate}
	})
	return eventControllerInstance
}

// HandleHostEvent processes POST /api/v1/events. The pipeline swallows every
// downstream fault, so a readable envelope always yields 200 with the
// acknowledgement.
func (ctrl *EventController) HandleHostEvent(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get(constvars.HeaderContentType), constvars.MIMEApplicationJSON) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.BuildNewCustomError(nil, constvars.StatusUnsupportedMediaType, "Content-Type must be application/json", "EVENT_UNSUPPORTED_MEDIA_TYPE"))
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrReadBody(err))
		return
	}
	defer r.Body.Close()

	var event requests.HostEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := ctrl.Validate.Struct(&event); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ack, err := ctrl.Usecase.Process(r.Context(), &event)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, "event processed", ack)
}
