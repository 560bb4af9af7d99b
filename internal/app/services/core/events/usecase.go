package events

import (
	"context"
	"time"

	"oneroom-connector/internal/app/config"
	"oneroom-connector/internal/app/contracts"
	"oneroom-connector/internal/app/models"
	"oneroom-connector/internal/pkg/constvars"
	"oneroom-connector/internal/pkg/dto/requests"
	"oneroom-connector/internal/pkg/dto/responses"
	"oneroom-connector/internal/pkg/rawview"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type eventUsecase struct {
	classifier  *Classifier
	normalizer  *Normalizer
	builder     *PayloadBuilder
	dispatcher  contracts.EventDispatcher
	deliveryLog contracts.DeliveryLogRepository
	cfg         config.Webhook
	log         *zap.Logger
}

// NewEventUsecase wires the pipeline stages together. deliveryLog may be nil
// when outcome persistence is not configured.
func NewEventUsecase(
	cfg config.Webhook,
	dispatcher contracts.EventDispatcher,
	deliveryLog contracts.DeliveryLogRepository,
	logger *zap.Logger,
) contracts.EventUsecase {
	return &eventUsecase{
		classifier:  NewClassifier(cfg, logger),
		normalizer:  NewNormalizer(logger),
		builder:     NewPayloadBuilder(cfg, logger),
		dispatcher:  dispatcher,
		deliveryLog: deliveryLog,
		cfg:         cfg,
		log:         logger,
	}
}

// Process runs classify, normalize, build, deliver for one host event. No
// pipeline fault reaches the host: the acknowledgement is always returned
// once the event envelope itself is readable.
func (u *eventUsecase) Process(ctx context.Context, event *requests.HostEvent) (*responses.Acknowledgement, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	noteID := resolveContextNoteID(event.Context)

	u.log.Info("eventUsecase.Process called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
		zap.String(constvars.LoggingAppointmentKey, event.Target.ID),
		zap.String(constvars.LoggingNoteIDKey, noteID),
	)
	if !isRespondedEvent(event.Type) {
		// The host owns the registration list; process anyway but leave a trace.
		u.log.Warn("eventUsecase.Process received unregistered event type",
			zap.String(constvars.LoggingEventTypeKey, event.Type),
		)
	}

	normalized := u.normalizer.Normalize(event.Target.Instance)
	if normalized.Appointment != nil && normalized.Appointment.ID == "" {
		normalized.Appointment.ID = event.Target.ID
	}
	if normalized.Appointment != nil && normalized.Appointment.NoteID == "" {
		normalized.Appointment.NoteID = noteID
	}

	if u.classifier.InScope(normalized.Appointment) {
		payload := u.builder.Build(normalized)
		outcome := u.dispatcher.Deliver(ctx, payload)
		u.recordOutcome(ctx, event.Type, payload, outcome)
	} else {
		u.log.Info("eventUsecase.Process event out of scope, skipping delivery",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentKey, event.Target.ID),
		)
	}

	return &responses.Acknowledgement{
		Note: responses.NoteReference{UUID: noteID},
		Data: responses.AcknowledgeDetail{Narrative: constvars.NarrativeString},
	}, nil
}

// resolveContextNoteID reads the note id from the host event context. The
// host nests it as note.uuid; flat note_id spellings are accepted too.
func resolveContextNoteID(eventContext map[string]interface{}) string {
	if id, ok := rawview.Path(eventContext, "note.uuid"); ok {
		if s := rawview.String(id); s != "" {
			return s
		}
	}
	return rawview.GetString(eventContext, "note_id", "noteId")
}

func isRespondedEvent(eventType string) bool {
	for _, name := range constvars.RespondedEvents {
		if name == eventType {
			return true
		}
	}
	return false
}

func (u *eventUsecase) recordOutcome(ctx context.Context, eventType string, payload *models.RoomEvent, outcome models.DeliveryOutcome) {
	u.log.Info("eventUsecase.recordOutcome delivery finished",
		zap.String(constvars.LoggingEventIDKey, payload.EventID),
		zap.String(constvars.LoggingRoomIDKey, payload.RoomID),
		zap.Bool(constvars.LoggingSuccessKey, outcome.Delivered || outcome.Enqueued),
		zap.Int(constvars.LoggingAttemptKey, outcome.Attempts),
	)
	if u.deliveryLog == nil {
		return
	}
	record := &models.DeliveryRecord{
		ID:         uuid.NewString(),
		EventID:    payload.EventID,
		RoomID:     payload.RoomID,
		UserID:     payload.UserID,
		EventType:  eventType,
		Mode:       u.cfg.DeliveryMode,
		Delivered:  outcome.Delivered,
		Attempts:   outcome.Attempts,
		StatusCode: outcome.StatusCode,
		LastError:  outcome.LastError,
		CreatedAt:  time.Now().UTC(),
	}
	if err := u.deliveryLog.Insert(ctx, record); err != nil {
		u.log.Error("eventUsecase.recordOutcome error persisting delivery record",
			zap.String(constvars.LoggingEventIDKey, payload.EventID),
			zap.Error(err),
		)
	}
}
