package events

import (
	"context"
	"testing"

	"oneroom-connector/internal/app/config"
	"oneroom-connector/internal/app/models"
	"oneroom-connector/internal/pkg/constvars"
	"oneroom-connector/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubDispatcher struct {
	delivered []*models.RoomEvent
	outcome   models.DeliveryOutcome
}

func (s *stubDispatcher) Deliver(_ context.Context, event *models.RoomEvent) models.DeliveryOutcome {
	s.delivered = append(s.delivered, event)
	return s.outcome
}

func TestEventUsecaseProcess(t *testing.T) {
	hostEvent := func() *requests.HostEvent {
		return &requests.HostEvent{
			Type: constvars.EventAppointmentCreated,
			Target: requests.HostEventTarget{
				ID: "appt-1",
				Instance: map[string]interface{}{
					"id":         "appt-1",
					"start_time": "2024-01-01T10:00:00Z",
				},
			},
			Context: map[string]interface{}{"note_id": "note-9"},
		}
	}

	t.Run("AcknowledgesAndDelivers", func(t *testing.T) {
		dispatcher := &stubDispatcher{outcome: models.DeliveryOutcome{Delivered: true, Attempts: 1}}
		u := NewEventUsecase(config.Webhook{}, dispatcher, nil, zap.NewNop())

		ack, err := u.Process(context.Background(), hostEvent())

		require.NoError(t, err)
		assert.Equal(t, "note-9", ack.Note.UUID)
		assert.Equal(t, constvars.NarrativeString, ack.Data.Narrative)
		require.Len(t, dispatcher.delivered, 1)
		assert.Equal(t, "appt-1", dispatcher.delivered[0].EventID)
	})

	t.Run("NoteIDResolvedFromNestedContextShape", func(t *testing.T) {
		dispatcher := &stubDispatcher{outcome: models.DeliveryOutcome{Delivered: true, Attempts: 1}}
		u := NewEventUsecase(config.Webhook{}, dispatcher, nil, zap.NewNop())

		event := hostEvent()
		event.Context = map[string]interface{}{
			"note": map[string]interface{}{"uuid": "note-uuid-9"},
		}
		ack, err := u.Process(context.Background(), event)

		require.NoError(t, err)
		assert.Equal(t, "note-uuid-9", ack.Note.UUID)
	})

	t.Run("NestedContextNoteBeatsFlatSpelling", func(t *testing.T) {
		dispatcher := &stubDispatcher{}
		u := NewEventUsecase(config.Webhook{}, dispatcher, nil, zap.NewNop())

		event := hostEvent()
		event.Context = map[string]interface{}{
			"note":    map[string]interface{}{"uuid": "note-uuid-9"},
			"note_id": "note-flat",
		}
		ack, err := u.Process(context.Background(), event)

		require.NoError(t, err)
		assert.Equal(t, "note-uuid-9", ack.Note.UUID)
	})

	t.Run("AcknowledgesEvenWhenDeliveryFails", func(t *testing.T) {
		dispatcher := &stubDispatcher{outcome: models.DeliveryOutcome{Attempts: 3, LastError: "backend returned status 500"}}
		u := NewEventUsecase(config.Webhook{}, dispatcher, nil, zap.NewNop())

		ack, err := u.Process(context.Background(), hostEvent())

		require.NoError(t, err)
		assert.Equal(t, constvars.NarrativeString, ack.Data.Narrative)
	})

	t.Run("TargetIDBackfillsMissingAppointmentID", func(t *testing.T) {
		dispatcher := &stubDispatcher{}
		u := NewEventUsecase(config.Webhook{}, dispatcher, nil, zap.NewNop())

		event := hostEvent()
		event.Target.Instance = map[string]interface{}{}
		_, err := u.Process(context.Background(), event)

		require.NoError(t, err)
		require.Len(t, dispatcher.delivered, 1)
		assert.Equal(t, "appt-1", dispatcher.delivered[0].EventID)
	})

	t.Run("EnforcedFilterSkipsDeliveryButStillAcknowledges", func(t *testing.T) {
		dispatcher := &stubDispatcher{}
		u := NewEventUsecase(config.Webhook{EnforceEventFilter: true}, dispatcher, nil, zap.NewNop())

		ack, err := u.Process(context.Background(), hostEvent())

		require.NoError(t, err)
		assert.Equal(t, constvars.NarrativeString, ack.Data.Narrative)
		assert.Empty(t, dispatcher.delivered)
	})

	t.Run("EnforcedFilterDeliversMatchingEvents", func(t *testing.T) {
		dispatcher := &stubDispatcher{}
		u := NewEventUsecase(config.Webhook{EnforceEventFilter: true}, dispatcher, nil, zap.NewNop())

		event := hostEvent()
		event.Target.Instance["note_type_id"] = float64(constvars.TargetNoteTypeID)
		_, err := u.Process(context.Background(), event)

		require.NoError(t, err)
		require.Len(t, dispatcher.delivered, 1)
	})
}
