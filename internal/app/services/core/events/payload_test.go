package events

import (
	"testing"
	"time"

	"oneroom-connector/internal/app/config"
	"oneroom-connector/internal/app/models"
	"oneroom-connector/internal/app/services/shared/dispatcher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPayloadBuilderRoomIDPrecedence(t *testing.T) {
	normalizedWith := func(apptID, location string) *models.NormalizedEvent {
		return &models.NormalizedEvent{
			Appointment: &models.NormalizedAppointment{ID: apptID, Location: location},
		}
	}

	t.Run("ConfiguredRoomIDWins", func(t *testing.T) {
		b := NewPayloadBuilder(config.Webhook{RoomID: "room-cfg"}, zap.NewNop())
		event := b.Build(normalizedWith("appt-1", "Room 5"))
		assert.Equal(t, "room-cfg", event.RoomID)
		assert.Equal(t, "room-cfg_appt-1", event.ID)
	})

	t.Run("AppointmentIDSecond", func(t *testing.T) {
		b := NewPayloadBuilder(config.Webhook{}, zap.NewNop())
		event := b.Build(normalizedWith("appt-1", "Room 5"))
		assert.Equal(t, "appt-1", event.RoomID)
	})

	t.Run("LocationThird", func(t *testing.T) {
		b := NewPayloadBuilder(config.Webhook{}, zap.NewNop())
		event := b.Build(normalizedWith("", "Room 5"))
		assert.Equal(t, "Room 5", event.RoomID)
	})

	t.Run("UnknownRoomLast", func(t *testing.T) {
		b := NewPayloadBuilder(config.Webhook{}, zap.NewNop())
		event := b.Build(normalizedWith("", ""))
		assert.Equal(t, "unknown-room", event.RoomID)
	})
}

func TestPayloadBuilderUserIDPrecedence(t *testing.T) {
	b := NewPayloadBuilder(config.Webhook{}, zap.NewNop())

	t.Run("ProviderFirst", func(t *testing.T) {
		event := b.Build(&models.NormalizedEvent{
			Appointment:  &models.NormalizedAppointment{},
			Provider:     &models.NormalizedProvider{ID: "prov-1"},
			Patient:      &models.NormalizedPatient{ID: "pat-1"},
			Participants: []models.ScheduleParticipant{{ID: "part-1"}},
		})
		assert.Equal(t, "prov-1", event.UserID)
	})

	t.Run("PatientSecond", func(t *testing.T) {
		event := b.Build(&models.NormalizedEvent{
			Appointment:  &models.NormalizedAppointment{},
			Patient:      &models.NormalizedPatient{ID: "pat-1"},
			Participants: []models.ScheduleParticipant{{ID: "part-1"}},
		})
		assert.Equal(t, "pat-1", event.UserID)
	})

	t.Run("FirstNonEmptyParticipantThird", func(t *testing.T) {
		event := b.Build(&models.NormalizedEvent{
			Appointment:  &models.NormalizedAppointment{},
			Participants: []models.ScheduleParticipant{{ID: ""}, {ID: "part-2"}},
		})
		assert.Equal(t, "part-2", event.UserID)
	})

	t.Run("UnknownUserLast", func(t *testing.T) {
		event := b.Build(&models.NormalizedEvent{
			Appointment: &models.NormalizedAppointment{},
		})
		assert.Equal(t, "unknown-user", event.UserID)
	})
}

func TestPayloadBuilderBuild(t *testing.T) {
	b := NewPayloadBuilder(config.Webhook{}, zap.NewNop())

	t.Run("EventNamePrefersDescription", func(t *testing.T) {
		event := b.Build(&models.NormalizedEvent{
			Appointment: &models.NormalizedAppointment{
				Description:     "Follow-up visit",
				AppointmentType: &models.AppointmentType{Display: "Test-OneRoomHealth"},
			},
		})
		assert.Equal(t, "Follow-up visit", event.EventName)
	})

	t.Run("EventNameFallsBackToTypeDisplay", func(t *testing.T) {
		event := b.Build(&models.NormalizedEvent{
			Appointment: &models.NormalizedAppointment{
				AppointmentType: &models.AppointmentType{Display: "Test-OneRoomHealth"},
			},
		})
		assert.Equal(t, "Test-OneRoomHealth", event.EventName)
	})

	t.Run("MirrorsAppointmentFields", func(t *testing.T) {
		duration := 30
		event := b.Build(&models.NormalizedEvent{
			Appointment: &models.NormalizedAppointment{
				ID:              "appt-1",
				StartTime:       "2024-01-01T10:00:00.000Z",
				EndTime:         "2024-01-01T10:30:00.000Z",
				Status:          "booked",
				DurationMinutes: &duration,
				NoteID:          "note-1",
				MeetingLink:     "https://meet.example.com/r/1",
			},
		})
		assert.Equal(t, "appt-1", event.AppointmentID)
		assert.Equal(t, "2024-01-01T10:00:00.000Z", event.Timestamp)
		assert.Equal(t, "2024-01-01T10:00:00.000Z", event.StartTime)
		assert.Equal(t, "2024-01-01T10:30:00.000Z", event.EndTime)
		assert.Equal(t, "booked", event.EventStatus)
		assert.Equal(t, "note-1", event.NoteID)
		require.NotNil(t, event.DurationMinutes)
		assert.Equal(t, 30, *event.DurationMinutes)
	})

	t.Run("NilRecordsYieldMinimalEvent", func(t *testing.T) {
		event := b.Build(&models.NormalizedEvent{})
		assert.Equal(t, "unknown-room", event.RoomID)
		assert.Equal(t, "unknown-user", event.UserID)
		assert.Equal(t, "event", event.Type)
		assert.NotNil(t, event.SchUserList)
	})
}

func TestNormalizationIdempotence(t *testing.T) {
	raw := map[string]interface{}{
		"id":               "appt-1",
		"start_time":       "2024-01-01T10:00:00Z",
		"duration_minutes": float64(30),
		"status":           "booked",
		"patient":          map[string]interface{}{"id": "pat-1", "birth_date": "1990-06-15"},
		"provider":         map[string]interface{}{"id": "prov-1", "first_name": "Ana", "last_name": "Reyes"},
		"participants": []interface{}{
			map[string]interface{}{"actor": map[string]interface{}{"reference": "Practitioner/prov-1"}},
		},
	}

	n := newTestNormalizer(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	b := NewPayloadBuilder(config.Webhook{RoomID: "room-cfg"}, zap.NewNop())

	first, err := dispatcher.EncodeRoomEvents(b.Build(n.Normalize(raw)))
	require.NoError(t, err)
	second, err := dispatcher.EncodeRoomEvents(b.Build(n.Normalize(raw)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotContains(t, string(first), "null")
}
