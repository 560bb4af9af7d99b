package events

import (
	"fmt"

	"oneroom-connector/internal/app/config"
	"oneroom-connector/internal/app/models"
	"oneroom-connector/internal/pkg/constvars"

	"go.uber.org/zap"
)

// PayloadBuilder assembles the outbound RoomEvent from the normalized
// records. Assembly can never fail outward: any panic during mapping is
// recovered into a minimal record so delivery always has something to send.
type PayloadBuilder struct {
	cfg config.Webhook
	log *zap.Logger
}

func NewPayloadBuilder(cfg config.Webhook, logger *zap.Logger) *PayloadBuilder {
	return &PayloadBuilder{cfg: cfg, log: logger}
}

func (b *PayloadBuilder) Build(normalized *models.NormalizedEvent) (event *models.RoomEvent) {
	appointment := normalized.Appointment
	if appointment == nil {
		appointment = &models.NormalizedAppointment{}
	}

	roomID := b.resolveRoomID(appointment)
	eventID := appointment.ID
	userID := resolveUserID(normalized)

	defer func() {
		if r := recover(); r != nil {
			b.log.Error("payloadBuilder.Build recovered, emitting fallback record",
				zap.String(constvars.LoggingEventIDKey, eventID),
				zap.String("panic", fmt.Sprintf("%v", r)),
			)
			event = &models.RoomEvent{
				ID:          combineIDs(roomID, eventID),
				RoomID:      roomID,
				EventID:     eventID,
				UserID:      userID,
				Type:        constvars.RoomEventType,
				SchUserList: []models.ScheduleParticipant{},
			}
		}
	}()

	participants := normalized.Participants
	if participants == nil {
		participants = []models.ScheduleParticipant{}
	}

	event = &models.RoomEvent{
		ID:          combineIDs(roomID, eventID),
		RoomID:      roomID,
		EventID:     eventID,
		UserID:      userID,
		Type:        constvars.RoomEventType,
		Timestamp:   appointment.StartTime,
		StartTime:   appointment.StartTime,
		EndTime:     appointment.EndTime,
		EventStatus: appointment.Status,
		EventName:   resolveEventName(appointment),
		SchUserList: participants,

		Appointment: normalized.Appointment,
		Patient:     normalized.Patient,
		Provider:    normalized.Provider,

		AppointmentID:                appointment.ID,
		AppointmentDbID:              appointment.DbID,
		DurationMinutes:              appointment.DurationMinutes,
		Comment:                      appointment.Comment,
		NoteID:                       appointment.NoteID,
		NoteTypeID:                   appointment.NoteTypeID,
		Location:                     appointment.Location,
		MeetingLink:                  appointment.MeetingLink,
		TelehealthInstructionsSent:   appointment.TelehealthInstructionsSent,
		EnteredInError:               appointment.EnteredInError,
		Description:                  appointment.Description,
		CreatedAt:                    appointment.CreatedAt,
		ModifiedAt:                   appointment.ModifiedAt,
		ParentAppointmentID:          appointment.ParentAppointmentID,
		RescheduledFromAppointmentID: appointment.RescheduledFromAppointmentID,
		ExternalIdentifiers:          appointment.ExternalIdentifiers,
		Metadata:                     appointment.Metadata,
	}
	if t := appointment.AppointmentType; t != nil {
		event.AppointmentTypeCode = t.Code
		event.AppointmentTypeDisplay = t.Display
		event.AppointmentTypeSystem = t.System
	}
	return event
}

// resolveRoomID applies the precedence configured room id, then appointment
// id, then location, then the unknown marker.
func (b *PayloadBuilder) resolveRoomID(appointment *models.NormalizedAppointment) string {
	if b.cfg.RoomID != "" {
		return b.cfg.RoomID
	}
	if appointment.ID != "" {
		return appointment.ID
	}
	if appointment.Location != "" {
		return appointment.Location
	}
	return constvars.UnknownRoomID
}

// resolveUserID applies the precedence provider id, then patient id, then
// the first participant with a non-empty id, then the unknown marker.
func resolveUserID(normalized *models.NormalizedEvent) string {
	if normalized.Provider != nil && normalized.Provider.ID != "" {
		return normalized.Provider.ID
	}
	if normalized.Patient != nil && normalized.Patient.ID != "" {
		return normalized.Patient.ID
	}
	for _, participant := range normalized.Participants {
		if participant.ID != "" {
			return participant.ID
		}
	}
	return constvars.UnknownUserID
}

func resolveEventName(appointment *models.NormalizedAppointment) string {
	if appointment.Description != "" {
		return appointment.Description
	}
	if appointment.AppointmentType != nil {
		return appointment.AppointmentType.Display
	}
	return ""
}

func combineIDs(roomID, eventID string) string {
	switch {
	case roomID != "" && eventID != "":
		return roomID + "_" + eventID
	case roomID != "":
		return roomID
	default:
		return eventID
	}
}
