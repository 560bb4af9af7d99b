package models

// RoomEvent is the outbound wire record consumed by the OneRoom backend's
// batch ingestion endpoint. Identifier fields at the top are always emitted,
// even when coerced to an empty string; everything else is omitted when
// absent. The wire schema never carries null-valued keys.
type RoomEvent struct {
	ID          string                `json:"id"`
	RoomID      string                `json:"roomId"`
	EventID     string                `json:"eventId"`
	UserID      string                `json:"userId"`
	Type        string                `json:"type"`
	Timestamp   string                `json:"timestamp,omitempty"`
	StartTime   string                `json:"startTime,omitempty"`
	EndTime     string                `json:"endTime,omitempty"`
	EventStatus string                `json:"eventStatus,omitempty"`
	EventName   string                `json:"eventName"`
	SchUserList []ScheduleParticipant `json:"schUserList"`

	// Nested originals.
	Appointment *NormalizedAppointment `json:"appointment,omitempty"`
	Patient     *NormalizedPatient     `json:"patient,omitempty"`
	Provider    *NormalizedProvider    `json:"provider,omitempty"`

	// Flattened appointment fields mirrored for the backend's flat readers.
	AppointmentID                string               `json:"appointmentId"`
	AppointmentDbID              *int                 `json:"appointmentDbId,omitempty"`
	DurationMinutes              *int                 `json:"durationMinutes,omitempty"`
	Comment                      string               `json:"comment,omitempty"`
	NoteID                       string               `json:"noteId,omitempty"`
	NoteTypeID                   *int                 `json:"noteTypeId,omitempty"`
	AppointmentTypeCode          string               `json:"appointmentTypeCode,omitempty"`
	AppointmentTypeDisplay       string               `json:"appointmentTypeDisplay,omitempty"`
	AppointmentTypeSystem        string               `json:"appointmentTypeSystem,omitempty"`
	Location                     string               `json:"location,omitempty"`
	MeetingLink                  string               `json:"meetingLink,omitempty"`
	TelehealthInstructionsSent   *bool                `json:"telehealthInstructionsSent,omitempty"`
	EnteredInError               string               `json:"enteredInError,omitempty"`
	Description                  string               `json:"description,omitempty"`
	CreatedAt                    string               `json:"createdAt,omitempty"`
	ModifiedAt                   string               `json:"modifiedAt,omitempty"`
	ParentAppointmentID          string               `json:"parentAppointmentId,omitempty"`
	RescheduledFromAppointmentID string               `json:"rescheduledFromAppointmentId,omitempty"`
	ExternalIdentifiers          []ExternalIdentifier `json:"externalIdentifiers,omitempty"`
	Metadata                     []MetadataEntry      `json:"metadata,omitempty"`
}
