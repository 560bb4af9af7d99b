package models

// Normalized records built from the host's raw appointment view. Every field
// that can legitimately be absent at the source is either a pointer or an
// empty string; JSON omitempty keeps absent values off the wire entirely.

// AppointmentType is the coded classification attached to an appointment.
type AppointmentType struct {
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
	System  string `json:"system,omitempty"`
}

// IsZero reports whether no component of the type could be resolved.
func (t AppointmentType) IsZero() bool {
	return t.Code == "" && t.Display == "" && t.System == ""
}

// ExternalIdentifier mirrors one entry of the appointment's external
// identifier list.
type ExternalIdentifier struct {
	ID             string `json:"id,omitempty"`
	System         string `json:"system,omitempty"`
	Value          string `json:"value,omitempty"`
	Use            string `json:"use,omitempty"`
	IdentifierType string `json:"identifier_type,omitempty"`
	IssuedDate     string `json:"issued_date,omitempty"`
	ExpirationDate string `json:"expiration_date,omitempty"`
}

// MetadataEntry mirrors one entry of the appointment's metadata list.
type MetadataEntry struct {
	ID    string `json:"id,omitempty"`
	Key   string `json:"key,omitempty"`
	Value string `json:"value,omitempty"`
}

// NormalizedAppointment is the canonical appointment record. Start and end
// times are already rendered in the outbound wire format when present.
type NormalizedAppointment struct {
	ID                           string               `json:"id,omitempty"`
	DbID                         *int                 `json:"dbid,omitempty"`
	StartTime                    string               `json:"start_time,omitempty"`
	EndTime                      string               `json:"end_time,omitempty"`
	DurationMinutes              *int                 `json:"duration_minutes,omitempty"`
	Status                       string               `json:"status,omitempty"`
	Comment                      string               `json:"comment,omitempty"`
	NoteID                       string               `json:"note_id,omitempty"`
	NoteTypeID                   *int                 `json:"note_type_id,omitempty"`
	AppointmentType              *AppointmentType     `json:"appointment_type,omitempty"`
	Location                     string               `json:"location,omitempty"`
	MeetingLink                  string               `json:"meeting_link,omitempty"`
	TelehealthInstructionsSent   *bool                `json:"telehealth_instructions_sent,omitempty"`
	EnteredInError               string               `json:"entered_in_error,omitempty"`
	Description                  string               `json:"description,omitempty"`
	CreatedAt                    string               `json:"created_at,omitempty"`
	ModifiedAt                   string               `json:"modified_at,omitempty"`
	ParentAppointmentID          string               `json:"parent_appointment_id,omitempty"`
	RescheduledFromAppointmentID string               `json:"appointment_rescheduled_from_id,omitempty"`
	ExternalIdentifiers          []ExternalIdentifier `json:"external_identifiers"`
	Metadata                     []MetadataEntry      `json:"metadata"`
}

// NormalizedPatient is the canonical patient record. Age is derived from the
// birth date at normalization time.
type NormalizedPatient struct {
	ID          string `json:"id,omitempty"`
	DbID        *int   `json:"dbid,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Age         *int   `json:"age,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	ModifiedAt  string `json:"modified_at,omitempty"`
}

// NormalizedProvider is the canonical provider record.
type NormalizedProvider struct {
	ID         string `json:"id,omitempty"`
	DbID       *int   `json:"dbid,omitempty"`
	Name       string `json:"name,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
}

// ScheduleParticipant is one actor from the appointment participant list.
// Email is a placeholder in the current scope and always empty; non-provider
// names are intentionally left empty until the product decides they should be
// resolved.
type ScheduleParticipant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// NormalizedEvent bundles every record produced for one host event.
type NormalizedEvent struct {
	Appointment  *NormalizedAppointment
	Patient      *NormalizedPatient
	Provider     *NormalizedProvider
	Participants []ScheduleParticipant
}
