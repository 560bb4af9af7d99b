package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	// NarrativeString is returned to the host in the acknowledgement effect
	// regardless of delivery outcome.
	NarrativeString = "OneRoom Health: TEST-OneRoomHealth appointment event processed and sent to backend."

	// ClientUserAgent identifies this connector on outbound webhook calls.
	ClientUserAgent = "OneRoom-Canvas-Plugin/1.0"

	// NoteIDExtensionURL is the FHIR extension URL carrying the note id when
	// the host omits the plain note_id field.
	NoteIDExtensionURL = "http://schemas.canvasmedical.com/fhir/extensions/note-id"
)

// In-scope appointment type markers. The classifier matches any of these.
const (
	TargetAppointmentTypeDisplay = "test-oneroomhealth"
	TargetAppointmentTypeCode    = "TEST-ORH"
	TargetNoteTypeID             = 82
)

// Appointment lifecycle event names the connector is registered for.
const (
	EventAppointmentCheckedIn   = "APPOINTMENT_CHECKED_IN"
	EventAppointmentCreated     = "APPOINTMENT_CREATED"
	EventAppointmentRestored    = "APPOINTMENT_RESTORED"
	EventAppointmentUpdated     = "APPOINTMENT_UPDATED"
	EventAppointmentCanceled    = "APPOINTMENT_CANCELED"
	EventAppointmentRescheduled = "APPOINTMENT_RESCHEDULED"
	EventAppointmentNoShowed    = "APPOINTMENT_NO_SHOWED"
)

// RespondedEvents lists every event name the host should register this
// connector for.
var RespondedEvents = []string{
	EventAppointmentCheckedIn,
	EventAppointmentCreated,
	EventAppointmentRestored,
	EventAppointmentUpdated,
	EventAppointmentCanceled,
	EventAppointmentRescheduled,
	EventAppointmentNoShowed,
}

// Fallback identifiers used by the payload builder when every preferred
// source is empty.
const (
	UnknownRoomID = "unknown-room"
	UnknownUserID = "unknown-user"
)

// RoomEventType is the fixed type marker on outbound records.
const RoomEventType = "event"

// Delivery modes for the webhook dispatcher.
const (
	DeliveryModeDirect = "direct"
	DeliveryModeQueue  = "queue"
)
