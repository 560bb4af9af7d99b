package events

import (
	"strings"
	"time"

	"oneroom-connector/internal/app/models"
	"oneroom-connector/internal/pkg/constvars"
	"oneroom-connector/internal/pkg/rawview"
	"oneroom-connector/internal/pkg/utils"

	"go.uber.org/zap"
)

// Normalizer turns the host's raw appointment view into the canonical
// records. Every field is extracted independently: a single malformed field
// is logged and left absent, never aborting the rest of the record.
type Normalizer struct {
	log *zap.Logger
	now func() time.Time
}

func NewNormalizer(logger *zap.Logger) *Normalizer {
	return &Normalizer{log: logger, now: time.Now}
}

// Normalize builds the full normalized bundle for one event. instance is the
// raw appointment object graph delivered by the host.
func (n *Normalizer) Normalize(instance map[string]interface{}) *models.NormalizedEvent {
	appointment := n.normalizeAppointment(instance)
	patient := n.normalizePatient(instance)
	provider := n.normalizeProvider(instance)
	participants := n.normalizeParticipants(instance, provider)

	return &models.NormalizedEvent{
		Appointment:  appointment,
		Patient:      patient,
		Provider:     provider,
		Participants: participants,
	}
}

func (n *Normalizer) normalizeAppointment(instance map[string]interface{}) *models.NormalizedAppointment {
	appt := &models.NormalizedAppointment{
		ID:                           rawview.GetString(instance, "id"),
		Status:                       rawview.GetString(instance, "status"),
		Comment:                      rawview.GetString(instance, "comment"),
		Location:                     resolveLocation(instance),
		EnteredInError:               rawview.GetString(instance, "entered_in_error", "enteredInError"),
		Description:                  rawview.GetString(instance, "description"),
		CreatedAt:                    rawview.GetString(instance, "created", "created_at", "createdAt"),
		ModifiedAt:                   rawview.GetString(instance, "modified", "modified_at", "modifiedAt"),
		ParentAppointmentID:          rawview.GetString(instance, "parent_appointment_id", "parentAppointmentId"),
		RescheduledFromAppointmentID: rawview.GetString(instance, "appointment_rescheduled_from_id", "rescheduledFromAppointmentId"),
		ExternalIdentifiers:          extractExternalIdentifiers(instance),
		Metadata:                     extractMetadata(instance),
	}

	if dbid, ok := rawview.GetInt(instance, "dbid", "db_id"); ok {
		appt.DbID = &dbid
	}
	if duration, ok := rawview.GetInt(instance, "duration_minutes", "duration", "minutesDuration"); ok {
		appt.DurationMinutes = &duration
	}
	if noteTypeID := resolveNoteTypeID(instance); noteTypeID != nil {
		appt.NoteTypeID = noteTypeID
	}
	if sent, ok := rawview.Get(instance, "telehealth_instructions_sent", "telehealthInstructionsSent"); ok {
		if b, isBool := sent.(bool); isBool {
			appt.TelehealthInstructionsSent = &b
		}
	}

	appt.NoteID = resolveNoteID(instance)
	appt.MeetingLink = resolveMeetingLink(instance)
	if apptType := resolveAppointmentType(instance); !apptType.IsZero() {
		appt.AppointmentType = &apptType
	} else if _, present := rawview.Get(instance, "appointment_type", "appointmentType"); present {
		n.log.Warn("normalizer could not parse appointment type, treating as absent",
			zap.String(constvars.LoggingAppointmentKey, appt.ID),
		)
	}

	n.normalizeTimes(instance, appt)
	return appt
}

// normalizeTimes renders start and end in the outbound format. A missing end
// is derived from start plus duration; parse failures leave the field unset.
func (n *Normalizer) normalizeTimes(instance map[string]interface{}, appt *models.NormalizedAppointment) {
	var start time.Time
	var haveStart bool
	if raw := rawview.GetString(instance, "start_time", "start", "startTime"); raw != "" {
		parsed, err := utils.ParseEventTime(raw)
		if err != nil {
			n.log.Warn("normalizer could not parse start time",
				zap.String(constvars.LoggingAppointmentKey, appt.ID),
				zap.Error(err),
			)
		} else {
			start = parsed
			haveStart = true
			appt.StartTime = utils.FormatEventTime(parsed)
		}
	}

	if raw := rawview.GetString(instance, "end_time", "end", "endTime"); raw != "" {
		parsed, err := utils.ParseEventTime(raw)
		if err != nil {
			n.log.Warn("normalizer could not parse end time",
				zap.String(constvars.LoggingAppointmentKey, appt.ID),
				zap.Error(err),
			)
		} else {
			appt.EndTime = utils.FormatEventTime(parsed)
		}
	}

	if appt.EndTime == "" && haveStart && appt.DurationMinutes != nil {
		end := start.Add(time.Duration(*appt.DurationMinutes) * time.Minute)
		appt.EndTime = utils.FormatEventTime(end)
	}
}

// resolveNoteID prefers the appointment's own note id, falling back to a
// FHIR extension entry carrying it. The event context's note id belongs to
// the acknowledgement and is backfilled by the usecase, not here.
func resolveNoteID(instance map[string]interface{}) string {
	if id := rawview.GetString(instance, "note_id", "noteId"); id != "" {
		return id
	}
	extensions, ok := rawview.GetList(instance, "extension", "extensions")
	if !ok {
		return ""
	}
	for _, ext := range extensions {
		if rawview.GetString(ext, "url") == constvars.NoteIDExtensionURL {
			return rawview.GetString(ext, "valueId", "value_id")
		}
	}
	return ""
}

func (n *Normalizer) normalizePatient(instance map[string]interface{}) *models.NormalizedPatient {
	raw, ok := rawview.Get(instance, "patient")
	if !ok {
		return nil
	}
	patient := &models.NormalizedPatient{
		ID:          rawview.GetString(raw, "id"),
		FirstName:   rawview.GetString(raw, "first_name", "firstName"),
		LastName:    rawview.GetString(raw, "last_name", "lastName"),
		DateOfBirth: rawview.GetString(raw, "birth_date", "birthDate", "date_of_birth"),
		Gender:      rawview.GetString(raw, "sex", "gender"),
		CreatedAt:   rawview.GetString(raw, "created", "created_at", "createdAt"),
		ModifiedAt:  rawview.GetString(raw, "modified", "modified_at", "modifiedAt"),
	}
	if dbid, ok := rawview.GetInt(raw, "dbid", "db_id"); ok {
		patient.DbID = &dbid
	}
	if age, ok := utils.CalculateAge(patient.DateOfBirth, n.now()); ok {
		patient.Age = &age
	}
	return patient
}

func (n *Normalizer) normalizeProvider(instance map[string]interface{}) *models.NormalizedProvider {
	raw, ok := rawview.Get(instance, "provider", "practitioner")
	if !ok {
		return nil
	}
	provider := &models.NormalizedProvider{
		ID:         rawview.GetString(raw, "id"),
		Name:       rawview.GetString(raw, "name", "display_name", "displayName"),
		FirstName:  rawview.GetString(raw, "first_name", "firstName"),
		LastName:   rawview.GetString(raw, "last_name", "lastName"),
		CreatedAt:  rawview.GetString(raw, "created", "created_at", "createdAt"),
		ModifiedAt: rawview.GetString(raw, "modified", "modified_at", "modifiedAt"),
	}
	if dbid, ok := rawview.GetInt(raw, "dbid", "db_id"); ok {
		provider.DbID = &dbid
	}
	if provider.Name == "" {
		provider.Name = strings.TrimSpace(provider.FirstName + " " + provider.LastName)
	}
	return provider
}

// normalizeParticipants maps each participant entry to a schedule user. The
// actor reference's trailing path segment is the referenced id; a participant
// whose id matches the resolved provider gets the provider role and display
// name. Other participants keep an empty name.
func (n *Normalizer) normalizeParticipants(instance map[string]interface{}, provider *models.NormalizedProvider) []models.ScheduleParticipant {
	entries, ok := rawview.GetList(instance, "participants", "participant")
	if !ok {
		return []models.ScheduleParticipant{}
	}

	participants := make([]models.ScheduleParticipant, 0, len(entries))
	for _, entry := range entries {
		actor, _ := rawview.Get(entry, "actor")
		reference := rawview.GetString(actor, "reference")
		if reference == "" {
			reference = rawview.GetString(entry, "reference")
		}
		id := trailingSegment(reference)

		role := "participant"
		name := ""
		switch {
		case provider != nil && provider.ID != "" && id == provider.ID:
			role = "provider"
			name = provider.Name
		default:
			if actorType := rawview.GetString(actor, "type"); actorType != "" {
				role = actorType
			} else if entryType := rawview.GetString(entry, "type"); entryType != "" {
				role = entryType
			}
		}

		participants = append(participants, models.ScheduleParticipant{
			ID:    id,
			Name:  name,
			Role:  role,
			Email: "",
		})
	}
	return participants
}

// resolveAppointmentType probes the three shapes the host is known to send:
// a flat code/display/system object, the same field with a FHIR coding list,
// or a camelCase appointmentType with a coding list. First parsed shape wins.
func resolveAppointmentType(instance map[string]interface{}) models.AppointmentType {
	if raw, ok := rawview.Get(instance, "appointment_type"); ok {
		if t := appointmentTypeFrom(raw); !t.IsZero() {
			return t
		}
		if coding, ok := rawview.Path(raw, "coding[0]"); ok {
			if t := appointmentTypeFrom(coding); !t.IsZero() {
				return t
			}
		}
	}
	if coding, ok := rawview.Path(instance, "appointmentType.coding[0]"); ok {
		return appointmentTypeFrom(coding)
	}
	return models.AppointmentType{}
}

func appointmentTypeFrom(raw interface{}) models.AppointmentType {
	return models.AppointmentType{
		Code:    rawview.GetString(raw, "code"),
		Display: rawview.GetString(raw, "display"),
		System:  rawview.GetString(raw, "system"),
	}
}

func resolveNoteTypeID(instance map[string]interface{}) *int {
	if id, ok := rawview.GetInt(instance, "note_type_id", "noteTypeId"); ok {
		return &id
	}
	return nil
}

// resolveLocation accepts a plain string location, probes display-ish
// attributes on object locations, and rejects generic object-identity
// renderings rather than leaking them onto the wire.
func resolveLocation(instance map[string]interface{}) string {
	raw, ok := rawview.Get(instance, "location")
	if !ok {
		return ""
	}
	if s, isString := raw.(string); isString {
		return s
	}
	if name := rawview.GetString(raw, "name", "display", "text"); name != "" {
		return name
	}
	rendered := rawview.String(raw)
	if isObjectIdentityRendering(rendered) {
		return ""
	}
	return rendered
}

// isObjectIdentityRendering detects fmt's generic value renderings, which
// carry no display value and must not leak onto the wire.
func isObjectIdentityRendering(s string) bool {
	if strings.Contains(s, "<") || strings.Contains(s, "object at") || strings.Contains(s, "0x") {
		return true
	}
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "&{") || strings.HasPrefix(s, "map[")
}

// resolveMeetingLink prefers a direct link field, then scans the contained
// resources for an Endpoint and takes its address.
func resolveMeetingLink(instance map[string]interface{}) string {
	if link := rawview.GetString(instance, "meeting_link", "meetingLink"); link != "" {
		return link
	}
	contained, ok := rawview.GetList(instance, "contained")
	if !ok {
		return ""
	}
	for _, resource := range contained {
		if rawview.GetString(resource, "resourceType", "resource_type") == "Endpoint" {
			if address := rawview.GetString(resource, "address"); address != "" {
				return address
			}
		}
	}
	return ""
}

func extractExternalIdentifiers(instance map[string]interface{}) []models.ExternalIdentifier {
	entries, ok := rawview.GetList(instance, "external_identifiers", "externalIdentifiers")
	if !ok {
		return nil
	}
	identifiers := make([]models.ExternalIdentifier, 0, len(entries))
	for _, entry := range entries {
		identifiers = append(identifiers, models.ExternalIdentifier{
			ID:             rawview.GetString(entry, "id"),
			System:         rawview.GetString(entry, "system"),
			Value:          rawview.GetString(entry, "value"),
			Use:            rawview.GetString(entry, "use"),
			IdentifierType: rawview.GetString(entry, "identifier_type", "identifierType"),
			IssuedDate:     rawview.GetString(entry, "issued_date", "issuedDate"),
			ExpirationDate: rawview.GetString(entry, "expiration_date", "expirationDate"),
		})
	}
	return identifiers
}

func extractMetadata(instance map[string]interface{}) []models.MetadataEntry {
	entries, ok := rawview.GetList(instance, "metadata")
	if !ok {
		return nil
	}
	metadata := make([]models.MetadataEntry, 0, len(entries))
	for _, entry := range entries {
		metadata = append(metadata, models.MetadataEntry{
			ID:    rawview.GetString(entry, "id"),
			Key:   rawview.GetString(entry, "key"),
			Value: rawview.GetString(entry, "value"),
		})
	}
	return metadata
}

func trailingSegment(reference string) string {
	if reference == "" {
		return ""
	}
	if idx := strings.LastIndex(reference, "/"); idx >= 0 {
		return reference[idx+1:]
	}
	return reference
}
