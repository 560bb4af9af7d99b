package events

import (
	"strings"

	"oneroom-connector/internal/app/config"
	"oneroom-connector/internal/app/models"
	"oneroom-connector/internal/pkg/constvars"

	"go.uber.org/zap"
)

// Classifier decides whether an event is in scope for forwarding. The match
// itself checks the appointment type markers, but enforcement is off by
// default: the deployed behavior forwards every event and the product owner
// has not signed off on restoring the gate.
type Classifier struct {
	enforce bool
	log     *zap.Logger
}

func NewClassifier(cfg config.Webhook, logger *zap.Logger) *Classifier {
	return &Classifier{enforce: cfg.EnforceEventFilter, log: logger}
}

// Matches reports whether the appointment carries any in-scope marker:
// target display, target code as either code or system (all
// case-insensitive), or the sentinel note type id.
func (c *Classifier) Matches(appointment *models.NormalizedAppointment) bool {
	if appointment == nil {
		return false
	}
	if t := appointment.AppointmentType; t != nil {
		if strings.EqualFold(t.Display, constvars.TargetAppointmentTypeDisplay) {
			return true
		}
		if strings.EqualFold(t.Code, constvars.TargetAppointmentTypeCode) {
			return true
		}
		if strings.EqualFold(t.System, constvars.TargetAppointmentTypeCode) {
			return true
		}
	}
	if appointment.NoteTypeID != nil && *appointment.NoteTypeID == constvars.TargetNoteTypeID {
		return true
	}
	return false
}

// InScope applies the enforcement switch on top of Matches. With enforcement
// off the match result is computed for logging only and every event passes.
func (c *Classifier) InScope(appointment *models.NormalizedAppointment) bool {
	matched := c.Matches(appointment)
	if !c.enforce {
		if !matched {
			c.log.Debug("classifier match failed but enforcement is off, forwarding anyway")
		}
		return true
	}
	if !matched {
		c.log.Info("classifier rejected out-of-scope event")
	}
	return matched
}
