package events

import (
	"testing"

	"oneroom-connector/internal/app/config"
	"oneroom-connector/internal/app/models"
	"oneroom-connector/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func intPtr(n int) *int { return &n }

func TestClassifierMatches(t *testing.T) {
	c := NewClassifier(config.Webhook{EnforceEventFilter: true}, zap.NewNop())

	t.Run("DisplayMatchCaseInsensitive", func(t *testing.T) {
		appt := &models.NormalizedAppointment{
			AppointmentType: &models.AppointmentType{Display: "TEST-ONEROOMHEALTH"},
		}
		assert.True(t, c.Matches(appt))
	})

	t.Run("CodeMatch", func(t *testing.T) {
		appt := &models.NormalizedAppointment{
			AppointmentType: &models.AppointmentType{Code: "test-orh"},
		}
		assert.True(t, c.Matches(appt))
	})

	t.Run("SystemMatchesTargetCode", func(t *testing.T) {
		appt := &models.NormalizedAppointment{
			AppointmentType: &models.AppointmentType{System: "TEST-ORH"},
		}
		assert.True(t, c.Matches(appt))
	})

	t.Run("NoteTypeSentinelMatch", func(t *testing.T) {
		appt := &models.NormalizedAppointment{NoteTypeID: intPtr(constvars.TargetNoteTypeID)}
		assert.True(t, c.Matches(appt))
	})

	t.Run("NoMarkersNoMatch", func(t *testing.T) {
		appt := &models.NormalizedAppointment{
			AppointmentType: &models.AppointmentType{Display: "Annual Physical", Code: "AP"},
			NoteTypeID:      intPtr(7),
		}
		assert.False(t, c.Matches(appt))
	})

	t.Run("NilAppointmentNoMatch", func(t *testing.T) {
		assert.False(t, c.Matches(nil))
	})
}

func TestClassifierInScope(t *testing.T) {
	outOfScope := &models.NormalizedAppointment{
		AppointmentType: &models.AppointmentType{Display: "Annual Physical"},
	}

	t.Run("EnforcementOffForwardsEverything", func(t *testing.T) {
		c := NewClassifier(config.Webhook{EnforceEventFilter: false}, zap.NewNop())
		assert.True(t, c.InScope(outOfScope))
		assert.True(t, c.InScope(nil))
	})

	t.Run("EnforcementOnRejectsNonMatching", func(t *testing.T) {
		c := NewClassifier(config.Webhook{EnforceEventFilter: true}, zap.NewNop())
		assert.False(t, c.InScope(outOfScope))
	})

	t.Run("EnforcementOnAcceptsMatching", func(t *testing.T) {
		c := NewClassifier(config.Webhook{EnforceEventFilter: true}, zap.NewNop())
		inScope := &models.NormalizedAppointment{NoteTypeID: intPtr(constvars.TargetNoteTypeID)}
		assert.True(t, c.InScope(inScope))
	})
}
