package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"oneroom-connector/internal/pkg/constvars"
	"oneroom-connector/internal/pkg/dto/requests"
	"oneroom-connector/internal/pkg/dto/responses"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEventUsecase struct {
	processed []*requests.HostEvent
}

func (s *stubEventUsecase) Process(_ context.Context, event *requests.HostEvent) (*responses.Acknowledgement, error) {
	s.processed = append(s.processed, event)
	return &responses.Acknowledgement{
		Note: responses.NoteReference{UUID: "note-1"},
		Data: responses.AcknowledgeDetail{Narrative: constvars.NarrativeString},
	}, nil
}

func newEventRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	return req
}

func TestEventControllerHandleHostEvent(t *testing.T) {
	newController := func(usecase *stubEventUsecase) *EventController {
		return &EventController{
			Log:      zap.NewNop(),
			Usecase:  usecase,
			Validate: validator.New(),
		}
	}

	t.Run("ValidEventAcknowledged", func(t *testing.T) {
		usecase := &stubEventUsecase{}
		ctrl := newController(usecase)

		body := `{"type":"APPOINTMENT_CREATED","target":{"id":"appt-1"},"context":{"note_id":"note-1"}}`
		rec := httptest.NewRecorder()
		ctrl.HandleHostEvent(rec, newEventRequest(t, body))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, usecase.processed, 1)
		assert.Equal(t, "APPOINTMENT_CREATED", usecase.processed[0].Type)

		var response responses.ResponseDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.True(t, response.Success)
	})

	t.Run("MalformedJSONRejected", func(t *testing.T) {
		ctrl := newController(&stubEventUsecase{})

		rec := httptest.NewRecorder()
		ctrl.HandleHostEvent(rec, newEventRequest(t, `{"type":`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingTypeFailsValidation", func(t *testing.T) {
		usecase := &stubEventUsecase{}
		ctrl := newController(usecase)

		rec := httptest.NewRecorder()
		ctrl.HandleHostEvent(rec, newEventRequest(t, `{"target":{"id":"appt-1"}}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, usecase.processed)
	})

	t.Run("WrongContentTypeRejected", func(t *testing.T) {
		ctrl := newController(&stubEventUsecase{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(`{}`))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMETextPlain)
		rec := httptest.NewRecorder()
		ctrl.HandleHostEvent(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}
