package dispatcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"oneroom-connector/internal/app/config"
	"oneroom-connector/internal/app/models"
	"oneroom-connector/internal/pkg/constvars"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleEvent() *models.RoomEvent {
	return &models.RoomEvent{
		ID:            "room-1_evt-1",
		RoomID:        "room-1",
		EventID:       "evt-1",
		UserID:        "provider-9",
		Type:          constvars.RoomEventType,
		EventName:     constvars.EventAppointmentCreated,
		AppointmentID: "appt-5",
		SchUserList:   []models.ScheduleParticipant{},
	}
}

func newTestDispatcher(cfg config.Webhook) *webhookDispatcher {
	d := NewWebhookDispatcher(cfg, zap.NewNop()).(*webhookDispatcher)
	d.sleep = func(time.Duration) {}
	return d
}

func TestEncodeRoomEvents(t *testing.T) {
	t.Run("WrapsEventInSingleElementArray", func(t *testing.T) {
		body, err := EncodeRoomEvents(sampleEvent())
		require.NoError(t, err)

		var decoded []map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "room-1_evt-1", decoded[0]["id"])
		assert.Equal(t, "event", decoded[0]["type"])
	})

	t.Run("StripsNullKeysAtEveryDepth", func(t *testing.T) {
		event := sampleEvent()
		event.Appointment = &models.NormalizedAppointment{
			ID: "appt-5",
			// DbID and the rest stay nil.
		}
		body, err := EncodeRoomEvents(event)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "null")
	})

	t.Run("CompactOutput", func(t *testing.T) {
		body, err := EncodeRoomEvents(sampleEvent())
		require.NoError(t, err)
		assert.NotContains(t, string(body), "\n")
		assert.NotContains(t, string(body), ": ")
	})

	t.Run("IdempotentBytes", func(t *testing.T) {
		event := sampleEvent()
		event.Appointment = &models.NormalizedAppointment{ID: "appt-5", Status: "booked"}
		first, err := EncodeRoomEvents(event)
		require.NoError(t, err)
		second, err := EncodeRoomEvents(event)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestWebhookDispatcherDeliver(t *testing.T) {
	t.Run("SignsBodyWhenSecretConfigured", func(t *testing.T) {
		var gotSignature string
		var gotBody []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSignature = r.Header.Get(constvars.HeaderCanvasSignature)
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		d := newTestDispatcher(config.Webhook{
			URL:                  server.URL,
			SigningSecret:        "secret-key",
			MaxAttempts:          1,
			HTTPTimeoutInSeconds: 5,
		})
		outcome := d.Deliver(context.Background(), sampleEvent())

		require.True(t, outcome.Delivered)
		assert.Equal(t, http.StatusOK, outcome.StatusCode)
		assert.Equal(t, Sign("secret-key", gotBody), gotSignature)
	})

	t.Run("OmitsSignatureWithoutSecret", func(t *testing.T) {
		var sawSignature bool
		var sawAuthorization string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, sawSignature = r.Header[http.CanonicalHeaderKey(constvars.HeaderCanvasSignature)]
			sawAuthorization = r.Header.Get(constvars.HeaderAuthorization)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		d := newTestDispatcher(config.Webhook{
			URL:                  server.URL,
			APIKey:               "api-key-1",
			MaxAttempts:          1,
			HTTPTimeoutInSeconds: 5,
		})
		outcome := d.Deliver(context.Background(), sampleEvent())

		require.True(t, outcome.Delivered)
		assert.False(t, sawSignature)
		assert.Equal(t, "Bearer api-key-1", sawAuthorization)
	})

	t.Run("SetsUserAgent", func(t *testing.T) {
		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get(constvars.HeaderUserAgent)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		d := newTestDispatcher(config.Webhook{URL: server.URL, MaxAttempts: 1, HTTPTimeoutInSeconds: 5})
		d.Deliver(context.Background(), sampleEvent())

		assert.Equal(t, constvars.ClientUserAgent, gotUA)
	})

	t.Run("RetriesWithDoublingBackoff", func(t *testing.T) {
		var hits int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		d := NewWebhookDispatcher(config.Webhook{
			URL:                  server.URL,
			MaxAttempts:          3,
			BackoffBaseInSeconds: 2,
			HTTPTimeoutInSeconds: 5,
		}, zap.NewNop()).(*webhookDispatcher)
		var slept []time.Duration
		d.sleep = func(dur time.Duration) { slept = append(slept, dur) }

		outcome := d.Deliver(context.Background(), sampleEvent())

		assert.False(t, outcome.Delivered)
		assert.Equal(t, 3, outcome.Attempts)
		assert.Equal(t, 3, hits)
		assert.Equal(t, http.StatusInternalServerError, outcome.StatusCode)
		require.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, slept)
	})

	t.Run("StopsRetryingOnFirstSuccess", func(t *testing.T) {
		var hits int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			if hits < 2 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		d := newTestDispatcher(config.Webhook{
			URL:                  server.URL,
			MaxAttempts:          3,
			BackoffBaseInSeconds: 1,
			HTTPTimeoutInSeconds: 5,
		})
		outcome := d.Deliver(context.Background(), sampleEvent())

		assert.True(t, outcome.Delivered)
		assert.Equal(t, 2, outcome.Attempts)
		assert.Equal(t, 2, hits)
	})

	t.Run("Non200SuccessStatusIsRetried", func(t *testing.T) {
		var hits int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		d := newTestDispatcher(config.Webhook{
			URL:                  server.URL,
			MaxAttempts:          2,
			BackoffBaseInSeconds: 1,
			HTTPTimeoutInSeconds: 5,
		})
		outcome := d.Deliver(context.Background(), sampleEvent())

		assert.False(t, outcome.Delivered)
		assert.Equal(t, 2, hits)
		assert.Equal(t, http.StatusCreated, outcome.StatusCode)
	})

	t.Run("MissingURLSkipsDelivery", func(t *testing.T) {
		d := newTestDispatcher(config.Webhook{MaxAttempts: 1, HTTPTimeoutInSeconds: 5})
		outcome := d.Deliver(context.Background(), sampleEvent())

		assert.False(t, outcome.Delivered)
		assert.Zero(t, outcome.Attempts)
		assert.Contains(t, outcome.LastError, "not configured")
	})

	t.Run("UnreachableBackendReported", func(t *testing.T) {
		d := newTestDispatcher(config.Webhook{
			URL:                  "http://127.0.0.1:1/webhook",
			MaxAttempts:          1,
			HTTPTimeoutInSeconds: 1,
		})
		outcome := d.Deliver(context.Background(), sampleEvent())

		assert.False(t, outcome.Delivered)
		assert.Equal(t, 1, outcome.Attempts)
		assert.True(t, strings.Contains(outcome.LastError, "connect") || outcome.LastError != "")
	})
}
