package dispatcher

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"oneroom-connector/internal/app/config"
	"oneroom-connector/internal/app/contracts"
	"oneroom-connector/internal/app/models"
	"oneroom-connector/internal/pkg/constvars"
	"oneroom-connector/internal/pkg/exceptions"
	"oneroom-connector/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const responsePreviewLimit = 200

type webhookDispatcher struct {
	cfg     config.Webhook
	client  *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
	sleep   func(time.Duration)
}

// NewWebhookDispatcher builds the direct HTTP dispatcher. Each Deliver call
// posts a single-element JSON array to the configured backend URL, signing
// the exact request body when a signing secret is set.
func NewWebhookDispatcher(cfg config.Webhook, logger *zap.Logger) contracts.EventDispatcher {
	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}
	return &webhookDispatcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.HTTPTimeoutInSeconds) * time.Second,
		},
		limiter: limiter,
		log:     logger,
		sleep:   time.Sleep,
	}
}

// EncodeRoomEvents renders the wire body for one event: a compact
// single-element JSON array with every null-valued key stripped at any
// depth. Encoding the same event twice yields identical bytes.
func EncodeRoomEvents(event *models.RoomEvent) ([]byte, error) {
	structBytes, err := json.Marshal(event)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	var asMap map[string]interface{}
	if err := json.Unmarshal(structBytes, &asMap); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	pruned := utils.PruneNils(asMap)
	body, err := json.Marshal([]interface{}{pruned})
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}
	return body, nil
}

// Sign computes the lowercase hex HMAC-SHA256 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (d *webhookDispatcher) Deliver(ctx context.Context, event *models.RoomEvent) models.DeliveryOutcome {
	outcome := models.DeliveryOutcome{}

	if d.cfg.URL == "" {
		d.log.Warn("webhookDispatcher.Deliver no webhook URL configured, skipping delivery",
			zap.String(constvars.LoggingEventIDKey, event.EventID),
		)
		outcome.LastError = "webhook URL not configured"
		return outcome
	}

	body, err := EncodeRoomEvents(event)
	if err != nil {
		d.log.Error("webhookDispatcher.Deliver error encoding event",
			zap.String(constvars.LoggingEventIDKey, event.EventID),
			zap.Error(err),
		)
		outcome.LastError = err.Error()
		return outcome
	}

	maxAttempts := d.cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	backoff := time.Duration(d.cfg.BackoffBaseInSeconds) * time.Second

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		outcome.Attempts = attempt
		statusCode, err := d.post(ctx, event.EventID, body, attempt)
		// The backend acknowledges ingestion with 200 only; anything else,
		// 2xx included, is retried.
		if err == nil && statusCode == constvars.StatusOK {
			outcome.Delivered = true
			outcome.StatusCode = statusCode
			outcome.LastError = ""
			return outcome
		}
		if err != nil {
			outcome.LastError = err.Error()
		} else {
			outcome.StatusCode = statusCode
			outcome.LastError = fmt.Sprintf("backend returned status %d", statusCode)
		}
		if attempt < maxAttempts {
			d.log.Warn("webhookDispatcher.Deliver attempt failed, backing off",
				zap.String(constvars.LoggingEventIDKey, event.EventID),
				zap.Int(constvars.LoggingAttemptKey, attempt),
				zap.Duration("backoff", backoff),
			)
			d.sleep(backoff)
			backoff *= 2
		}
	}

	d.log.Error("webhookDispatcher.Deliver delivery failed",
		zap.String(constvars.LoggingEventIDKey, event.EventID),
		zap.Int(constvars.LoggingAttemptKey, outcome.Attempts),
		zap.String("last_error", outcome.LastError),
	)
	return outcome
}

func (d *webhookDispatcher) post(ctx context.Context, eventID string, body []byte, attempt int) (int, error) {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return 0, exceptions.ErrSendHTTPRequest(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, d.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return 0, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderUserAgent, constvars.ClientUserAgent)
	if d.cfg.APIKey != "" {
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+d.cfg.APIKey)
	}
	if d.cfg.SigningSecret != "" {
		req.Header.Set(constvars.HeaderCanvasSignature, Sign(d.cfg.SigningSecret, body))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.Warn("webhookDispatcher.post request error",
			zap.String(constvars.LoggingEventIDKey, eventID),
			zap.Int(constvars.LoggingAttemptKey, attempt),
			zap.Error(err),
		)
		return 0, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	preview, _ := io.ReadAll(io.LimitReader(resp.Body, responsePreviewLimit))
	d.log.Info("webhookDispatcher.post response received",
		zap.String(constvars.LoggingEventIDKey, eventID),
		zap.Int(constvars.LoggingAttemptKey, attempt),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		zap.String(constvars.LoggingBodyPreviewKey, string(preview)),
	)
	return resp.StatusCode, nil
}
