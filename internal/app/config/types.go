package config

type (
	DriverConfig struct {
		Redis    Redis
		RabbitMQ RabbitMQ
		MongoDB  MongoDB
		Logger   Logger
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	MongoDB struct {
		Host     string
		Port     string
		DbName   string
		Username string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)

type InternalConfig struct {
	App     App
	Webhook Webhook
}

type App struct {
	Env                      string
	Port                     string
	Version                  string
	EndpointPrefix           string
	MaxRequests              int
	ShutdownTimeoutInSeconds int
}

// Webhook holds every option recognized by the delivery pipeline. URL, API
// key, signing secret, and room id are opaque strings sourced from the secret
// store; the pipeline only applies the documented precedence rules to them.
type Webhook struct {
	// URL is the OneRoom backend webhook endpoint.
	URL string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string
	// SigningSecret enables the x-canvas-signature HMAC header when non-empty.
	SigningSecret string
	// RoomID overrides the derived room identifier when non-empty.
	RoomID string
	// MaxAttempts bounds delivery tries per event. The observed behavior is a
	// single attempt; the doubling backoff only applies from the second try.
	MaxAttempts int
	// BackoffBaseInSeconds is the first inter-attempt delay; each retry doubles it.
	BackoffBaseInSeconds int
	// HTTPTimeoutInSeconds bounds each individual POST attempt.
	HTTPTimeoutInSeconds int
	// RatePerSecond throttles outbound POSTs across events (0 disables).
	RatePerSecond float64
	// EnforceEventFilter turns the classifier gate on. Off by default: the
	// observed behavior forwards every event regardless of the match result.
	EnforceEventFilter bool
	// DeliveryMode selects direct dispatch or the durable queue ("direct"|"queue").
	DeliveryMode string
	// MaxQueue is how many queued messages the worker drains per tick.
	MaxQueue int
	// ThrottleRetry is the queued failed-count threshold before DLQ.
	ThrottleRetry int
}
