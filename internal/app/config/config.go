package config

import (
	"oneroom-connector/internal/pkg/constvars"
	"oneroom-connector/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		MongoDB: MongoDB{
			Host:     utils.GetEnvString("MONGODB_HOST", ""),
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "oneroom"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "info"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                      utils.GetEnvString("APP_ENV", "development"),
			Port:                     utils.GetEnvString("APP_PORT", ":8080"),
			Version:                  utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:           utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:              utils.GetEnvInt("APP_MAX_REQUESTS", 10),
			ShutdownTimeoutInSeconds: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
		},
		Webhook: Webhook{
			URL:                  utils.GetEnvString("WEBHOOK_URL", utils.GetEnvString("ONEROOM_WEBHOOK_URL", "")),
			APIKey:               utils.GetEnvString("ONEROOM_API_KEY", ""),
			SigningSecret:        utils.GetEnvString("CANVAS_WEBHOOK_SECRET", ""),
			RoomID:               utils.GetEnvString("ONEROOM_ROOM_ID", ""),
			MaxAttempts:          utils.GetEnvInt("WEBHOOK_MAX_ATTEMPTS", 1),
			BackoffBaseInSeconds: utils.GetEnvInt("WEBHOOK_BACKOFF_BASE_IN_SECONDS", 2),
			HTTPTimeoutInSeconds: utils.GetEnvInt("WEBHOOK_HTTP_TIMEOUT_IN_SECONDS", 30),
			RatePerSecond:        utils.GetEnvFloat("WEBHOOK_RATE_PER_SECOND", 0),
			EnforceEventFilter:   utils.GetEnvBool("WEBHOOK_ENFORCE_EVENT_FILTER", false),
			DeliveryMode:         utils.GetEnvString("WEBHOOK_DELIVERY_MODE", constvars.DeliveryModeDirect),
			MaxQueue:             utils.GetEnvInt("WEBHOOK_MAX_QUEUE", 10),
			ThrottleRetry:        utils.GetEnvInt("WEBHOOK_THROTTLE_RETRY", 5),
		},
	}
}
