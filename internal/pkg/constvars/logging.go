package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingEventIDKey      = "event_id"
	LoggingEventTypeKey    = "event_type"
	LoggingAppointmentKey  = "appointment_id"
	LoggingNoteIDKey       = "note_id"
	LoggingRoomIDKey       = "room_id"
	LoggingAttemptKey      = "attempt"
	LoggingStatusCodeKey   = "status_code"
	LoggingBodyPreviewKey  = "body_preview"
	LoggingMethodKey       = "method"
	LoggingEndpointKey     = "endpoint"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingMessageIDKey    = "message_id"
	LoggingFailedCountKey  = "failed_count"
	LoggingRedisKey        = "redis_key"
	LoggingLockValueKey    = "lock_value"
	LoggingLockTTLKey      = "lock_ttl"
	LoggingDeliveryModeKey = "delivery_mode"
)
