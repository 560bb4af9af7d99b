package constvars

// Client-facing messages. Kept generic so internals never leak.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process request, please check your request"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
)

// Developer-facing messages logged alongside the client message.
const (
	ErrDevValidationFailed        = "Request validation failed"
	ErrDevCannotParseJSON         = "Cannot parse JSON payload"
	ErrDevCannotMarshalJSON       = "Cannot marshal value to JSON"
	ErrDevCannotReadRequestBody   = "Cannot read request body"
	ErrDevCannotParseTime         = "Cannot parse time value"
	ErrDevBuildHTTPRequest        = "Cannot build outbound HTTP request"
	ErrDevSendHTTPRequest         = "Cannot send outbound HTTP request"
	ErrDevRedisSet                = "Redis SET failed"
	ErrDevRedisGet                = "Redis GET failed"
	ErrDevRedisDelete             = "Redis DEL failed"
	ErrDevRedisSetNX              = "Redis SETNX failed"
	ErrDevRedisUnlock             = "Redis unlock failed"
	ErrDevRabbitMQPublishMessage  = "RabbitMQ publish to queue %s failed"
	ErrDevMongoDBInsertDocument   = "MongoDB failed to insert document"
	ErrDevMongoDBFindDocument     = "MongoDB failed to find document"
	ErrDevMongoDBIterateDocuments = "MongoDB failed to iterate documents"
)
