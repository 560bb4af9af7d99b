package middlewares

import (
	"context"
	"net/http"
	"time"

	"oneroom-connector/internal/pkg/constvars"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Middlewares bundles the cross-cutting HTTP handlers wired by the router.
type Middlewares struct {
	log *zap.Logger
}

func NewMiddlewares(logger *zap.Logger) *Middlewares {
	return &Middlewares{log: logger}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rec *responseRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}

// RequestID attaches a request id to the context and response, keeping the
// client's value when one is supplied.
func (m *Middlewares) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constvars.HeaderRequestID)
		isClientRequestID := true
		if requestID == "" {
			requestID = uuid.NewString()
			isClientRequestID = false
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_REQUEST_ID_KEY, requestID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY, isClientRequestID)
		w.Header().Set(constvars.HeaderRequestID, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logging records one started and one completed line per request.
func (m *Middlewares) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY)

		m.log.Info("API request started",
			zap.Any(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.String(constvars.LoggingUserAgentKey, r.UserAgent()),
			zap.String(constvars.LoggingQueryKey, r.URL.RawQuery),
		)

		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.log.Info("API request completed",
			zap.Any(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, rec.statusCode),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Bool(constvars.LoggingSuccessKey, rec.statusCode < 400),
		)
	})
}

// Recovery turns panics into a 500 response instead of dropping the
// connection.
func (m *Middlewares) Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.log.Error("panic recovered in handler",
					zap.Any("panic", rec),
					zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				)
				w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
				w.WriteHeader(constvars.StatusInternalServerError)
				w.Write([]byte(`{"success":false,"message":"internal server error"}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
