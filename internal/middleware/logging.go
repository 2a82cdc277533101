package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// contextKey is the key type for values this package stores in contexts.
type contextKey string

const loggerKey = contextKey("logger")

// loggerCtxKey keys the request-scoped logger in the standard context, so
// services and repositories can reach it without depending on gin.
var loggerCtxKey = contextKey("loggerCtx")

// StructuredLoggingMiddleware assigns each request an ID, injects a logger
// enriched with it into both the gin and standard contexts, and logs the
// outcome with latency.
func StructuredLoggingMiddleware(baseLogger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		requestLogger := baseLogger.With(
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)

		c.Header("X-Request-ID", requestID)

		c.Set(string(loggerKey), requestLogger)
		ctx := context.WithValue(c.Request.Context(), loggerCtxKey, requestLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		requestLogger.Info("Request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// GetLoggerFromContext returns the request-scoped logger from the gin context,
// falling back to the process default.
func GetLoggerFromContext(c *gin.Context) *slog.Logger {
	if v, exists := c.Get(string(loggerKey)); exists {
		if logger, ok := v.(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}

// GetLoggerFromCtx returns the request-scoped logger from a standard context,
// falling back to the process default.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
