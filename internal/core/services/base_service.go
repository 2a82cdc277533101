package services

import (
	"context"
	"log/slog"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/middleware"
)

// BaseService provides request-scoped logging helpers shared by all services.
type BaseService struct{}

// LogError logs an error with the request-scoped logger.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	middleware.GetLoggerFromCtx(ctx).Error(msg, args...)
}

// LogInfo logs an info message with the request-scoped logger.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	middleware.GetLoggerFromCtx(ctx).Info(msg, keyvals...)
}

// LogWarn logs a warning with the request-scoped logger.
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	middleware.GetLoggerFromCtx(ctx).Warn(msg, keyvals...)
}

// LogDebug logs a debug message with the request-scoped logger.
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	middleware.GetLoggerFromCtx(ctx).Debug(msg, keyvals...)
}
