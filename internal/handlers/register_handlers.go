package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/apperrors"
	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/middleware"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerShiftRoutes(v1, services.ShiftLifecycle)
	registerMarketplaceRoutes(v1, services.Marketplace, services.Staff)
	registerClockRoutes(v1, services.Clock, services.Staff)
	registerTimesheetRoutes(v1, services.TimesheetValidation)
	registerStaffRoutes(v1, services.Staff)
}

// respondServiceError maps service errors onto HTTP responses. Typed guard
// violations carry enough detail for the client to act on.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	var locErr *apperrors.LocationError
	var geoErr *apperrors.GeofenceError
	var earlyErr *apperrors.EarlyClockInError

	switch {
	case errors.As(err, &locErr):
		logger.Warn("Location acquisition failed", slog.String("cause", string(locErr.Cause)))
		c.JSON(http.StatusBadRequest, gin.H{"error": locErr.Error(), "cause": string(locErr.Cause)})
	case errors.As(err, &geoErr):
		logger.Warn("Geofence rejected", slog.String("distance_m", geoErr.DistanceMeters.StringFixed(0)))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":           geoErr.Error(),
			"distance_meters": geoErr.DistanceMeters,
			"radius_meters":   geoErr.RadiusMeters,
		})
	case errors.As(err, &earlyErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": earlyErr.Error(), "wait_seconds": int(earlyErr.Wait.Seconds())})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrShiftAlreadyClaimed),
		errors.Is(err, apperrors.ErrAlreadyClockedIn),
		errors.Is(err, apperrors.ErrAlreadyClockedOut):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrFinancialFieldsLocked):
		c.JSON(http.StatusLocked, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrGPSConsentRequired):
		c.JSON(http.StatusPreconditionRequired, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrMinimumDurationNotMet),
		errors.Is(err, apperrors.ErrConfirmationRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
