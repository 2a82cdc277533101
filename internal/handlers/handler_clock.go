package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/adapters/geo"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/apperrors"
	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/dto"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/middleware"
)

// clockHandler handles clock-in and clock-out. The client's GPS capture rides
// in the request body and is handed to the sensor through the request context.
type clockHandler struct {
	clockService portssvc.ClockSvcFacade
	staffService portssvc.StaffSvcFacade
}

func newClockHandler(cs portssvc.ClockSvcFacade, ss portssvc.StaffSvcFacade) *clockHandler {
	return &clockHandler{clockService: cs, staffService: ss}
}

// registerClockRoutes registers the attendance endpoints.
func registerClockRoutes(rg *gin.RouterGroup, clockService portssvc.ClockSvcFacade, staffService portssvc.StaffSvcFacade) {
	h := newClockHandler(clockService, staffService)

	clock := rg.Group("/clock")
	{
		clock.POST("/in", h.clockIn)
		clock.POST("/out", h.clockOut)
	}
}

// stageLocation stores the client's capture, or its reported failure cause, on
// the request context for the geolocation sensor. Exactly one of the two must
// be present.
func stageLocation(c *gin.Context, capture *dto.LocationCapture, failure string) bool {
	switch {
	case capture != nil:
		ctx := geo.ContextWithCapture(c.Request.Context(), capture.ToDomainLocation())
		c.Request = c.Request.WithContext(ctx)
	case failure != "":
		ctx := geo.ContextWithFailure(c.Request.Context(), apperrors.LocationCause(failure))
		c.Request = c.Request.WithContext(ctx)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "location or locationFailure is required"})
		return false
	}
	return true
}

func (h *clockHandler) resolveStaff(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	staff, err := h.staffService.GetStaffByUserID(c.Request.Context(), userID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		respondServiceError(c, logger, err)
		return "", false
	}
	return staff.StaffID, true
}

func (h *clockHandler) clockIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ClockIn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	staffID, ok := h.resolveStaff(c)
	if !ok {
		return
	}
	if !stageLocation(c, req.Location, req.LocationFailure) {
		return
	}

	timesheet, err := h.clockService.ClockIn(c.Request.Context(), req.ShiftID, staffID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTimesheetResponse(timesheet))
}

func (h *clockHandler) clockOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ClockOut", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	staffID, ok := h.resolveStaff(c)
	if !ok {
		return
	}
	if !stageLocation(c, req.Location, req.LocationFailure) {
		return
	}

	timesheet, err := h.clockService.ClockOut(c.Request.Context(), req.TimesheetID, staffID, req.Confirmed)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimesheetResponse(timesheet))
}
