package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/dto"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/middleware"
)

// timesheetHandler handles timesheet review endpoints.
type timesheetHandler struct {
	validationService portssvc.TimesheetValidationSvcFacade
}

func newTimesheetHandler(vs portssvc.TimesheetValidationSvcFacade) *timesheetHandler {
	return &timesheetHandler{validationService: vs}
}

// registerTimesheetRoutes registers routes related to timesheets.
func registerTimesheetRoutes(rg *gin.RouterGroup, validationService portssvc.TimesheetValidationSvcFacade) {
	h := newTimesheetHandler(validationService)

	timesheets := rg.Group("/timesheets")
	{
		timesheets.GET("", h.listTimesheets)
		timesheets.GET("/:timesheet_id", h.getTimesheet)
		timesheets.PATCH("/:timesheet_id", h.updateTimesheet)
		timesheets.POST("/:timesheet_id/approve", h.approveTimesheet)
		timesheets.POST("/:timesheet_id/reject", h.rejectTimesheet)
		timesheets.POST("/:timesheet_id/pay", h.markPaid)
		timesheets.POST("/:timesheet_id/validate", h.runValidation)
	}
}

func (h *timesheetHandler) listTimesheets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	agencyID := c.Query("agency_id")
	if agencyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "agency_id query parameter is required"})
		return
	}
	status := domain.TimesheetStatus(c.DefaultQuery("status", string(domain.TimesheetSubmitted)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	timesheets, err := h.validationService.ListTimesheetsByStatus(c.Request.Context(), agencyID, status, limit, offset)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTimesheetsResponse(timesheets))
}

func (h *timesheetHandler) getTimesheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	timesheetID := c.Param("timesheet_id")

	timesheet, err := h.validationService.GetTimesheetByID(c.Request.Context(), timesheetID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimesheetResponse(timesheet))
}

func (h *timesheetHandler) updateTimesheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	timesheetID := c.Param("timesheet_id")

	var req dto.UpdateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTimesheet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	timesheet, err := h.validationService.UpdateTimesheet(c.Request.Context(), timesheetID, req, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimesheetResponse(timesheet))
}

func (h *timesheetHandler) approveTimesheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	timesheetID := c.Param("timesheet_id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	timesheet, err := h.validationService.ApproveManually(c.Request.Context(), timesheetID, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimesheetResponse(timesheet))
}

func (h *timesheetHandler) rejectTimesheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	timesheetID := c.Param("timesheet_id")

	var req dto.RejectTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	timesheet, err := h.validationService.Reject(c.Request.Context(), timesheetID, actorID, req.Reason)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimesheetResponse(timesheet))
}

func (h *timesheetHandler) markPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	timesheetID := c.Param("timesheet_id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	timesheet, err := h.validationService.MarkPaid(c.Request.Context(), timesheetID, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimesheetResponse(timesheet))
}

// runValidation re-runs the auto-approval evaluation for a submitted
// timesheet, e.g. after signatures were added during manual review.
func (h *timesheetHandler) runValidation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	timesheetID := c.Param("timesheet_id")

	evaluation, err := h.validationService.ProcessSubmission(c.Request.Context(), timesheetID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, evaluation)
}
