package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/dto"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/middleware"
)

// shiftHandler handles HTTP requests related to shifts.
type shiftHandler struct {
	lifecycleService portssvc.ShiftLifecycleSvcFacade
}

// newShiftHandler creates a new shiftHandler.
func newShiftHandler(ls portssvc.ShiftLifecycleSvcFacade) *shiftHandler {
	return &shiftHandler{lifecycleService: ls}
}

// registerShiftRoutes registers routes related to shifts.
func registerShiftRoutes(rg *gin.RouterGroup, lifecycleService portssvc.ShiftLifecycleSvcFacade) {
	h := newShiftHandler(lifecycleService)

	shifts := rg.Group("/shifts")
	{
		shifts.POST("", h.createShift)
		shifts.GET("", h.listShifts)
		shifts.GET("/:shift_id", h.getShift)
		shifts.POST("/:shift_id/assign", h.assignShift)
		shifts.POST("/:shift_id/confirm", h.confirmShift)
		shifts.POST("/:shift_id/cancel", h.cancelShift)
	}
}

func (h *shiftHandler) createShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateShift", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	shift, err := h.lifecycleService.CreateShift(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToShiftResponse(shift))
}

func (h *shiftHandler) listShifts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	agencyID := c.Query("agency_id")
	if agencyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "agency_id query parameter is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	pageToken := c.Query("page_token")

	shifts, nextToken, err := h.lifecycleService.ListShifts(c.Request.Context(), agencyID, pageToken, limit)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListShiftsResponse(shifts, nextToken))
}

func (h *shiftHandler) getShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shiftID := c.Param("shift_id")

	shift, err := h.lifecycleService.GetShiftByID(c.Request.Context(), shiftID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

func (h *shiftHandler) assignShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shiftID := c.Param("shift_id")

	var req dto.AssignShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	shift, err := h.lifecycleService.AssignShift(c.Request.Context(), shiftID, req.StaffID, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

func (h *shiftHandler) confirmShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shiftID := c.Param("shift_id")

	var req dto.ConfirmShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	shift, err := h.lifecycleService.ConfirmShift(c.Request.Context(), shiftID, actorID, req.Method)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}

func (h *shiftHandler) cancelShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shiftID := c.Param("shift_id")

	var req dto.CancelShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	shift, err := h.lifecycleService.CancelShift(c.Request.Context(), shiftID, req.Reason, actorID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}
