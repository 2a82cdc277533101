package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/dto"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/middleware"
)

// marketplaceHandler handles the staff-facing marketplace endpoints. The
// acting staff member is always resolved from the authenticated user, never
// from the request body.
type marketplaceHandler struct {
	marketplaceService portssvc.MarketplaceSvcFacade
	staffService       portssvc.StaffSvcFacade
}

func newMarketplaceHandler(ms portssvc.MarketplaceSvcFacade, ss portssvc.StaffSvcFacade) *marketplaceHandler {
	return &marketplaceHandler{marketplaceService: ms, staffService: ss}
}

// registerMarketplaceRoutes registers routes related to the shift marketplace.
func registerMarketplaceRoutes(rg *gin.RouterGroup, marketplaceService portssvc.MarketplaceSvcFacade, staffService portssvc.StaffSvcFacade) {
	h := newMarketplaceHandler(marketplaceService, staffService)

	marketplace := rg.Group("/marketplace")
	{
		marketplace.GET("/shifts", h.availableShifts)
		marketplace.POST("/shifts/:shift_id/accept", h.acceptShift)
		marketplace.GET("/bookings", h.myBookings)
	}
}

// resolveStaff maps the authenticated user onto their staff profile.
func (h *marketplaceHandler) resolveStaff(c *gin.Context) (string, bool) {
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

func (h *marketplaceHandler) availableShifts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	staffID, ok := h.resolveStaff(c)
	if !ok {
		return
	}

	shifts, err := h.marketplaceService.AvailableShifts(c.Request.Context(), staffID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMarketplaceResponse(shifts.Urgent, shifts.Regular))
}

func (h *marketplaceHandler) myBookings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	staffID, ok := h.resolveStaff(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset parameter"})
		return
	}

	bookings, err := h.marketplaceService.StaffBookings(c.Request.Context(), staffID, limit, offset)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	responses := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, dto.ToBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": responses})
}

func (h *marketplaceHandler) acceptShift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shiftID := c.Param("shift_id")

	staffID, ok := h.resolveStaff(c)
	if !ok {
		return
	}

	shift, err := h.marketplaceService.AcceptShift(c.Request.Context(), shiftID, staffID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToShiftResponse(shift))
}
