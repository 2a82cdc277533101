package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// --- Shift DTOs ---

// CreateShiftRequest defines data for posting a new shift.
type CreateShiftRequest struct {
	AgencyID           string          `json:"agencyID" binding:"required"`
	ClientID           string          `json:"clientID" binding:"required"`
	RoleRequired       string          `json:"roleRequired" binding:"required"`
	Date               time.Time       `json:"date" binding:"required"`
	StartTime          string          `json:"startTime" binding:"required,hhmm"`
	EndTime            string          `json:"endTime" binding:"required,hhmm"`
	DurationHours      decimal.Decimal `json:"durationHours" binding:"required"`
	PayRate            decimal.Decimal `json:"payRate" binding:"required"`
	ChargeRate         decimal.Decimal `json:"chargeRate" binding:"required"`
	Urgency            string          `json:"urgency" binding:"omitempty,oneof=normal urgent critical"`
	MarketplaceVisible bool            `json:"marketplaceVisible"`
	// Method records who created the shift: an operator or the AI-extraction
	// collaborator.
	Method string `json:"method" binding:"omitempty,oneof=operator_assign ai_extraction"`
}

// AssignShiftRequest assigns a staff member to an open shift.
type AssignShiftRequest struct {
	StaffID string `json:"staffID" binding:"required"`
}

// ConfirmShiftRequest confirms an assigned shift.
type ConfirmShiftRequest struct {
	Method string `json:"method" binding:"omitempty,oneof=staff_confirm phone email"`
}

// CancelShiftRequest cancels a shift with a reason.
type CancelShiftRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// JourneyEntryResponse is one journey-log entry.
type JourneyEntryResponse struct {
	State     string    `json:"state"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actorID"`
	Method    string    `json:"method"`
	Notes     string    `json:"notes,omitempty"`
}

// ShiftResponse defines data returned for a shift.
type ShiftResponse struct {
	ShiftID            string                 `json:"shiftID"`
	AgencyID           string                 `json:"agencyID"`
	ClientID           string                 `json:"clientID"`
	RoleRequired       string                 `json:"roleRequired"`
	Date               time.Time              `json:"date"`
	StartTime          string                 `json:"startTime"`
	EndTime            string                 `json:"endTime"`
	DurationHours      decimal.Decimal        `json:"durationHours"`
	PayRate            decimal.Decimal        `json:"payRate"`
	ChargeRate         decimal.Decimal        `json:"chargeRate"`
	Status             string                 `json:"status"`
	AssignedStaffID    *string                `json:"assignedStaffID,omitempty"`
	MarketplaceVisible bool                   `json:"marketplaceVisible"`
	Urgency            string                 `json:"urgency"`
	FinancialLocked    bool                   `json:"financialLocked"`
	CancellationReason string                 `json:"cancellationReason,omitempty"`
	JourneyLog         []JourneyEntryResponse `json:"journeyLog"`
	CreatedAt          time.Time              `json:"createdAt"`
}

// ToShiftResponse converts domain.Shift to DTO.
func ToShiftResponse(s *domain.Shift) ShiftResponse {
	journey := make([]JourneyEntryResponse, len(s.JourneyLog))
	for i, e := range s.JourneyLog {
		journey[i] = JourneyEntryResponse{
			State:     string(e.State),
			Timestamp: e.Timestamp,
			ActorID:   e.ActorID,
			Method:    e.Method,
			Notes:     e.Notes,
		}
	}
	return ShiftResponse{
		ShiftID:            s.ShiftID,
		AgencyID:           s.AgencyID,
		ClientID:           s.ClientID,
		RoleRequired:       s.RoleRequired,
		Date:               s.Date,
		StartTime:          s.StartTime,
		EndTime:            s.EndTime,
		DurationHours:      s.DurationHours,
		PayRate:            s.PayRate,
		ChargeRate:         s.ChargeRate,
		Status:             string(s.Status),
		AssignedStaffID:    s.AssignedStaffID,
		MarketplaceVisible: s.MarketplaceVisible,
		Urgency:            string(s.Urgency),
		FinancialLocked:    s.FinancialLocked,
		CancellationReason: s.CancellationReason,
		JourneyLog:         journey,
		CreatedAt:          s.CreatedAt,
	}
}

// ListShiftsResponse wraps a page of shifts with the next cursor.
type ListShiftsResponse struct {
	Shifts        []ShiftResponse `json:"shifts"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
}

// ToListShiftsResponse converts a slice of domain.Shift to DTO.
func ToListShiftsResponse(shifts []domain.Shift, nextToken string) ListShiftsResponse {
	list := make([]ShiftResponse, len(shifts))
	for i := range shifts {
		list[i] = ToShiftResponse(&shifts[i])
	}
	return ListShiftsResponse{Shifts: list, NextPageToken: nextToken}
}
