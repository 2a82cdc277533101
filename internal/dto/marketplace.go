package dto

import (
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// --- Marketplace DTOs ---

// MarketplaceResponse groups the shifts a staff member may claim, urgent
// first.
type MarketplaceResponse struct {
	Urgent  []ShiftResponse `json:"urgent"`
	Regular []ShiftResponse `json:"regular"`
}

// ToMarketplaceResponse converts the urgent/regular shift split to DTO.
func ToMarketplaceResponse(urgent, regular []domain.Shift) MarketplaceResponse {
	u := make([]ShiftResponse, len(urgent))
	for i := range urgent {
		u[i] = ToShiftResponse(&urgent[i])
	}
	r := make([]ShiftResponse, len(regular))
	for i := range regular {
		r[i] = ToShiftResponse(&regular[i])
	}
	return MarketplaceResponse{Urgent: u, Regular: r}
}
