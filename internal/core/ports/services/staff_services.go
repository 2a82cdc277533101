package services

import (
	"context"

	"github.com/ShiftSyncHQ/shift_coordination_app/internal/core/domain"
)

// StaffSvcFacade exposes the staff profile operations this core owns:
// GPS consent and the availability calendar that feeds marketplace matching.
type StaffSvcFacade interface {
	GetStaffByID(ctx context.Context, staffID string) (*domain.Staff, error)
	GetStaffByUserID(ctx context.Context, userID string) (*domain.Staff, error)
	GrantGPSConsent(ctx context.Context, staffID, actorID string) (*domain.Staff, error)
	SetAvailability(ctx context.Context, staffID string, availability domain.Availability, actorID string) (*domain.Staff, error)
}
