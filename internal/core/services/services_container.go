package services

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/repositories"
	portssvc "github.com/ShiftSyncHQ/shift_coordination_app/internal/core/ports/services"
	"github.com/ShiftSyncHQ/shift_coordination_app/internal/platform/config"
)

// Collaborators groups the external adapters the services depend on.
type Collaborators struct {
	Sensor     portssvc.GeolocationSensor
	Geofence   portssvc.GeofenceValidator
	Dispatcher portssvc.NotificationDispatcher
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, collab Collaborators) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Staff = NewStaffService(repos.StaffRepo)

	container.ShiftLifecycle = NewShiftLifecycleService(
		repos.ShiftRepo,
		repos.BookingRepo,
		repos.StaffRepo,
		WithLifecycleDispatcher(collab.Dispatcher),
	)

	container.Marketplace = NewMarketplaceService(
		repos.ShiftRepo,
		repos.BookingRepo,
		repos.StaffRepo,
		WithMarketplaceDispatcher(collab.Dispatcher),
	)

	container.TimesheetValidation = NewTimesheetValidationService(
		repos.TimesheetRepo,
		repos.ShiftRepo,
		repos.StaffRepo,
		WithValidationDispatcher(collab.Dispatcher),
		WithHoursTolerance(decimal.NewFromFloat(cfg.AutoApprovalHoursTolerance)),
	)

	container.Clock = NewClockService(
		repos.ShiftRepo,
		repos.BookingRepo,
		repos.TimesheetRepo,
		repos.StaffRepo,
		container.ShiftLifecycle,
		collab.Sensor,
		collab.Geofence,
		ClockSettings{
			DebounceWindow:     cfg.ClockDebounce,
			EarlyClockInWindow: cfg.EarlyClockInWindow,
			MinShiftDuration:   cfg.MinShiftDuration,
		},
		WithClockDispatcher(collab.Dispatcher),
		WithClockValidation(container.TimesheetValidation),
	)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.ShiftLifecycleSvcFacade      = (*shiftLifecycleService)(nil)
	_ portssvc.MarketplaceSvcFacade         = (*marketplaceService)(nil)
	_ portssvc.ClockSvcFacade               = (*clockService)(nil)
	_ portssvc.TimesheetValidationSvcFacade = (*timesheetValidationService)(nil)
	_ portssvc.StaffSvcFacade               = (*staffService)(nil)
)
