package usecase

import (
	"appointment-booking/internal/data/repository"
	"appointment-booking/pkg/lock"
	"appointment-booking/pkg/utils"

	"go.uber.org/zap"
)

// Service bundles every use case behind one constructor so the wiring
// layer hands handlers a single dependency.
type Service struct {
	Availability AvailabilityService
	Pricing      PricingService
	Booking      BookingService
	Schedule     ScheduleService
	Appointment  AppointmentService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
	clock Clock,
	locker lock.SlotLocker,
	sink NotificationSink,
) *Service {
	availability := NewAvailabilityService(repo, log, clock, config.Booking.SearchWindowDays)
	pricingSrv := NewPricingService(repo, log, clock, NewRepoTaxProvider(repo.Tax))
	booking := NewBookingService(repo, log, clock, availability, pricingSrv, locker, sink)

	return &Service{
		Availability: availability,
		Pricing:      pricingSrv,
		Booking:      booking,
		Schedule:     NewScheduleService(repo, log, clock),
		Appointment:  NewAppointmentService(repo, log),
	}
}
