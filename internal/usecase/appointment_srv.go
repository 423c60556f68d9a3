package usecase

import (
	"context"
	"fmt"

	"appointment-booking/internal/data/repository"
	"appointment-booking/internal/dto/response"
	"appointment-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AppointmentService interface {
	ListAppointments(ctx context.Context) ([]response.AppointmentResponse, error)
	GetAppointment(ctx context.Context, appointmentID string) (*response.AppointmentResponse, error)
}

type appointmentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAppointmentService(repo *repository.Repository, log *zap.Logger) AppointmentService {
	return &appointmentService{
		repo: repo,
		log:  log.With(zap.String("service", "appointment")),
	}
}

func (s *appointmentService) ListAppointments(ctx context.Context) ([]response.AppointmentResponse, error) {
	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("tenant context missing")
	}

	appointments, err := s.repo.Appointment.FindAllActive(ctx, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	responses := make([]response.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		responses[i] = response.AppointmentToResponse(appointment, nil)
	}

	return responses, nil
}

func (s *appointmentService) GetAppointment(ctx context.Context, appointmentID string) (*response.AppointmentResponse, error) {
	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("tenant context missing")
	}

	id, err := uuid.Parse(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}

	appointment, err := s.repo.Appointment.FindByID(ctx, tenant.ID, id)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment %s not found", appointmentID)
	}

	subAppointments, err := s.repo.SubAppointment.FindActiveByAppointment(ctx, tenant.ID, id)
	if err != nil {
		return nil, fmt.Errorf("load sub-appointments: %w", err)
	}

	resp := response.AppointmentToResponse(appointment, subAppointments)
	return &resp, nil
}
