package repository

import (
	"context"
	"fmt"

	"appointment-booking/internal/data/entity"
	"appointment-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AppointmentRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Appointment, error)
	FindAllActive(ctx context.Context, tenantID uuid.UUID) ([]*entity.Appointment, error)
}

type appointmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAppointmentRepository(db database.PgxIface, log *zap.Logger) AppointmentRepository {
	return &appointmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "appointment")),
	}
}

func (r *appointmentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Appointment, error) {
	query := `
		SELECT id, tenant_id, name, price, tax_id, has_sub_appointments, person_count, is_active, created_at, updated_at
		FROM appointments
		WHERE tenant_id = $1 AND id = $2
	`

	var appointment entity.Appointment
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&appointment.ID,
		&appointment.TenantID,
		&appointment.Name,
		&appointment.Price,
		&appointment.TaxID,
		&appointment.HasSubAppointments,
		&appointment.PersonCount,
		&appointment.IsActive,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find appointment by ID",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
		)
		return nil, fmt.Errorf("find appointment by ID %s: %w", id.String(), err)
	}

	return &appointment, nil
}

func (r *appointmentRepository) FindAllActive(ctx context.Context, tenantID uuid.UUID) ([]*entity.Appointment, error) {
	query := `
		SELECT id, tenant_id, name, price, tax_id, has_sub_appointments, person_count, is_active, created_at, updated_at
		FROM appointments
		WHERE tenant_id = $1 AND is_active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		r.log.Error("Failed to find appointments",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
		)
		return nil, fmt.Errorf("find appointments for tenant %s: %w", tenantID.String(), err)
	}
	defer rows.Close()

	var appointments []*entity.Appointment
	for rows.Next() {
		var appointment entity.Appointment
		err := rows.Scan(
			&appointment.ID,
			&appointment.TenantID,
			&appointment.Name,
			&appointment.Price,
			&appointment.TaxID,
			&appointment.HasSubAppointments,
			&appointment.PersonCount,
			&appointment.IsActive,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan appointment row", zap.Error(err))
			return nil, fmt.Errorf("scan appointment row: %w", err)
		}
		appointments = append(appointments, &appointment)
	}

	return appointments, nil
}
