package repository

import (
	"context"
	"fmt"

	"appointment-booking/internal/data/entity"
	"appointment-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SubAppointmentRepository interface {
	FindActiveByAppointment(ctx context.Context, tenantID, appointmentID uuid.UUID) ([]*entity.SubAppointment, error)
}

type subAppointmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSubAppointmentRepository(db database.PgxIface, log *zap.Logger) SubAppointmentRepository {
	return &subAppointmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "sub_appointment")),
	}
}

func (r *subAppointmentRepository) FindActiveByAppointment(ctx context.Context, tenantID, appointmentID uuid.UUID) ([]*entity.SubAppointment, error) {
	query := `
		SELECT id, tenant_id, appointment_id, name, price, is_active, created_at, updated_at
		FROM sub_appointments
		WHERE tenant_id = $1 AND appointment_id = $2 AND is_active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, tenantID, appointmentID)
	if err != nil {
		r.log.Error("Failed to find sub-appointments",
			zap.Error(err),
			zap.String("appointment_id", appointmentID.String()),
		)
		return nil, fmt.Errorf("find sub-appointments for %s: %w", appointmentID.String(), err)
	}
	defer rows.Close()

	var subAppointments []*entity.SubAppointment
	for rows.Next() {
		var sub entity.SubAppointment
		err := rows.Scan(
			&sub.ID,
			&sub.TenantID,
			&sub.AppointmentID,
			&sub.Name,
			&sub.Price,
			&sub.IsActive,
			&sub.CreatedAt,
			&sub.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan sub-appointment row", zap.Error(err))
			return nil, fmt.Errorf("scan sub-appointment row: %w", err)
		}
		subAppointments = append(subAppointments, &sub)
	}

	return subAppointments, nil
}
