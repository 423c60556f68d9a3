package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"appointment-booking/internal/data/entity"
	"appointment-booking/internal/timeslot"
	"appointment-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking, items []*entity.BookingItem) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Booking, error)
	FindItemsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingItem, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// Business queries
	FindActiveByDate(ctx context.Context, tenantID uuid.UUID, date time.Time, appointmentID *uuid.UUID) ([]*entity.Booking, error)
	CountActiveAtSlot(ctx context.Context, tenantID uuid.UUID, date time.Time, timeRange timeslot.Range, appointmentID, excludeBookingID *uuid.UUID) (int64, error)
	UpdateSchedule(ctx context.Context, tenantID, id uuid.UUID, date time.Time, timeRange timeslot.Range, allowMultiple bool) error
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status entity.BookingStatus) error
	UpdateCancel(ctx context.Context, tenantID, id uuid.UUID, reason *string) error
	UpdatePayment(ctx context.Context, tenantID, id uuid.UUID, paymentStatus entity.PaymentStatus, transactionID *string) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, tenant_id, booking_ref, appointment_id, customer_name, customer_email,
	booking_date, time_slot, allow_multiple, base_price, sub_item_total, subtotal, discount, tax_amount,
	total_price, status, payment_status, transaction_id, cancel_reason, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	var rangeStr string

	err := row.Scan(
		&booking.ID,
		&booking.TenantID,
		&booking.BookingRef,
		&booking.AppointmentID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.BookingDate,
		&rangeStr,
		&booking.AllowMultiple,
		&booking.BasePrice,
		&booking.SubItemTotal,
		&booking.Subtotal,
		&booking.Discount,
		&booking.TaxAmount,
		&booking.TotalPrice,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.TransactionID,
		&booking.CancelReason,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.TimeRange, err = timeslot.ParseRange(rangeStr)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", booking.ID.String(), err)
	}

	return &booking, nil
}

// Create persists the booking and its sub-appointment item rows in one
// transaction. A violation of the active-slot unique index is reported as an
// "already booked" error so two racing requests cannot both succeed.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking, items []*entity.BookingItem) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bookings (id, tenant_id, booking_ref, appointment_id, customer_name, customer_email,
				booking_date, time_slot, allow_multiple, base_price, sub_item_total, subtotal, discount, tax_amount,
				total_price, status, payment_status, transaction_id, cancel_reason, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		`

		_, err := tx.Exec(ctx, query,
			booking.ID,
			booking.TenantID,
			booking.BookingRef,
			booking.AppointmentID,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.BookingDate,
			booking.TimeRange.String(),
			booking.AllowMultiple,
			booking.BasePrice,
			booking.SubItemTotal,
			booking.Subtotal,
			booking.Discount,
			booking.TaxAmount,
			booking.TotalPrice,
			booking.Status,
			booking.PaymentStatus,
			booking.TransactionID,
			booking.CancelReason,
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert booking %s: %w", booking.BookingRef, err)
		}

		for _, item := range items {
			itemQuery := `
				INSERT INTO booking_items (id, booking_id, sub_appointment_id, name, price, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`
			_, err := tx.Exec(ctx, itemQuery,
				item.ID,
				item.BookingID,
				item.SubAppointmentID,
				item.Name,
				item.Price,
				item.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert booking item %s: %w", item.SubAppointmentID.String(), err)
			}
		}

		return nil
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.log.Warn("Booking insert lost slot race",
				zap.String("booking_ref", booking.BookingRef),
				zap.String("time_slot", booking.TimeRange.String()),
			)
			return fmt.Errorf("slot %s on %s is already booked",
				booking.TimeRange.String(), booking.BookingDate.Format(timeslot.DateFormat))
		}

		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
			zap.String("appointment_id", booking.AppointmentID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingRef, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE tenant_id = $1 AND id = $2`, bookingColumns)

	booking, err := scanBooking(r.db.QueryRow(ctx, query, tenantID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindItemsByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingItem, error) {
	query := `
		SELECT id, booking_id, sub_appointment_id, name, price, created_at
		FROM booking_items
		WHERE booking_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking items",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find items for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var items []*entity.BookingItem
	for rows.Next() {
		var item entity.BookingItem
		err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.SubAppointmentID,
			&item.Name,
			&item.Price,
			&item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking item row", zap.Error(err))
			return nil, fmt.Errorf("scan booking item row: %w", err)
		}
		items = append(items, &item)
	}

	return items, nil
}

func (r *bookingRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, bookingColumns)

	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list bookings for tenant %s: %w", tenantID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE tenant_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
		)
		return 0, fmt.Errorf("count bookings for tenant %s: %w", tenantID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindActiveByDate(ctx context.Context, tenantID uuid.UUID, date time.Time, appointmentID *uuid.UUID) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE tenant_id = $1 AND booking_date = $2
		  AND status IN ('pending', 'confirmed', 'complete')
		  AND ($3::uuid IS NULL OR appointment_id = $3)
		ORDER BY time_slot
	`, bookingColumns)

	rows, err := r.db.Query(ctx, query, tenantID, date, appointmentID)
	if err != nil {
		r.log.Error("Failed to find active bookings by date",
			zap.Error(err),
			zap.String("tenant_id", tenantID.String()),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find active bookings on %s: %w", date.Format(timeslot.DateFormat), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountActiveAtSlot(ctx context.Context, tenantID uuid.UUID, date time.Time, timeRange timeslot.Range, appointmentID, excludeBookingID *uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE tenant_id = $1 AND booking_date = $2 AND time_slot = $3
		  AND status IN ('pending', 'confirmed', 'complete')
		  AND ($4::uuid IS NULL OR appointment_id = $4)
		  AND ($5::uuid IS NULL OR id <> $5)
	`

	var count int64
	err := r.db.QueryRow(ctx, query, tenantID, date, timeRange.String(), appointmentID, excludeBookingID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count active bookings at slot",
			zap.Error(err),
			zap.Time("date", date),
			zap.String("time_slot", timeRange.String()),
		)
		return 0, fmt.Errorf("count active bookings at %s %s: %w",
			date.Format(timeslot.DateFormat), timeRange.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateSchedule(ctx context.Context, tenantID, id uuid.UUID, date time.Time, timeRange timeslot.Range, allowMultiple bool) error {
	query := `
		UPDATE bookings SET booking_date = $3, time_slot = $4, allow_multiple = $5, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.Exec(ctx, query, tenantID, id, date, timeRange.String(), allowMultiple)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("slot %s on %s is already booked",
				timeRange.String(), date.Format(timeslot.DateFormat))
		}

		r.log.Error("Failed to reschedule booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("reschedule booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $3, updated_at = NOW() WHERE tenant_id = $1 AND id = $2`

	result, err := r.db.Exec(ctx, query, tenantID, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) UpdateCancel(ctx context.Context, tenantID, id uuid.UUID, reason *string) error {
	query := `
		UPDATE bookings SET status = 'cancelled', cancel_reason = $3, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.Exec(ctx, query, tenantID, id, reason)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("cancel booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) UpdatePayment(ctx context.Context, tenantID, id uuid.UUID, paymentStatus entity.PaymentStatus, transactionID *string) error {
	query := `
		UPDATE bookings SET payment_status = $3, transaction_id = COALESCE($4, transaction_id), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.Exec(ctx, query, tenantID, id, paymentStatus, transactionID)
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("payment_status", string(paymentStatus)),
		)
		return fmt.Errorf("update booking %s payment status to %s: %w", id.String(), string(paymentStatus), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}
