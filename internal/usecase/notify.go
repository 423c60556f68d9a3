package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventBookingCreated     = "booking_created"
	EventBookingConfirmed   = "booking_confirmed"
	EventBookingRescheduled = "booking_rescheduled"
	EventBookingCancelled   = "booking_cancelled"
	EventBookingCompleted   = "booking_completed"
	EventBookingRejected    = "booking_rejected"
	EventPaymentUpdated     = "payment_updated"
)

// NotificationSink is fired on every booking transition. Delivery (email,
// webhook) lives outside this module; the default sink only logs.
type NotificationSink interface {
	Notify(ctx context.Context, bookingID uuid.UUID, event string)
}

type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.With(zap.String("sink", "log"))}
}

func (s *LogSink) Notify(ctx context.Context, bookingID uuid.UUID, event string) {
	s.log.Info("Booking event",
		zap.String("booking_id", bookingID.String()),
		zap.String("event", event),
	)
}
