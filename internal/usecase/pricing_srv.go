package usecase

import (
	"context"
	"fmt"

	"appointment-booking/internal/data/entity"
	"appointment-booking/internal/data/repository"
	"appointment-booking/internal/pricing"
	"appointment-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaxRateProvider resolves the tax configuration for an appointment. A nil
// result means no tax applies. The null-object NoTaxProvider stands in when
// the tax module is not wired.
type TaxRateProvider interface {
	TaxFor(ctx context.Context, tenantID uuid.UUID, appointment *entity.Appointment) (*pricing.Tax, error)
}

type NoTaxProvider struct{}

func (NoTaxProvider) TaxFor(ctx context.Context, tenantID uuid.UUID, appointment *entity.Appointment) (*pricing.Tax, error) {
	return nil, nil
}

type repoTaxProvider struct {
	taxes repository.TaxRepository
}

func NewRepoTaxProvider(taxes repository.TaxRepository) TaxRateProvider {
	return &repoTaxProvider{taxes: taxes}
}

func (p *repoTaxProvider) TaxFor(ctx context.Context, tenantID uuid.UUID, appointment *entity.Appointment) (*pricing.Tax, error) {
	if appointment.TaxID == nil {
		return nil, nil
	}

	tax, err := p.taxes.FindByID(ctx, tenantID, *appointment.TaxID)
	if err != nil {
		return nil, err
	}
	if tax == nil || !tax.IsActive {
		return nil, nil
	}

	return &pricing.Tax{Type: tax.Type, Percentage: tax.Percentage}, nil
}

type PricingService interface {
	CalculatePricing(ctx context.Context, appointmentID uuid.UUID, subAppointmentIDs []uuid.UUID, couponCode string) (*pricing.Breakdown, error)
}

type pricingService struct {
	repo  *repository.Repository
	log   *zap.Logger
	clock Clock
	taxes TaxRateProvider
}

func NewPricingService(repo *repository.Repository, log *zap.Logger, clock Clock, taxes TaxRateProvider) PricingService {
	return &pricingService{
		repo:  repo,
		log:   log.With(zap.String("service", "pricing")),
		clock: clock,
		taxes: taxes,
	}
}

func (s *pricingService) CalculatePricing(ctx context.Context, appointmentID uuid.UUID, subAppointmentIDs []uuid.UUID, couponCode string) (*pricing.Breakdown, error) {
	tenant, ok := utils.GetTenantFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("tenant context missing")
	}

	appointment, err := s.repo.Appointment.FindByID(ctx, tenant.ID, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	if appointment == nil {
		return nil, fmt.Errorf("appointment %s not found", appointmentID.String())
	}

	subItems, err := s.resolveSubItems(ctx, tenant.ID, appointment, subAppointmentIDs)
	if err != nil {
		return nil, err
	}

	discount, err := s.resolveDiscount(ctx, tenant, couponCode)
	if err != nil {
		return nil, err
	}

	tax, err := s.taxes.TaxFor(ctx, tenant.ID, appointment)
	if err != nil {
		return nil, fmt.Errorf("resolve tax: %w", err)
	}

	breakdown := pricing.Calculate(pricing.Input{
		BasePrice: appointment.Price,
		SubItems:  subItems,
		Discount:  discount,
		Tax:       tax,
	})

	return &breakdown, nil
}

// resolveSubItems maps selected sub-appointment ids to line items. Selections
// are ignored entirely when the appointment does not enable sub-appointments;
// an id that does not belong to the appointment is an input error.
func (s *pricingService) resolveSubItems(ctx context.Context, tenantID uuid.UUID, appointment *entity.Appointment, ids []uuid.UUID) ([]pricing.LineItem, error) {
	if !appointment.HasSubAppointments || len(ids) == 0 {
		return nil, nil
	}

	subs, err := s.repo.SubAppointment.FindActiveByAppointment(ctx, tenantID, appointment.ID)
	if err != nil {
		return nil, fmt.Errorf("load sub-appointments: %w", err)
	}

	byID := make(map[uuid.UUID]*entity.SubAppointment, len(subs))
	for _, sub := range subs {
		byID[sub.ID] = sub
	}

	items := make([]pricing.LineItem, 0, len(ids))
	for _, id := range ids {
		sub, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("sub-appointment %s not found", id.String())
		}
		items = append(items, pricing.LineItem{ID: sub.ID, Name: sub.Name, Price: sub.Price})
	}

	return items, nil
}

// resolveDiscount selects the discount strategy for a coupon code. Unknown,
// inactive or expired coupons mean no discount, not a failed booking.
func (s *pricingService) resolveDiscount(ctx context.Context, tenant utils.TenantContext, couponCode string) (pricing.DiscountCalculator, error) {
	if couponCode == "" {
		return pricing.NoDiscount{}, nil
	}

	coupon, err := s.repo.Coupon.FindByCode(ctx, tenant.ID, couponCode)
	if err != nil {
		return nil, fmt.Errorf("load coupon: %w", err)
	}

	now := s.clock.Now().In(tenant.Location)
	if coupon == nil || !coupon.IsUsable(now) {
		s.log.Debug("Coupon not applicable",
			zap.String("code", couponCode),
			zap.Bool("found", coupon != nil),
		)
		return pricing.NoDiscount{}, nil
	}

	switch coupon.DiscountType {
	case entity.DiscountTypePercent:
		return pricing.PercentDiscount{Percent: coupon.Value}, nil
	case entity.DiscountTypeFixed:
		return pricing.FixedDiscount{Amount: coupon.Value}, nil
	default:
		return pricing.NoDiscount{}, nil
	}
}
