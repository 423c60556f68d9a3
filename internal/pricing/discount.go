package pricing

// DiscountCalculator is the coupon extension point. Implementations return
// the discount amount for a given subtotal; Calculate clamps the result to
// [0, subtotal].
type DiscountCalculator interface {
	Discount(subtotal float64) float64
}

// NoDiscount is the default when no coupon applies.
type NoDiscount struct{}

func (NoDiscount) Discount(subtotal float64) float64 { return 0 }

// PercentDiscount takes a percentage off the subtotal.
type PercentDiscount struct {
	Percent float64
}

func (d PercentDiscount) Discount(subtotal float64) float64 {
	if d.Percent <= 0 {
		return 0
	}
	return subtotal * d.Percent / 100
}

// FixedDiscount takes a flat amount off the subtotal.
type FixedDiscount struct {
	Amount float64
}

func (d FixedDiscount) Discount(subtotal float64) float64 {
	if d.Amount <= 0 {
		return 0
	}
	return d.Amount
}
