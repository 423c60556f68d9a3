// Package pricing computes booking price breakdowns. It is pure: all lookups
// (appointment, sub-appointments, coupon, tax) happen in the caller.
package pricing

import (
	"math"

	"github.com/google/uuid"
)

type TaxType string

const (
	TaxExclusive TaxType = "exclusive"
	TaxInclusive TaxType = "inclusive"
)

// Tax is the resolved tax configuration for an appointment. A nil *Tax means
// no tax applies.
type Tax struct {
	Type       TaxType
	Percentage float64
}

// LineItem is one selected sub-appointment.
type LineItem struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
}

type Input struct {
	BasePrice float64
	SubItems  []LineItem
	Discount  DiscountCalculator
	Tax       *Tax
}

// Breakdown is the itemized pricing result. All monetary fields are rounded
// half-up to 2 decimals; intermediates are kept at full precision.
type Breakdown struct {
	BasePrice     float64    `json:"base_price"`
	SubItems      []LineItem `json:"sub_items,omitempty"`
	SubItemTotal  float64    `json:"sub_item_total"`
	Subtotal      float64    `json:"subtotal"`
	Discount      float64    `json:"discount"`
	TaxType       TaxType    `json:"tax_type,omitempty"`
	TaxPercentage float64    `json:"tax_percentage"`
	TaxAmount     float64    `json:"tax_amount"`
	Total         float64    `json:"total"`
}

// Calculate runs the fixed computation order:
// sub-item total, subtotal, discount, tax, total.
//
// Exclusive tax is added on top of the discounted subtotal; inclusive tax is
// extracted out of it (the price already contains the tax, the total does not
// change).
func Calculate(in Input) Breakdown {
	discounter := in.Discount
	if discounter == nil {
		discounter = NoDiscount{}
	}

	subItemTotal := 0.0
	for _, item := range in.SubItems {
		subItemTotal += item.Price
	}

	subtotal := in.BasePrice + subItemTotal

	discount := discounter.Discount(subtotal)
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}

	afterDiscount := subtotal - discount

	var taxAmount, total float64
	var taxType TaxType
	var taxPercentage float64

	if in.Tax != nil && in.Tax.Percentage > 0 {
		taxType = in.Tax.Type
		taxPercentage = in.Tax.Percentage

		switch in.Tax.Type {
		case TaxInclusive:
			taxAmount = afterDiscount * taxPercentage / (100 + taxPercentage)
			total = afterDiscount
		default:
			taxAmount = afterDiscount * taxPercentage / 100
			total = afterDiscount + taxAmount
		}
	} else {
		total = afterDiscount
	}

	return Breakdown{
		BasePrice:     RoundMoney(in.BasePrice),
		SubItems:      in.SubItems,
		SubItemTotal:  RoundMoney(subItemTotal),
		Subtotal:      RoundMoney(subtotal),
		Discount:      RoundMoney(discount),
		TaxType:       taxType,
		TaxPercentage: taxPercentage,
		TaxAmount:     RoundMoney(taxAmount),
		Total:         RoundMoney(total),
	}
}

// RoundMoney rounds half-up to 2 decimal places.
func RoundMoney(value float64) float64 {
	return math.Floor(value*100+0.5) / 100
}
