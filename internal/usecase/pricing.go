package usecase

import (
	"github.com/shopspring/decimal"
)

// Quote is the pricing breakdown of a basket or order.
// Total = Subtotal - Discount + DeliveryFee + VAT.
type Quote struct {
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	DeliveryFee decimal.Decimal
	VAT         decimal.Decimal
	Total       decimal.Decimal
}

// Pricer computes order totals from the configured VAT rate and flat
// delivery fee.
type Pricer struct {
	vatRate     decimal.Decimal
	deliveryFee decimal.Decimal
}

// NewPricer constructs a Pricer. The rate is a percentage, e.g. 10 for 10%.
func NewPricer(vatRate, deliveryFee decimal.Decimal) *Pricer {
	return &Pricer{vatRate: vatRate, deliveryFee: deliveryFee}
}

var hundred = decimal.NewFromInt(100)

// Price builds the quote for a subtotal and an already-resolved discount.
// vatable is the share of the subtotal carrying VAT; exempt lines stay out of
// the taxable base, and the discount is spread proportionally across both.
// The discount is capped at the subtotal so totals never go negative.
func (p *Pricer) Price(subtotal, vatable, discount decimal.Decimal) Quote {
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	discount = discount.Round(2)
	if vatable.GreaterThan(subtotal) {
		vatable = subtotal
	}

	net := subtotal.Sub(discount)
	taxable := decimal.Zero
	if subtotal.IsPositive() {
		taxable = vatable.Mul(net).Div(subtotal)
	}
	vat := taxable.Mul(p.vatRate).Div(hundred).Round(2)

	return Quote{
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: p.deliveryFee,
		VAT:         vat,
		Total:       net.Add(p.deliveryFee).Add(vat),
	}
}
