package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromoKind selects how a promo code reduces the order total.
type PromoKind string

const (
	PromoKindPercent PromoKind = "percent"
	PromoKindFixed   PromoKind = "fixed"
)

// PromoCode is a discount rule subject to usage limits and expiry.
type PromoCode struct {
	ID          int64
	Code        string
	Kind        PromoKind
	Value       decimal.Decimal
	MinSubtotal decimal.Decimal
	UsageLimit  int
	UsedCount   int
	ExpiresAt   *time.Time
	Active      bool
}

// DiscountFor computes the discount the code grants on a subtotal. The result
// never exceeds the subtotal.
func (p PromoCode) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch p.Kind {
	case PromoKindPercent:
		discount = subtotal.Mul(p.Value).Div(decimal.NewFromInt(100))
	case PromoKindFixed:
		discount = p.Value
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}
