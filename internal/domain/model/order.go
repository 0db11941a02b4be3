package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod selects how an order is paid.
type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "wallet"
	PaymentMethodCOD    PaymentMethod = "cod"
)

// PaymentStatus tracks the state of a payment record.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Order is a customer purchase with its pricing breakdown.
// Invariant: Total = Subtotal - Discount + DeliveryFee + VAT.
type Order struct {
	ID          int64
	Number      string
	CustomerID  int64
	Status      OrderStatus
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	DeliveryFee decimal.Decimal
	VAT         decimal.Decimal
	Total       decimal.Decimal
	PromoCode   string
	Address     string
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderItem snapshots price and cost at purchase time so later catalog edits
// do not rewrite history or the P&L.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal
	Quantity  decimal.Decimal
}

// LineTotal is price times quantity for the item.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(i.Quantity)
}

// Payment records how an order was (or will be) paid.
type Payment struct {
	ID         int64
	OrderID    int64
	Method     PaymentMethod
	Status     PaymentStatus
	Amount     decimal.Decimal
	GatewayRef string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
