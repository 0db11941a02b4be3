package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit describes how a product is sold.
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitPiece    Unit = "piece"
)

// Product is a catalog entry. CostPrice is what the shop pays per unit and
// feeds the P&L; Price is what the customer pays.
type Product struct {
	ID        int64
	Name      string
	Category  string
	Unit      Unit
	Price     decimal.Decimal
	CostPrice decimal.Decimal
	VATable   bool
	Active    bool
	CreatedAt time.Time
}

// Stock tracks on-hand and reserved quantity for a product.
type Stock struct {
	ProductID int64
	Quantity  decimal.Decimal
	Reserved  decimal.Decimal
}

// Available is the quantity that can still be sold.
func (s Stock) Available() decimal.Decimal {
	return s.Quantity.Sub(s.Reserved)
}
