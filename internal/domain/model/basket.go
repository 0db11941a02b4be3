package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Basket is the single open cart of a customer.
type Basket struct {
	ID         int64
	CustomerID int64
	Items      []BasketItem
	UpdatedAt  time.Time
}

// BasketItem snapshots the product price at the moment it was added.
type BasketItem struct {
	ID        int64
	BasketID  int64
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
}

// Subtotal sums item price times quantity over the basket.
func (b Basket) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.UnitPrice.Mul(item.Quantity))
	}
	return total
}
