package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/meatmarket/internal/domain/model"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category   string
	OnlyActive bool
	InStock    bool
}

// ProductRepository describes persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	GetStock(ctx context.Context, productID int64) (*model.Stock, error)
	AdjustStock(ctx context.Context, productID int64, delta decimal.Decimal) (*model.Stock, error)
}

// BasketRepository manages the single open basket of a customer.
type BasketRepository interface {
	GetOrCreate(ctx context.Context, customerID int64) (*model.Basket, error)
	AddItem(ctx context.Context, basketID, productID int64, name string, unitPrice, quantity decimal.Decimal) (*model.BasketItem, error)
	UpdateItem(ctx context.Context, basketID, itemID int64, quantity decimal.Decimal) error
	RemoveItem(ctx context.Context, basketID, itemID int64) error
	Clear(ctx context.Context, basketID int64) error
}
