package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
)

// CatalogUseCase manages products and stock.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// List returns catalog entries matching the filter.
func (u *CatalogUseCase) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return u.products.List(ctx, filter)
}

// Get fetches one product.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// GetStock returns stock levels of a product.
func (u *CatalogUseCase) GetStock(ctx context.Context, productID int64) (*model.Stock, error) {
	return u.products.GetStock(ctx, productID)
}

// CreateProduct validates and stores a new catalog entry.
func (u *CatalogUseCase) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	return u.products.Create(ctx, p)
}

// UpdateProduct validates and persists catalog changes.
func (u *CatalogUseCase) UpdateProduct(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return u.products.Update(ctx, p)
}

// AdjustStock changes on-hand quantity by delta, e.g. on a goods receipt or a
// write-off. Quantity can never drop below what is already reserved.
func (u *CatalogUseCase) AdjustStock(ctx context.Context, productID int64, delta decimal.Decimal) (*model.Stock, error) {
	if delta.IsZero() {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.products.AdjustStock(ctx, productID, delta)
}

func validateProduct(p *model.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	if p.Name == "" || p.Category == "" {
		return domainErrors.ErrInvalidAmount
	}
	if p.Unit != model.UnitKilogram && p.Unit != model.UnitPiece {
		return domainErrors.ErrInvalidAmount
	}
	if !PositiveAmount(p.Price) || p.CostPrice.IsNegative() {
		return domainErrors.ErrInvalidAmount
	}
	return nil
}
