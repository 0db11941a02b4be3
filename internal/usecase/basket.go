package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
)

// BasketUseCase manages the customer's open basket.
type BasketUseCase struct {
	baskets  repository.BasketRepository
	products repository.ProductRepository
	loyalty  repository.LoyaltyRepository
	promos   *PromoUseCase
	pricer   *Pricer
}

// NewBasketUseCase constructs BasketUseCase.
func NewBasketUseCase(baskets repository.BasketRepository, products repository.ProductRepository, loyalty repository.LoyaltyRepository, promos *PromoUseCase, pricer *Pricer) *BasketUseCase {
	return &BasketUseCase{baskets: baskets, products: products, loyalty: loyalty, promos: promos, pricer: pricer}
}

// Get returns the open basket, creating it on first touch.
func (u *BasketUseCase) Get(ctx context.Context, customerID int64) (*model.Basket, error) {
	return u.baskets.GetOrCreate(ctx, customerID)
}

// AddItem puts a product into the basket, snapshotting its current price.
func (u *BasketUseCase) AddItem(ctx context.Context, customerID, productID int64, quantity decimal.Decimal) (*model.BasketItem, error) {
	if !PositiveAmount(quantity) {
		return nil, domainErrors.ErrInvalidAmount
	}

	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, domainErrors.ErrProductInactive
	}

	basket, err := u.baskets.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return u.baskets.AddItem(ctx, basket.ID, productID, product.Name, product.Price, quantity)
}

// UpdateItem changes the quantity of a basket line; zero removes it.
func (u *BasketUseCase) UpdateItem(ctx context.Context, customerID, itemID int64, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return domainErrors.ErrInvalidAmount
	}

	basket, err := u.baskets.GetOrCreate(ctx, customerID)
	if err != nil {
		return err
	}

	if quantity.IsZero() {
		return u.baskets.RemoveItem(ctx, basket.ID, itemID)
	}
	return u.baskets.UpdateItem(ctx, basket.ID, itemID, quantity)
}

// RemoveItem deletes a basket line.
func (u *BasketUseCase) RemoveItem(ctx context.Context, customerID, itemID int64) error {
	basket, err := u.baskets.GetOrCreate(ctx, customerID)
	if err != nil {
		return err
	}
	return u.baskets.RemoveItem(ctx, basket.ID, itemID)
}

// Quote previews checkout totals for the current basket, including the
// loyalty tier discount and an optional promo code.
func (u *BasketUseCase) Quote(ctx context.Context, customerID int64, promoCode string) (*model.Basket, Quote, error) {
	basket, err := u.baskets.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, Quote{}, err
	}
	if len(basket.Items) == 0 {
		return nil, Quote{}, domainErrors.ErrEmptyBasket
	}

	subtotal := basket.Subtotal()
	vatable, err := u.vatableSubtotal(ctx, basket)
	if err != nil {
		return nil, Quote{}, err
	}
	discount, err := u.resolveDiscount(ctx, customerID, subtotal, promoCode)
	if err != nil {
		return nil, Quote{}, err
	}

	return basket, u.pricer.Price(subtotal, vatable, discount), nil
}

// vatableSubtotal sums the basket lines whose product carries VAT.
func (u *BasketUseCase) vatableSubtotal(ctx context.Context, basket *model.Basket) (decimal.Decimal, error) {
	vatable := decimal.Zero
	for _, line := range basket.Items {
		product, err := u.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return decimal.Zero, err
		}
		if product.VATable {
			vatable = vatable.Add(line.UnitPrice.Mul(line.Quantity))
		}
	}
	return vatable, nil
}

// resolveDiscount stacks the loyalty tier discount with a promo code.
func (u *BasketUseCase) resolveDiscount(ctx context.Context, customerID int64, subtotal decimal.Decimal, promoCode string) (decimal.Decimal, error) {
	account, err := u.loyalty.Get(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	discount := subtotal.Mul(model.TierDiscountPercent(account.Tier())).Div(hundred)

	if promoCode != "" {
		_, promoDiscount, err := u.promos.Resolve(ctx, promoCode, subtotal)
		if err != nil {
			return decimal.Zero, err
		}
		discount = discount.Add(promoDiscount)
	}

	return discount, nil
}
