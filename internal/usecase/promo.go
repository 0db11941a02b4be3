package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
)

// PromoUseCase manages discount codes and their applicability.
type PromoUseCase struct {
	promos repository.PromoRepository
}

// NewPromoUseCase constructs PromoUseCase.
func NewPromoUseCase(promos repository.PromoRepository) *PromoUseCase {
	return &PromoUseCase{promos: promos}
}

// Create validates and stores a new code.
func (u *PromoUseCase) Create(ctx context.Context, promo *model.PromoCode) (*model.PromoCode, error) {
	promo.Code = strings.ToUpper(strings.TrimSpace(promo.Code))
	if promo.Code == "" {
		return nil, domainErrors.ErrPromoInvalid
	}
	if promo.Kind != model.PromoKindPercent && promo.Kind != model.PromoKindFixed {
		return nil, domainErrors.ErrPromoInvalid
	}
	if !PositiveAmount(promo.Value) {
		return nil, domainErrors.ErrInvalidAmount
	}
	if promo.Kind == model.PromoKindPercent && promo.Value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.promos.Create(ctx, promo)
}

// Update persists changes to an existing code.
func (u *PromoUseCase) Update(ctx context.Context, promo *model.PromoCode) error {
	return u.promos.Update(ctx, promo)
}

// List returns all codes for the back office.
func (u *PromoUseCase) List(ctx context.Context) ([]model.PromoCode, error) {
	return u.promos.List(ctx)
}

// Resolve checks a code against a subtotal and returns the matched promo with
// its discount. Inactive, expired, exhausted, or under-minimum codes fail
// with ErrPromoInvalid.
func (u *PromoUseCase) Resolve(ctx context.Context, code string, subtotal decimal.Decimal) (*model.PromoCode, decimal.Decimal, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	promo, err := u.promos.GetByCode(ctx, code)
	if err != nil {
		if err == domainErrors.ErrNotFound {
			return nil, decimal.Zero, domainErrors.ErrPromoInvalid
		}
		return nil, decimal.Zero, err
	}

	if !promo.Active {
		return nil, decimal.Zero, domainErrors.ErrPromoInvalid
	}
	if promo.ExpiresAt != nil && !promo.ExpiresAt.After(time.Now()) {
		return nil, decimal.Zero, domainErrors.ErrPromoInvalid
	}
	if promo.UsageLimit > 0 && promo.UsedCount >= promo.UsageLimit {
		return nil, decimal.Zero, domainErrors.ErrPromoInvalid
	}
	if subtotal.LessThan(promo.MinSubtotal) {
		return nil, decimal.Zero, domainErrors.ErrPromoInvalid
	}

	return promo, promo.DiscountFor(subtotal), nil
}
