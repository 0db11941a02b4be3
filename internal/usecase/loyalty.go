package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
)

// pointsPerUnit is how many points convert into one unit of wallet credit.
const pointsPerUnit = 100

// LoyaltySummary is the customer-facing view of a points account.
type LoyaltySummary struct {
	Points          int64
	LifetimePoints  int64
	Tier            model.LoyaltyTier
	DiscountPercent decimal.Decimal
}

// LoyaltyUseCase exposes points balances and redemption. Accrual happens when
// an order is delivered.
type LoyaltyUseCase struct {
	loyalty repository.LoyaltyRepository
	wallets repository.WalletRepository
}

// NewLoyaltyUseCase constructs LoyaltyUseCase.
func NewLoyaltyUseCase(loyalty repository.LoyaltyRepository, wallets repository.WalletRepository) *LoyaltyUseCase {
	return &LoyaltyUseCase{loyalty: loyalty, wallets: wallets}
}

// Summary returns the points balance with the derived tier and its discount.
func (u *LoyaltyUseCase) Summary(ctx context.Context, customerID int64) (*LoyaltySummary, error) {
	account, err := u.loyalty.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	tier := account.Tier()
	return &LoyaltySummary{
		Points:          account.Points,
		LifetimePoints:  account.LifetimePoints,
		Tier:            tier,
		DiscountPercent: model.TierDiscountPercent(tier),
	}, nil
}

// Redeem converts points into wallet credit in whole blocks of pointsPerUnit.
func (u *LoyaltyUseCase) Redeem(ctx context.Context, customerID, points int64) (*model.Wallet, error) {
	if points <= 0 || points%pointsPerUnit != 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	credit := decimal.NewFromInt(points / pointsPerUnit)
	if err := u.loyalty.Redeem(ctx, customerID, points, credit); err != nil {
		return nil, err
	}
	return u.wallets.Get(ctx, customerID)
}
