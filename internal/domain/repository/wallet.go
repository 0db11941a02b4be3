package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/meatmarket/internal/domain/model"
)

// WalletRepository manages prepaid balances.
type WalletRepository interface {
	Get(ctx context.Context, customerID int64) (*model.Wallet, error)
	TopUp(ctx context.Context, customerID int64, amount decimal.Decimal) error
	Credit(ctx context.Context, customerID int64, amount decimal.Decimal, orderID *int64) error
	Transactions(ctx context.Context, customerID int64) ([]model.WalletTransaction, error)
}

// LoyaltyRepository manages points accounts. Accrual happens inside the order
// delivery transaction; Redeem converts points into wallet credit atomically.
type LoyaltyRepository interface {
	Get(ctx context.Context, customerID int64) (*model.LoyaltyAccount, error)
	Redeem(ctx context.Context, customerID int64, points int64, credit decimal.Decimal) error
}
