package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/meatmarket/internal/adapter/payment"
	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
)

// WalletUseCase exposes the prepaid balance to customers. Spending happens
// inside checkout; the use case covers top-ups and history.
type WalletUseCase struct {
	wallets repository.WalletRepository
	gateway payment.Client
}

// NewWalletUseCase constructs WalletUseCase.
func NewWalletUseCase(wallets repository.WalletRepository, gateway payment.Client) *WalletUseCase {
	return &WalletUseCase{wallets: wallets, gateway: gateway}
}

// Balance returns the current wallet state.
func (u *WalletUseCase) Balance(ctx context.Context, customerID int64) (*model.Wallet, error) {
	return u.wallets.Get(ctx, customerID)
}

// TopUp charges the customer's card at the gateway and credits the wallet.
func (u *WalletUseCase) TopUp(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.Wallet, error) {
	if !PositiveAmount(amount) {
		return nil, domainErrors.ErrInvalidAmount
	}
	if _, err := u.gateway.Charge(ctx, amount, "wallet-"+newOrderNumber()); err != nil {
		return nil, err
	}
	if err := u.wallets.TopUp(ctx, customerID, amount); err != nil {
		return nil, err
	}
	return u.wallets.Get(ctx, customerID)
}

// History returns wallet movements, newest first.
func (u *WalletUseCase) History(ctx context.Context, customerID int64) ([]model.WalletTransaction, error) {
	return u.wallets.Transactions(ctx, customerID)
}
