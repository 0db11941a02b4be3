package dto

import (
	"time"

	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/usecase"
)

// TopUpRequest charges the customer's card and credits the wallet.
type TopUpRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// RedeemRequest converts loyalty points into wallet credit.
type RedeemRequest struct {
	Points int64 `json:"points" binding:"required"`
}

// WalletResponse is the prepaid balance.
type WalletResponse struct {
	Balance string `json:"balance"`
}

// WalletTransactionResponse is one wallet movement.
type WalletTransactionResponse struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Amount    string    `json:"amount"`
	OrderID   *int64    `json:"order_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LoyaltyResponse is the points account with the derived tier.
type LoyaltyResponse struct {
	Points          int64  `json:"points"`
	LifetimePoints  int64  `json:"lifetime_points"`
	Tier            string `json:"tier"`
	DiscountPercent string `json:"discount_percent"`
}

// NewWalletResponse converts a wallet model.
func NewWalletResponse(w *model.Wallet) WalletResponse {
	return WalletResponse{Balance: w.Balance.StringFixed(2)}
}

// NewWalletTransactionResponses converts wallet history.
func NewWalletTransactionResponses(txs []model.WalletTransaction) []WalletTransactionResponse {
	resp := make([]WalletTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, WalletTransactionResponse{
			ID:        tx.ID,
			Kind:      string(tx.Kind),
			Amount:    tx.Amount.StringFixed(2),
			OrderID:   tx.OrderID,
			CreatedAt: tx.CreatedAt,
		})
	}
	return resp
}

// NewLoyaltyResponse converts a loyalty summary.
func NewLoyaltyResponse(s *usecase.LoyaltySummary) LoyaltyResponse {
	return LoyaltyResponse{
		Points:          s.Points,
		LifetimePoints:  s.LifetimePoints,
		Tier:            string(s.Tier),
		DiscountPercent: s.DiscountPercent.String(),
	}
}
