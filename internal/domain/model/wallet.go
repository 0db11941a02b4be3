package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletTxKind classifies a wallet movement.
type WalletTxKind string

const (
	WalletTxTopUp  WalletTxKind = "TOPUP"
	WalletTxSpend  WalletTxKind = "SPEND"
	WalletTxRefund WalletTxKind = "REFUND"
)

// Wallet holds a customer's prepaid balance.
type Wallet struct {
	CustomerID int64
	Balance    decimal.Decimal
	UpdatedAt  time.Time
}

// WalletTransaction is a single wallet movement.
type WalletTransaction struct {
	ID         int64
	CustomerID int64
	Kind       WalletTxKind
	Amount     decimal.Decimal
	OrderID    *int64
	CreatedAt  time.Time
}
