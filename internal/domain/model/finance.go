package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinanceAccount is a ledger bucket with a running balance.
type FinanceAccount string

const (
	AccountCash FinanceAccount = "CASH"
	AccountBank FinanceAccount = "BANK"
	AccountCard FinanceAccount = "CARD"
	AccountCOD  FinanceAccount = "COD_COLLECTIONS"
)

// TxDirection marks money entering or leaving an account.
type TxDirection string

const (
	DirectionIn  TxDirection = "IN"
	DirectionOut TxDirection = "OUT"
)

// AccountBalance is the current balance of one ledger account.
type AccountBalance struct {
	Account FinanceAccount
	Balance decimal.Decimal
}

// FinanceTransaction is one ledger movement, tied to an order or expense
// when applicable.
type FinanceTransaction struct {
	ID        int64
	Account   FinanceAccount
	Direction TxDirection
	Amount    decimal.Decimal
	OrderID   *int64
	ExpenseID *int64
	Note      string
	CreatedAt time.Time
}

// Expense is an operating cost paid out of a ledger account.
type Expense struct {
	ID        int64
	Category  string
	Amount    decimal.Decimal
	Account   FinanceAccount
	Note      string
	SpentAt   time.Time
	CreatedAt time.Time
}

// ProfitAndLoss aggregates a reporting period.
type ProfitAndLoss struct {
	From        time.Time
	To          time.Time
	Revenue     decimal.Decimal
	COGS        decimal.Decimal
	GrossProfit decimal.Decimal
	Expenses    decimal.Decimal
	ByCategory  map[string]decimal.Decimal
	NetProfit   decimal.Decimal
}

// CashFlow aggregates inflows and outflows per account over a period.
type CashFlow struct {
	From     time.Time
	To       time.Time
	Inflows  map[FinanceAccount]decimal.Decimal
	Outflows map[FinanceAccount]decimal.Decimal
	Net      decimal.Decimal
}

// VATReport is the output VAT collected over a period.
type VATReport struct {
	From       time.Time
	To         time.Time
	TaxableNet decimal.Decimal
	VAT        decimal.Decimal
	Orders     int64
}
