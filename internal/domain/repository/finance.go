package repository

import (
	"context"
	"time"

	"github.com/polkiloo/meatmarket/internal/domain/model"
)

// FinanceRepository manages ledger accounts, expenses, and reports. Reports
// aggregate in SQL over the reporting period [from, to).
type FinanceRepository interface {
	Balances(ctx context.Context) ([]model.AccountBalance, error)
	Transactions(ctx context.Context, from, to time.Time) ([]model.FinanceTransaction, error)
	CreateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error)
	ListExpenses(ctx context.Context, from, to time.Time) ([]model.Expense, error)
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*model.ProfitAndLoss, error)
	CashFlow(ctx context.Context, from, to time.Time) (*model.CashFlow, error)
	VATReport(ctx context.Context, from, to time.Time) (*model.VATReport, error)
}
