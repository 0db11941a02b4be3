package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
)

// FinanceUseCase serves the back-office ledger and reports.
type FinanceUseCase struct {
	finance repository.FinanceRepository
}

// NewFinanceUseCase constructs FinanceUseCase.
func NewFinanceUseCase(finance repository.FinanceRepository) *FinanceUseCase {
	return &FinanceUseCase{finance: finance}
}

// Balances returns current ledger account balances.
func (u *FinanceUseCase) Balances(ctx context.Context) ([]model.AccountBalance, error) {
	return u.finance.Balances(ctx)
}

// Transactions lists ledger movements over [from, to).
func (u *FinanceUseCase) Transactions(ctx context.Context, from, to time.Time) ([]model.FinanceTransaction, error) {
	if err := validPeriod(from, to); err != nil {
		return nil, err
	}
	return u.finance.Transactions(ctx, from, to)
}

// AddExpense records an operating cost and debits its ledger account.
func (u *FinanceUseCase) AddExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	expense.Category = strings.TrimSpace(expense.Category)
	if expense.Category == "" {
		return nil, domainErrors.ErrInvalidAmount
	}
	if !PositiveAmount(expense.Amount) {
		return nil, domainErrors.ErrInvalidAmount
	}
	switch expense.Account {
	case model.AccountCash, model.AccountBank, model.AccountCard, model.AccountCOD:
	default:
		return nil, domainErrors.ErrInvalidAmount
	}
	if expense.SpentAt.IsZero() {
		expense.SpentAt = time.Now().UTC()
	}
	return u.finance.CreateExpense(ctx, expense)
}

// ListExpenses lists expenses over [from, to).
func (u *FinanceUseCase) ListExpenses(ctx context.Context, from, to time.Time) ([]model.Expense, error) {
	if err := validPeriod(from, to); err != nil {
		return nil, err
	}
	return u.finance.ListExpenses(ctx, from, to)
}

// ProfitAndLoss builds the P&L for [from, to).
func (u *FinanceUseCase) ProfitAndLoss(ctx context.Context, from, to time.Time) (*model.ProfitAndLoss, error) {
	if err := validPeriod(from, to); err != nil {
		return nil, err
	}
	return u.finance.ProfitAndLoss(ctx, from, to)
}

// CashFlow builds the cash-flow report for [from, to).
func (u *FinanceUseCase) CashFlow(ctx context.Context, from, to time.Time) (*model.CashFlow, error) {
	if err := validPeriod(from, to); err != nil {
		return nil, err
	}
	return u.finance.CashFlow(ctx, from, to)
}

// VATReport builds the output-VAT report for [from, to).
func (u *FinanceUseCase) VATReport(ctx context.Context, from, to time.Time) (*model.VATReport, error) {
	if err := validPeriod(from, to); err != nil {
		return nil, err
	}
	return u.finance.VATReport(ctx, from, to)
}

func validPeriod(from, to time.Time) error {
	if from.IsZero() || to.IsZero() || !from.Before(to) {
		return domainErrors.ErrInvalidPeriod
	}
	return nil
}
