package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	testhelpers "github.com/polkiloo/meatmarket/internal/test"
)

func TestAddExpense(t *testing.T) {
	finance := &testhelpers.FinanceRepositoryStub{}
	uc := NewFinanceUseCase(finance)

	created, err := uc.AddExpense(context.Background(), &model.Expense{
		Category: "  packaging ",
		Amount:   d("120"),
		Account:  model.AccountBank,
	})
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if created.Category != "packaging" {
		t.Fatalf("category = %q", created.Category)
	}
	if created.SpentAt.IsZero() {
		t.Fatalf("spent at not defaulted")
	}
}

func TestAddExpenseValidation(t *testing.T) {
	uc := NewFinanceUseCase(&testhelpers.FinanceRepositoryStub{})

	cases := []struct {
		name    string
		expense model.Expense
	}{
		{"empty category", model.Expense{Amount: d("120"), Account: model.AccountBank}},
		{"zero amount", model.Expense{Category: "packaging", Account: model.AccountBank}},
		{"unknown account", model.Expense{Category: "packaging", Amount: d("120"), Account: "VAULT"}},
	}
	for _, c := range cases {
		if _, err := uc.AddExpense(context.Background(), &c.expense); !errors.Is(err, domainErrors.ErrInvalidAmount) {
			t.Fatalf("%s: err = %v, want invalid amount", c.name, err)
		}
	}
}

func TestReportsRequireValidPeriod(t *testing.T) {
	finance := &testhelpers.FinanceRepositoryStub{
		PNL:  &model.ProfitAndLoss{},
		Flow: &model.CashFlow{},
		VAT:  &model.VATReport{},
	}
	uc := NewFinanceUseCase(finance)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	if _, err := uc.ProfitAndLoss(context.Background(), from, to); err != nil {
		t.Fatalf("pnl: %v", err)
	}
	if _, err := uc.CashFlow(context.Background(), from, to); err != nil {
		t.Fatalf("cash flow: %v", err)
	}
	if _, err := uc.VATReport(context.Background(), from, to); err != nil {
		t.Fatalf("vat: %v", err)
	}

	badPeriods := []struct {
		name     string
		from, to time.Time
	}{
		{"zero from", time.Time{}, to},
		{"zero to", from, time.Time{}},
		{"inverted", to, from},
		{"equal", from, from},
	}
	for _, p := range badPeriods {
		if _, err := uc.ProfitAndLoss(context.Background(), p.from, p.to); !errors.Is(err, domainErrors.ErrInvalidPeriod) {
			t.Fatalf("%s: err = %v, want invalid period", p.name, err)
		}
	}
}

func TestTransactionsAndExpensesGateOnPeriod(t *testing.T) {
	uc := NewFinanceUseCase(&testhelpers.FinanceRepositoryStub{})

	if _, err := uc.Transactions(context.Background(), time.Time{}, time.Now()); !errors.Is(err, domainErrors.ErrInvalidPeriod) {
		t.Fatalf("transactions = %v, want invalid period", err)
	}
	if _, err := uc.ListExpenses(context.Background(), time.Now(), time.Time{}); !errors.Is(err, domainErrors.ErrInvalidPeriod) {
		t.Fatalf("expenses = %v, want invalid period", err)
	}
}
