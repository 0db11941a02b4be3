package dto

import (
	"time"

	"github.com/polkiloo/meatmarket/internal/domain/model"
)

// ExpenseRequest records an operating cost.
type ExpenseRequest struct {
	Category string     `json:"category" binding:"required"`
	Amount   string     `json:"amount" binding:"required"`
	Account  string     `json:"account" binding:"required"`
	Note     string     `json:"note"`
	SpentAt  *time.Time `json:"spent_at"`
}

// ExpenseResponse is one recorded expense.
type ExpenseResponse struct {
	ID       int64     `json:"id"`
	Category string    `json:"category"`
	Amount   string    `json:"amount"`
	Account  string    `json:"account"`
	Note     string    `json:"note,omitempty"`
	SpentAt  time.Time `json:"spent_at"`
}

// AccountBalanceResponse is one ledger account balance.
type AccountBalanceResponse struct {
	Account string `json:"account"`
	Balance string `json:"balance"`
}

// FinanceTransactionResponse is one ledger movement.
type FinanceTransactionResponse struct {
	ID        int64     `json:"id"`
	Account   string    `json:"account"`
	Direction string    `json:"direction"`
	Amount    string    `json:"amount"`
	OrderID   *int64    `json:"order_id,omitempty"`
	ExpenseID *int64    `json:"expense_id,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfitAndLossResponse is the P&L report.
type ProfitAndLossResponse struct {
	From        time.Time         `json:"from"`
	To          time.Time         `json:"to"`
	Revenue     string            `json:"revenue"`
	COGS        string            `json:"cogs"`
	GrossProfit string            `json:"gross_profit"`
	Expenses    string            `json:"expenses"`
	ByCategory  map[string]string `json:"by_category"`
	NetProfit   string            `json:"net_profit"`
}

// CashFlowResponse is the cash-flow report.
type CashFlowResponse struct {
	From     time.Time         `json:"from"`
	To       time.Time         `json:"to"`
	Inflows  map[string]string `json:"inflows"`
	Outflows map[string]string `json:"outflows"`
	Net      string            `json:"net"`
}

// VATReportResponse is the output-VAT report.
type VATReportResponse struct {
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	TaxableNet string    `json:"taxable_net"`
	VAT        string    `json:"vat"`
	Orders     int64     `json:"orders"`
}

// NewExpenseResponse converts an expense model.
func NewExpenseResponse(e *model.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:       e.ID,
		Category: e.Category,
		Amount:   e.Amount.StringFixed(2),
		Account:  string(e.Account),
		Note:     e.Note,
		SpentAt:  e.SpentAt,
	}
}

// NewProfitAndLossResponse converts the P&L aggregate.
func NewProfitAndLossResponse(r *model.ProfitAndLoss) ProfitAndLossResponse {
	byCategory := make(map[string]string, len(r.ByCategory))
	for category, amount := range r.ByCategory {
		byCategory[category] = amount.StringFixed(2)
	}
	return ProfitAndLossResponse{
		From:        r.From,
		To:          r.To,
		Revenue:     r.Revenue.StringFixed(2),
		COGS:        r.COGS.StringFixed(2),
		GrossProfit: r.GrossProfit.StringFixed(2),
		Expenses:    r.Expenses.StringFixed(2),
		ByCategory:  byCategory,
		NetProfit:   r.NetProfit.StringFixed(2),
	}
}

// NewCashFlowResponse converts the cash-flow aggregate.
func NewCashFlowResponse(r *model.CashFlow) CashFlowResponse {
	inflows := make(map[string]string, len(r.Inflows))
	for account, amount := range r.Inflows {
		inflows[string(account)] = amount.StringFixed(2)
	}
	outflows := make(map[string]string, len(r.Outflows))
	for account, amount := range r.Outflows {
		outflows[string(account)] = amount.StringFixed(2)
	}
	return CashFlowResponse{
		From:     r.From,
		To:       r.To,
		Inflows:  inflows,
		Outflows: outflows,
		Net:      r.Net.StringFixed(2),
	}
}

// NewVATReportResponse converts the VAT aggregate.
func NewVATReportResponse(r *model.VATReport) VATReportResponse {
	return VATReportResponse{
		From:       r.From,
		To:         r.To,
		TaxableNet: r.TaxableNet.StringFixed(2),
		VAT:        r.VAT.StringFixed(2),
		Orders:     r.Orders,
	}
}
