package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/server/http/dto"
)

// FinanceHandler serves the back-office ledger and reports.
type FinanceHandler struct {
	facade FinanceFacade
}

// NewFinanceHandler constructs FinanceHandler.
func NewFinanceHandler(facade FinanceFacade) *FinanceHandler {
	return &FinanceHandler{facade: facade}
}

// Balances handles GET /api/admin/finance/balances.
func (h *FinanceHandler) Balances(c *gin.Context) {
	balances, err := h.facade.AccountBalances(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	resp := make([]dto.AccountBalanceResponse, 0, len(balances))
	for _, b := range balances {
		resp = append(resp, dto.AccountBalanceResponse{
			Account: string(b.Account),
			Balance: b.Balance.StringFixed(2),
		})
	}
	respondData(c, http.StatusOK, resp)
}

// Transactions handles GET /api/admin/finance/transactions.
func (h *FinanceHandler) Transactions(c *gin.Context) {
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}
	txs, err := h.facade.FinanceTransactions(c.Request.Context(), from, to)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	resp := make([]dto.FinanceTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, dto.FinanceTransactionResponse{
			ID:        tx.ID,
			Account:   string(tx.Account),
			Direction: string(tx.Direction),
			Amount:    tx.Amount.StringFixed(2),
			OrderID:   tx.OrderID,
			ExpenseID: tx.ExpenseID,
			Note:      tx.Note,
			CreatedAt: tx.CreatedAt,
		})
	}
	respondData(c, http.StatusOK, resp)
}

// AddExpense handles POST /api/admin/finance/expenses.
func (h *FinanceHandler) AddExpense(c *gin.Context) {
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}
	expense := &model.Expense{
		Category: req.Category,
		Amount:   amount,
		Account:  model.FinanceAccount(req.Account),
		Note:     req.Note,
	}
	if req.SpentAt != nil {
		expense.SpentAt = *req.SpentAt
	}
	created, err := h.facade.AddExpense(c.Request.Context(), expense)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusCreated, dto.NewExpenseResponse(created))
}

// Expenses handles GET /api/admin/finance/expenses.
func (h *FinanceHandler) Expenses(c *gin.Context) {
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}
	expenses, err := h.facade.Expenses(c.Request.Context(), from, to)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	resp := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		resp = append(resp, dto.NewExpenseResponse(&expenses[i]))
	}
	respondData(c, http.StatusOK, resp)
}

// ProfitAndLoss handles GET /api/admin/finance/reports/pnl.
func (h *FinanceHandler) ProfitAndLoss(c *gin.Context) {
	h.report(c, func(from, to time.Time) (any, error) {
		report, err := h.facade.ProfitAndLoss(c.Request.Context(), from, to)
		if err != nil {
			return nil, err
		}
		return dto.NewProfitAndLossResponse(report), nil
	})
}

// CashFlow handles GET /api/admin/finance/reports/cashflow.
func (h *FinanceHandler) CashFlow(c *gin.Context) {
	h.report(c, func(from, to time.Time) (any, error) {
		report, err := h.facade.CashFlow(c.Request.Context(), from, to)
		if err != nil {
			return nil, err
		}
		return dto.NewCashFlowResponse(report), nil
	})
}

// VATReport handles GET /api/admin/finance/reports/vat.
func (h *FinanceHandler) VATReport(c *gin.Context) {
	h.report(c, func(from, to time.Time) (any, error) {
		report, err := h.facade.VATReport(c.Request.Context(), from, to)
		if err != nil {
			return nil, err
		}
		return dto.NewVATReportResponse(report), nil
	})
}

func (h *FinanceHandler) report(c *gin.Context, build func(from, to time.Time) (any, error)) {
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}
	resp, err := build(from, to)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}
