package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
)

type financeRepository struct {
	storage *Storage
}

// financeTx books one ledger movement and keeps the account balance current.
func (s *Storage) financeTx(ctx context.Context, tx pgx.Tx, account model.FinanceAccount, direction model.TxDirection, amount decimal.Decimal, orderID, expenseID *int64, note string) error {
	const insert = `INSERT INTO finance_transactions (account, direction, amount, order_id, expense_id, note)
                    VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := tx.Exec(ctx, insert, account, direction, amount, orderID, expenseID, note); err != nil {
		return err
	}

	signed := amount
	if direction == model.DirectionOut {
		signed = amount.Neg()
	}
	const update = `UPDATE finance_accounts SET balance = balance + $1 WHERE account = $2`
	_, err := tx.Exec(ctx, update, signed, account)
	return err
}

func (r *financeRepository) Balances(ctx context.Context) ([]model.AccountBalance, error) {
	const query = `SELECT account, balance FROM finance_accounts ORDER BY account`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.AccountBalance
	for rows.Next() {
		var b model.AccountBalance
		if err := rows.Scan(&b.Account, &b.Balance); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *financeRepository) Transactions(ctx context.Context, from, to time.Time) ([]model.FinanceTransaction, error) {
	const query = `SELECT id, account, direction, amount, order_id, expense_id, note, created_at
                   FROM finance_transactions
                   WHERE created_at >= $1 AND created_at < $2
                   ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.FinanceTransaction
	for rows.Next() {
		var t model.FinanceTransaction
		if err := rows.Scan(&t.ID, &t.Account, &t.Direction, &t.Amount, &t.OrderID, &t.ExpenseID, &t.Note, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *financeRepository) CreateExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO expenses (category, amount, account, note, spent_at)
                        VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insert,
			expense.Category, expense.Amount, expense.Account, expense.Note, expense.SpentAt).
			Scan(&expense.ID, &expense.CreatedAt); err != nil {
			return err
		}
		return r.storage.financeTx(ctx, tx, expense.Account, model.DirectionOut, expense.Amount, nil, &expense.ID, expense.Category)
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func (r *financeRepository) ListExpenses(ctx context.Context, from, to time.Time) ([]model.Expense, error) {
	const query = `SELECT id, category, amount, account, note, spent_at, created_at
                   FROM expenses
                   WHERE spent_at >= $1 AND spent_at < $2
                   ORDER BY spent_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Expense
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(&e.ID, &e.Category, &e.Amount, &e.Account, &e.Note, &e.SpentAt, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ProfitAndLoss aggregates delivered orders and expenses in SQL. COGS comes
// from the cost snapshots on order items, not an approximation.
func (r *financeRepository) ProfitAndLoss(ctx context.Context, from, to time.Time) (*model.ProfitAndLoss, error) {
	if !from.Before(to) {
		return nil, domainErrors.ErrInvalidPeriod
	}

	report := &model.ProfitAndLoss{From: from, To: to, ByCategory: make(map[string]decimal.Decimal)}

	const revenueQuery = `SELECT COALESCE(SUM(o.total), 0),
                                 COALESCE(SUM(c.cogs), 0)
                          FROM orders o
                          LEFT JOIN (SELECT order_id, SUM(unit_cost * quantity) AS cogs
                                     FROM order_items GROUP BY order_id) c ON c.order_id = o.id
                          WHERE o.status = $1 AND o.updated_at >= $2 AND o.updated_at < $3`
	if err := r.storage.pool.QueryRow(ctx, revenueQuery, model.OrderStatusDelivered, from, to).
		Scan(&report.Revenue, &report.COGS); err != nil {
		return nil, err
	}

	const expenseQuery = `SELECT category, COALESCE(SUM(amount), 0)
                          FROM expenses
                          WHERE spent_at >= $1 AND spent_at < $2
                          GROUP BY category`
	rows, err := r.storage.pool.Query(ctx, expenseQuery, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			category string
			amount   decimal.Decimal
		)
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, err
		}
		report.ByCategory[category] = amount
		report.Expenses = report.Expenses.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	report.GrossProfit = report.Revenue.Sub(report.COGS)
	report.NetProfit = report.GrossProfit.Sub(report.Expenses)
	return report, nil
}

func (r *financeRepository) CashFlow(ctx context.Context, from, to time.Time) (*model.CashFlow, error) {
	if !from.Before(to) {
		return nil, domainErrors.ErrInvalidPeriod
	}

	report := &model.CashFlow{
		From:     from,
		To:       to,
		Inflows:  make(map[model.FinanceAccount]decimal.Decimal),
		Outflows: make(map[model.FinanceAccount]decimal.Decimal),
	}

	const query = `SELECT account, direction, COALESCE(SUM(amount), 0)
                   FROM finance_transactions
                   WHERE created_at >= $1 AND created_at < $2
                   GROUP BY account, direction`
	rows, err := r.storage.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			account   model.FinanceAccount
			direction model.TxDirection
			amount    decimal.Decimal
		)
		if err := rows.Scan(&account, &direction, &amount); err != nil {
			return nil, err
		}
		if direction == model.DirectionIn {
			report.Inflows[account] = amount
			report.Net = report.Net.Add(amount)
		} else {
			report.Outflows[account] = amount
			report.Net = report.Net.Sub(amount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *financeRepository) VATReport(ctx context.Context, from, to time.Time) (*model.VATReport, error) {
	if !from.Before(to) {
		return nil, domainErrors.ErrInvalidPeriod
	}

	report := &model.VATReport{From: from, To: to}

	const query = `SELECT COALESCE(SUM(subtotal - discount), 0), COALESCE(SUM(vat), 0), COUNT(*)
                   FROM orders
                   WHERE status = $1 AND updated_at >= $2 AND updated_at < $3`
	if err := r.storage.pool.QueryRow(ctx, query, model.OrderStatusDelivered, from, to).
		Scan(&report.TaxableNet, &report.VAT, &report.Orders); err != nil {
		return nil, err
	}
	return report, nil
}
