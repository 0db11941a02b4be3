package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
)

type walletRepository struct {
	storage *Storage
}

type loyaltyRepository struct {
	storage *Storage
}

// walletDebitTx locks the wallet row, checks the balance, deducts, and
// records the movement. Used by checkout inside its own transaction.
func (s *Storage) walletDebitTx(ctx context.Context, tx pgx.Tx, customerID int64, amount decimal.Decimal, orderID *int64) error {
	const lockQuery = `SELECT balance FROM wallets WHERE customer_id=$1 FOR UPDATE`
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, lockQuery, customerID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrInsufficientBalance
		}
		return err
	}
	if balance.LessThan(amount) {
		return domainErrors.ErrInsufficientBalance
	}

	const update = `UPDATE wallets SET balance = balance - $1, updated_at=NOW() WHERE customer_id=$2`
	if _, err := tx.Exec(ctx, update, amount, customerID); err != nil {
		return err
	}

	const insertTx = `INSERT INTO wallet_transactions (customer_id, kind, amount, order_id) VALUES ($1, $2, $3, $4)`
	_, err = tx.Exec(ctx, insertTx, customerID, model.WalletTxSpend, amount, orderID)
	return err
}

func (s *Storage) walletCreditTx(ctx context.Context, tx pgx.Tx, customerID int64, amount decimal.Decimal, kind model.WalletTxKind, orderID *int64) error {
	const upsert = `INSERT INTO wallets (customer_id, balance)
                    VALUES ($1, $2)
                    ON CONFLICT (customer_id) DO UPDATE
                    SET balance = wallets.balance + EXCLUDED.balance, updated_at = NOW()`
	if _, err := tx.Exec(ctx, upsert, customerID, amount); err != nil {
		return err
	}

	const insertTx = `INSERT INTO wallet_transactions (customer_id, kind, amount, order_id) VALUES ($1, $2, $3, $4)`
	_, err := tx.Exec(ctx, insertTx, customerID, kind, amount, orderID)
	return err
}

func (r *walletRepository) Get(ctx context.Context, customerID int64) (*model.Wallet, error) {
	const query = `SELECT customer_id, balance, updated_at FROM wallets WHERE customer_id=$1`
	var w model.Wallet
	err := r.storage.pool.QueryRow(ctx, query, customerID).Scan(&w.CustomerID, &w.Balance, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.Wallet{CustomerID: customerID, Balance: decimal.Zero}, nil
		}
		return nil, err
	}
	return &w, nil
}

// TopUp credits the wallet and books the settled gateway charge into the bank
// account.
func (r *walletRepository) TopUp(ctx context.Context, customerID int64, amount decimal.Decimal) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := r.storage.walletCreditTx(ctx, tx, customerID, amount, model.WalletTxTopUp, nil); err != nil {
			return err
		}
		return r.storage.financeTx(ctx, tx, model.AccountBank, model.DirectionIn, amount, nil, nil, "wallet top-up")
	})
}

func (r *walletRepository) Credit(ctx context.Context, customerID int64, amount decimal.Decimal, orderID *int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return r.storage.walletCreditTx(ctx, tx, customerID, amount, model.WalletTxRefund, orderID)
	})
}

func (r *walletRepository) Transactions(ctx context.Context, customerID int64) ([]model.WalletTransaction, error) {
	const query = `SELECT id, customer_id, kind, amount, order_id, created_at
                   FROM wallet_transactions WHERE customer_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.WalletTransaction
	for rows.Next() {
		var t model.WalletTransaction
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.Kind, &t.Amount, &t.OrderID, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- LoyaltyRepository implementation ---

func (r *loyaltyRepository) Get(ctx context.Context, customerID int64) (*model.LoyaltyAccount, error) {
	const query = `SELECT customer_id, points, lifetime_points FROM loyalty_accounts WHERE customer_id=$1`
	var a model.LoyaltyAccount
	err := r.storage.pool.QueryRow(ctx, query, customerID).Scan(&a.CustomerID, &a.Points, &a.LifetimePoints)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.LoyaltyAccount{CustomerID: customerID}, nil
		}
		return nil, err
	}
	return &a, nil
}

// Redeem converts points into wallet credit atomically.
func (r *loyaltyRepository) Redeem(ctx context.Context, customerID int64, points int64, credit decimal.Decimal) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockQuery = `SELECT points FROM loyalty_accounts WHERE customer_id=$1 FOR UPDATE`
		var current int64
		err := tx.QueryRow(ctx, lockQuery, customerID).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrInsufficientPoints
			}
			return err
		}
		if current < points {
			return domainErrors.ErrInsufficientPoints
		}

		const update = `UPDATE loyalty_accounts SET points = points - $1 WHERE customer_id=$2`
		if _, err := tx.Exec(ctx, update, points, customerID); err != nil {
			return err
		}

		return r.storage.walletCreditTx(ctx, tx, customerID, credit, model.WalletTxTopUp, nil)
	})
}
