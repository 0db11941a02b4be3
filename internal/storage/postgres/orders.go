package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

type promoRepository struct {
	storage *Storage
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order, method model.PaymentMethod, promoID *int64) (*model.Order, *model.Payment, error) {
	var payment model.Payment
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (number, customer_id, status, subtotal, discount, delivery_fee, vat, total, promo_code, address)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                             RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insertOrder,
			order.Number, order.CustomerID, model.OrderStatusNew,
			order.Subtotal, order.Discount, order.DeliveryFee, order.VAT, order.Total,
			order.PromoCode, order.Address).
			Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return err
		}
		order.Status = model.OrderStatusNew

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID

			const reserve = `UPDATE stock SET reserved = reserved + $1
                             WHERE product_id = $2 AND quantity - reserved >= $1`
			tag, err := tx.Exec(ctx, reserve, item.Quantity, item.ProductID)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return domainErrors.ErrInsufficientStock
			}

			const insertItem = `INSERT INTO order_items (order_id, product_id, name, unit_price, unit_cost, quantity)
                                VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
			if err := tx.QueryRow(ctx, insertItem,
				order.ID, item.ProductID, item.Name, item.UnitPrice, item.UnitCost, item.Quantity).
				Scan(&item.ID); err != nil {
				return err
			}
		}

		if promoID != nil {
			const usePromo = `UPDATE promo_codes SET used_count = used_count + 1
                              WHERE id = $1 AND active AND (usage_limit = 0 OR used_count < usage_limit)`
			tag, err := tx.Exec(ctx, usePromo, *promoID)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return domainErrors.ErrPromoInvalid
			}
		}

		paymentStatus := model.PaymentStatusPending
		if method == model.PaymentMethodWallet {
			if err := r.storage.walletDebitTx(ctx, tx, order.CustomerID, order.Total, &order.ID); err != nil {
				return err
			}
			paymentStatus = model.PaymentStatusPaid
		}

		const insertPayment = `INSERT INTO payments (order_id, method, status, amount)
                               VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insertPayment, order.ID, method, paymentStatus, order.Total).
			Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt); err != nil {
			return err
		}
		payment.OrderID = order.ID
		payment.Method = method
		payment.Status = paymentStatus
		payment.Amount = order.Total

		const clearBasket = `DELETE FROM basket_items
                             WHERE basket_id = (SELECT id FROM baskets WHERE customer_id = $1)`
		if _, err := tx.Exec(ctx, clearBasket, order.CustomerID); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return order, &payment, nil
}

const orderColumns = `id, number, customer_id, status, subtotal, discount, delivery_fee, vat, total, promo_code, address, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.Number, &o.CustomerID, &o.Status,
		&o.Subtotal, &o.Discount, &o.DeliveryFee, &o.VAT, &o.Total,
		&o.PromoCode, &o.Address, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *model.Order) error {
	const query = `SELECT id, order_id, product_id, name, unit_price, unit_cost, quantity
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.UnitPrice, &item.UnitCost, &item.Quantity); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE number=$1`, number))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Number, &o.CustomerID, &o.Status,
			&o.Subtotal, &o.Discount, &o.DeliveryFee, &o.VAT, &o.Total,
			&o.PromoCode, &o.Address, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id=$1 ORDER BY created_at DESC`, customerID)
}

func (r *orderRepository) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status=$1 ORDER BY created_at`, status)
}

// Transition locks the order row, validates the move against the status
// machine, and applies side effects in the same transaction. A concurrent
// transition that got there first makes this one fail instead of silently
// overwriting it.
func (r *orderRepository) Transition(ctx context.Context, orderID int64, to model.OrderStatus) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		order, err = scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, orderID))
		if err != nil {
			return err
		}

		if !model.CanTransition(order.Status, to) {
			return fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, order.Status, to)
		}

		const update = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING updated_at`
		if err := tx.QueryRow(ctx, update, to, orderID).Scan(&order.UpdatedAt); err != nil {
			return err
		}
		order.Status = to

		switch to {
		case model.OrderStatusCancelled:
			if err := r.releaseStockTx(ctx, tx, orderID); err != nil {
				return err
			}
			if err := r.refundPaymentTx(ctx, tx, order); err != nil {
				return err
			}
		case model.OrderStatusDelivered:
			if err := r.commitStockTx(ctx, tx, orderID); err != nil {
				return err
			}
			if err := r.settleCODTx(ctx, tx, order); err != nil {
				return err
			}
			if err := r.accrueLoyaltyTx(ctx, tx, order); err != nil {
				return err
			}
		case model.OrderStatusFailed:
			if err := r.releaseStockTx(ctx, tx, orderID); err != nil {
				return err
			}
		}

		return r.storage.notifyTx(ctx, tx, order.CustomerID, model.NotificationOrderStatus,
			fmt.Sprintf("Order %s is %s", order.Number, to), "", &order.ID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) releaseStockTx(ctx context.Context, tx pgx.Tx, orderID int64) error {
	const query = `UPDATE stock s SET reserved = s.reserved - i.quantity
                   FROM order_items i
                   WHERE i.order_id = $1 AND i.product_id = s.product_id`
	_, err := tx.Exec(ctx, query, orderID)
	return err
}

func (r *orderRepository) commitStockTx(ctx context.Context, tx pgx.Tx, orderID int64) error {
	const query = `UPDATE stock s SET quantity = s.quantity - i.quantity,
                                     reserved = s.reserved - i.quantity
                   FROM order_items i
                   WHERE i.order_id = $1 AND i.product_id = s.product_id`
	_, err := tx.Exec(ctx, query, orderID)
	return err
}

func (r *orderRepository) refundPaymentTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	const query = `SELECT id, method, status, amount FROM payments WHERE order_id=$1 FOR UPDATE`
	var (
		paymentID int64
		method    model.PaymentMethod
		status    model.PaymentStatus
		amount    decimal.Decimal
	)
	if err := tx.QueryRow(ctx, query, order.ID).Scan(&paymentID, &method, &status, &amount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if status != model.PaymentStatusPaid {
		return nil
	}

	const refund = `UPDATE payments SET status=$1, updated_at=NOW() WHERE id=$2`
	if _, err := tx.Exec(ctx, refund, model.PaymentStatusRefunded, paymentID); err != nil {
		return err
	}

	switch method {
	case model.PaymentMethodWallet:
		return r.storage.walletCreditTx(ctx, tx, order.CustomerID, amount, model.WalletTxRefund, &order.ID)
	case model.PaymentMethodCard:
		return r.storage.financeTx(ctx, tx, model.AccountCard, model.DirectionOut, amount, &order.ID, nil, "card refund")
	}
	return nil
}

func (r *orderRepository) settleCODTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	const query = `UPDATE payments SET status=$1, updated_at=NOW()
                   WHERE order_id=$2 AND method=$3 AND status=$4`
	tag, err := tx.Exec(ctx, query, model.PaymentStatusPaid, order.ID, model.PaymentMethodCOD, model.PaymentStatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return nil
	}
	return r.storage.financeTx(ctx, tx, model.AccountCOD, model.DirectionIn, order.Total, &order.ID, nil, "cod collection")
}

func (r *orderRepository) accrueLoyaltyTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	points := order.Total.IntPart()
	if points <= 0 {
		return nil
	}
	const query = `INSERT INTO loyalty_accounts (customer_id, points, lifetime_points)
                   VALUES ($1, $2, $2)
                   ON CONFLICT (customer_id) DO UPDATE
                   SET points = loyalty_accounts.points + EXCLUDED.points,
                       lifetime_points = loyalty_accounts.lifetime_points + EXCLUDED.lifetime_points`
	_, err := tx.Exec(ctx, query, order.CustomerID, points)
	return err
}

// --- PaymentRepository implementation ---

func (r *paymentRepository) GetByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	const query = `SELECT id, order_id, method, status, amount, gateway_ref, created_at, updated_at
                   FROM payments WHERE order_id=$1`
	var p model.Payment
	err := r.storage.pool.QueryRow(ctx, query, orderID).
		Scan(&p.ID, &p.OrderID, &p.Method, &p.Status, &p.Amount, &p.GatewayRef, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) MarkPaid(ctx context.Context, orderID int64, gatewayRef string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `UPDATE payments SET status=$1, gateway_ref=$2, updated_at=NOW()
                       WHERE order_id=$3 AND status=$4
                       RETURNING amount`
		var amount decimal.Decimal
		if err := tx.QueryRow(ctx, query, model.PaymentStatusPaid, gatewayRef, orderID, model.PaymentStatusPending).Scan(&amount); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		return r.storage.financeTx(ctx, tx, model.AccountCard, model.DirectionIn, amount, &orderID, nil, "card payment")
	})
}

// --- PromoRepository implementation ---

func (r *promoRepository) Create(ctx context.Context, promo *model.PromoCode) (*model.PromoCode, error) {
	const query = `INSERT INTO promo_codes (code, kind, value, min_subtotal, usage_limit, expires_at, active)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.storage.pool.QueryRow(ctx, query,
		promo.Code, promo.Kind, promo.Value, promo.MinSubtotal, promo.UsageLimit, promo.ExpiresAt, promo.Active).
		Scan(&promo.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return promo, nil
}

func (r *promoRepository) Update(ctx context.Context, promo *model.PromoCode) error {
	const query = `UPDATE promo_codes SET kind=$1, value=$2, min_subtotal=$3, usage_limit=$4, expires_at=$5, active=$6
                   WHERE id=$7`
	tag, err := r.storage.pool.Exec(ctx, query,
		promo.Kind, promo.Value, promo.MinSubtotal, promo.UsageLimit, promo.ExpiresAt, promo.Active, promo.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *promoRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	const query = `SELECT id, code, kind, value, min_subtotal, usage_limit, used_count, expires_at, active
                   FROM promo_codes WHERE code=$1`
	var p model.PromoCode
	err := r.storage.pool.QueryRow(ctx, query, code).
		Scan(&p.ID, &p.Code, &p.Kind, &p.Value, &p.MinSubtotal, &p.UsageLimit, &p.UsedCount, &p.ExpiresAt, &p.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *promoRepository) List(ctx context.Context) ([]model.PromoCode, error) {
	const query = `SELECT id, code, kind, value, min_subtotal, usage_limit, used_count, expires_at, active
                   FROM promo_codes ORDER BY code`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PromoCode
	for rows.Next() {
		var p model.PromoCode
		if err := rows.Scan(&p.ID, &p.Code, &p.Kind, &p.Value, &p.MinSubtotal, &p.UsageLimit, &p.UsedCount, &p.ExpiresAt, &p.Active); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
