package repository

import (
	"context"

	"github.com/polkiloo/meatmarket/internal/domain/model"
)

// OrderRepository describes persistence operations for orders.
//
// Create runs the whole checkout write set in one transaction: stock
// reservation with availability checks, promo usage increment, order and item
// rows, payment row, wallet debit for wallet payments, and basket clearing.
// Transition locks the order row, validates the move against the status
// machine, and applies its side effects (stock release or commit, COD
// settlement, loyalty accrual, customer notification) atomically.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order, method model.PaymentMethod, promoID *int64) (*model.Order, *model.Payment, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	Transition(ctx context.Context, orderID int64, to model.OrderStatus) (*model.Order, error)
}

// PaymentRepository gives access to order payments. MarkPaid settles a
// pending payment and books the inflow into the matching ledger account.
type PaymentRepository interface {
	GetByOrder(ctx context.Context, orderID int64) (*model.Payment, error)
	MarkPaid(ctx context.Context, orderID int64, gatewayRef string) error
}

// PromoRepository manages discount codes.
type PromoRepository interface {
	Create(ctx context.Context, promo *model.PromoCode) (*model.PromoCode, error)
	Update(ctx context.Context, promo *model.PromoCode) error
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)
	List(ctx context.Context) ([]model.PromoCode, error)
}
