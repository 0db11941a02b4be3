package usecase

import (
	"context"
	"log/slog"

	"github.com/polkiloo/meatmarket/internal/adapter/payment"
	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
	"github.com/polkiloo/meatmarket/internal/events"
)

// OrderUseCase serves order history and the staff-side status machine.
type OrderUseCase struct {
	orders    repository.OrderRepository
	payments  repository.PaymentRepository
	gateway   payment.Client
	publisher events.Publisher
	logger    *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	gateway payment.Client,
	publisher events.Publisher,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		payments:  payments,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
	}
}

// ListForCustomer returns the customer's orders, newest first.
func (u *OrderUseCase) ListForCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return u.orders.ListByCustomer(ctx, customerID)
}

// GetForCustomer returns one order, refusing orders that belong to someone else.
func (u *OrderUseCase) GetForCustomer(ctx context.Context, customerID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// Get returns an order without an ownership check, for staff views.
func (u *OrderUseCase) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// ListByStatus returns all orders currently in the given status.
func (u *OrderUseCase) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidTransition
	}
	return u.orders.ListByStatus(ctx, status)
}

// UpdateStatus moves an order along its lifecycle. Cancelling a paid card
// order refunds the charge at the gateway first; the storage transition then
// releases stock and records the refund.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, to model.OrderStatus) (*model.Order, error) {
	if !to.Valid() {
		return nil, domainErrors.ErrInvalidTransition
	}

	if to == model.OrderStatusCancelled {
		// The gateway refund is irreversible, so the move must be known
		// legal before money leaves. Storage revalidates under lock.
		current, err := u.orders.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if !model.CanTransition(current.Status, to) {
			return nil, domainErrors.ErrInvalidTransition
		}
		if err := u.refundCardCharge(ctx, orderID); err != nil {
			return nil, err
		}
	}

	order, err := u.orders.Transition(ctx, orderID, to)
	if err != nil {
		return nil, err
	}

	envelope, err := events.Wrap(events.TypeOrderStatusChanged, events.OrderEventPayload{
		OrderID:    order.ID,
		Number:     order.Number,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
	})
	if err == nil {
		u.publisher.Publish(events.TopicOrders, order.Number, envelope)
	}

	return order, nil
}

// CancelForCustomer lets a customer cancel their own order while it is still
// cancellable; the transition check rejects anything past PREPARING.
func (u *OrderUseCase) CancelForCustomer(ctx context.Context, customerID, orderID int64) (*model.Order, error) {
	if _, err := u.GetForCustomer(ctx, customerID, orderID); err != nil {
		return nil, err
	}
	return u.UpdateStatus(ctx, orderID, model.OrderStatusCancelled)
}

func (u *OrderUseCase) refundCardCharge(ctx context.Context, orderID int64) error {
	pay, err := u.payments.GetByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if pay.Method != model.PaymentMethodCard || pay.Status != model.PaymentStatusPaid {
		return nil
	}
	if err := u.gateway.Refund(ctx, pay.GatewayRef, pay.Amount); err != nil {
		u.logger.Error("gateway refund failed",
			slog.Int64("order_id", orderID),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
