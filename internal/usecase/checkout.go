package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/meatmarket/internal/adapter/payment"
	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
	"github.com/polkiloo/meatmarket/internal/events"
)

// CheckoutUseCase turns a basket into an order.
type CheckoutUseCase struct {
	baskets   repository.BasketRepository
	products  repository.ProductRepository
	loyalty   repository.LoyaltyRepository
	orders    repository.OrderRepository
	payments  repository.PaymentRepository
	promos    *PromoUseCase
	pricer    *Pricer
	gateway   payment.Client
	publisher events.Publisher
	logger    *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	baskets repository.BasketRepository,
	products repository.ProductRepository,
	loyalty repository.LoyaltyRepository,
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	promos *PromoUseCase,
	pricer *Pricer,
	gateway payment.Client,
	publisher events.Publisher,
	logger *slog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		baskets:   baskets,
		products:  products,
		loyalty:   loyalty,
		orders:    orders,
		payments:  payments,
		promos:    promos,
		pricer:    pricer,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
	}
}

// Checkout validates the basket, prices it, and creates the order with its
// payment in one storage transaction. Card charges run against the gateway
// after the order exists; a declined charge cancels the order, which releases
// the stock reservation.
func (u *CheckoutUseCase) Checkout(ctx context.Context, customerID int64, method model.PaymentMethod, promoCode, address string) (*model.Order, error) {
	switch method {
	case model.PaymentMethodCard, model.PaymentMethodWallet, model.PaymentMethodCOD:
	default:
		return nil, domainErrors.ErrInvalidAmount
	}

	basket, err := u.baskets.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(basket.Items) == 0 {
		return nil, domainErrors.ErrEmptyBasket
	}

	subtotal := basket.Subtotal()

	account, err := u.loyalty.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	discount := subtotal.Mul(model.TierDiscountPercent(account.Tier())).Div(hundred)

	var promoID *int64
	if promoCode != "" {
		promo, promoDiscount, err := u.promos.Resolve(ctx, promoCode, subtotal)
		if err != nil {
			return nil, err
		}
		discount = discount.Add(promoDiscount)
		promoID = &promo.ID
		promoCode = promo.Code
	}

	vatable := decimal.Zero
	items := make([]model.OrderItem, 0, len(basket.Items))
	for _, line := range basket.Items {
		product, err := u.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.Active {
			return nil, domainErrors.ErrProductInactive
		}
		if product.VATable {
			vatable = vatable.Add(line.UnitPrice.Mul(line.Quantity))
		}
		items = append(items, model.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			UnitCost:  product.CostPrice,
			Quantity:  line.Quantity,
		})
	}

	quote := u.pricer.Price(subtotal, vatable, discount)

	order := &model.Order{
		Number:      newOrderNumber(),
		CustomerID:  customerID,
		Subtotal:    quote.Subtotal,
		Discount:    quote.Discount,
		DeliveryFee: quote.DeliveryFee,
		VAT:         quote.VAT,
		Total:       quote.Total,
		PromoCode:   promoCode,
		Address:     strings.TrimSpace(address),
		Items:       items,
	}

	order, _, err = u.orders.Create(ctx, order, method, promoID)
	if err != nil {
		return nil, err
	}

	if method == model.PaymentMethodCard {
		ref, err := u.gateway.Charge(ctx, order.Total, order.Number)
		if err != nil {
			if _, cancelErr := u.orders.Transition(ctx, order.ID, model.OrderStatusCancelled); cancelErr != nil {
				u.logger.Error("cancel order after declined charge failed",
					slog.String("order", order.Number),
					slog.String("error", cancelErr.Error()))
			}
			return nil, err
		}
		if err := u.payments.MarkPaid(ctx, order.ID, ref); err != nil {
			return nil, err
		}
	}

	envelope, err := events.Wrap(events.TypeOrderCreated, events.OrderEventPayload{
		OrderID:    order.ID,
		Number:     order.Number,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
		Total:      order.Total.StringFixed(2),
	})
	if err == nil {
		u.publisher.Publish(events.TopicOrders, order.Number, envelope)
	}

	return order, nil
}

func newOrderNumber() string {
	return uuid.NewString()
}
