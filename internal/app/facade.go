package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
	"github.com/polkiloo/meatmarket/internal/usecase"
)

// StorefrontFacade is the single application surface the HTTP layer and the
// background worker talk to.
type StorefrontFacade struct {
	auth          *usecase.AuthUseCase
	catalog       *usecase.CatalogUseCase
	baskets       *usecase.BasketUseCase
	checkout      *usecase.CheckoutUseCase
	orders        *usecase.OrderUseCase
	deliveries    *usecase.DeliveryUseCase
	promos        *usecase.PromoUseCase
	wallets       *usecase.WalletUseCase
	loyalty       *usecase.LoyaltyUseCase
	finance       *usecase.FinanceUseCase
	chat          *usecase.ChatUseCase
	notifications *usecase.NotificationUseCase
}

func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	baskets *usecase.BasketUseCase,
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
	deliveries *usecase.DeliveryUseCase,
	promos *usecase.PromoUseCase,
	wallets *usecase.WalletUseCase,
	loyalty *usecase.LoyaltyUseCase,
	finance *usecase.FinanceUseCase,
	chat *usecase.ChatUseCase,
	notifications *usecase.NotificationUseCase,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:          auth,
		catalog:       catalog,
		baskets:       baskets,
		checkout:      checkout,
		orders:        orders,
		deliveries:    deliveries,
		promos:        promos,
		wallets:       wallets,
		loyalty:       loyalty,
		finance:       finance,
		chat:          chat,
		notifications: notifications,
	}
}

// Auth.

func (f *StorefrontFacade) Register(ctx context.Context, email, name, phone, password string, role model.Role) (*model.User, string, error) {
	return f.auth.Register(ctx, email, name, phone, password, role)
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StorefrontFacade) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	return f.auth.ResolveToken(ctx, token)
}

func (f *StorefrontFacade) Logout(ctx context.Context, token string) error {
	return f.auth.Logout(ctx, token)
}

func (f *StorefrontFacade) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return f.auth.PurgeExpiredSessions(ctx)
}

func (f *StorefrontFacade) ListDrivers(ctx context.Context) ([]model.User, error) {
	return f.auth.ListDrivers(ctx)
}

// Catalog.

func (f *StorefrontFacade) Products(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return f.catalog.List(ctx, filter)
}

func (f *StorefrontFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StorefrontFacade) ProductStock(ctx context.Context, id int64) (*model.Stock, error) {
	return f.catalog.GetStock(ctx, id)
}

func (f *StorefrontFacade) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return f.catalog.CreateProduct(ctx, product)
}

func (f *StorefrontFacade) UpdateProduct(ctx context.Context, product *model.Product) error {
	return f.catalog.UpdateProduct(ctx, product)
}

func (f *StorefrontFacade) AdjustStock(ctx context.Context, productID int64, delta decimal.Decimal) (*model.Stock, error) {
	return f.catalog.AdjustStock(ctx, productID, delta)
}

// Basket.

func (f *StorefrontFacade) Basket(ctx context.Context, customerID int64) (*model.Basket, error) {
	return f.baskets.Get(ctx, customerID)
}

func (f *StorefrontFacade) AddToBasket(ctx context.Context, customerID, productID int64, quantity decimal.Decimal) (*model.BasketItem, error) {
	return f.baskets.AddItem(ctx, customerID, productID, quantity)
}

func (f *StorefrontFacade) UpdateBasketItem(ctx context.Context, customerID, itemID int64, quantity decimal.Decimal) error {
	return f.baskets.UpdateItem(ctx, customerID, itemID, quantity)
}

func (f *StorefrontFacade) RemoveBasketItem(ctx context.Context, customerID, itemID int64) error {
	return f.baskets.RemoveItem(ctx, customerID, itemID)
}

func (f *StorefrontFacade) QuoteBasket(ctx context.Context, customerID int64, promoCode string) (*model.Basket, usecase.Quote, error) {
	return f.baskets.Quote(ctx, customerID, promoCode)
}

// Checkout and orders.

func (f *StorefrontFacade) Checkout(ctx context.Context, customerID int64, method model.PaymentMethod, promoCode, address string) (*model.Order, error) {
	return f.checkout.Checkout(ctx, customerID, method, promoCode, address)
}

func (f *StorefrontFacade) CustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error) {
	return f.orders.ListForCustomer(ctx, customerID)
}

func (f *StorefrontFacade) CustomerOrder(ctx context.Context, customerID, orderID int64) (*model.Order, error) {
	return f.orders.GetForCustomer(ctx, customerID, orderID)
}

func (f *StorefrontFacade) CancelOrder(ctx context.Context, customerID, orderID int64) (*model.Order, error) {
	return f.orders.CancelForCustomer(ctx, customerID, orderID)
}

func (f *StorefrontFacade) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *StorefrontFacade) OrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return f.orders.ListByStatus(ctx, status)
}

func (f *StorefrontFacade) UpdateOrderStatus(ctx context.Context, orderID int64, to model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, orderID, to)
}

// Delivery.

func (f *StorefrontFacade) AssignDelivery(ctx context.Context, orderID, driverID int64) (*model.Delivery, error) {
	return f.deliveries.Assign(ctx, orderID, driverID)
}

func (f *StorefrontFacade) DriverDeliveries(ctx context.Context, driverID int64, activeOnly bool) ([]model.Delivery, error) {
	return f.deliveries.ListForDriver(ctx, driverID, activeOnly)
}

func (f *StorefrontFacade) UpdateDeliveryStatus(ctx context.Context, driverID, deliveryID int64, to model.DeliveryStatus) (*model.Delivery, error) {
	return f.deliveries.UpdateStatus(ctx, driverID, deliveryID, to)
}

func (f *StorefrontFacade) ReportLocation(ctx context.Context, driverID, deliveryID int64, lat, lon float64) (*model.TrackingPoint, error) {
	return f.deliveries.ReportLocation(ctx, driverID, deliveryID, lat, lon)
}

func (f *StorefrontFacade) TrackOrder(ctx context.Context, customerID, orderID int64, since time.Time) (*usecase.TrackingInfo, error) {
	return f.deliveries.Track(ctx, customerID, orderID, since)
}

// Promo codes.

func (f *StorefrontFacade) CreatePromo(ctx context.Context, promo *model.PromoCode) (*model.PromoCode, error) {
	return f.promos.Create(ctx, promo)
}

func (f *StorefrontFacade) UpdatePromo(ctx context.Context, promo *model.PromoCode) error {
	return f.promos.Update(ctx, promo)
}

func (f *StorefrontFacade) Promos(ctx context.Context) ([]model.PromoCode, error) {
	return f.promos.List(ctx)
}

// Wallet and loyalty.

func (f *StorefrontFacade) WalletBalance(ctx context.Context, customerID int64) (*model.Wallet, error) {
	return f.wallets.Balance(ctx, customerID)
}

func (f *StorefrontFacade) WalletTopUp(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.Wallet, error) {
	return f.wallets.TopUp(ctx, customerID, amount)
}

func (f *StorefrontFacade) WalletHistory(ctx context.Context, customerID int64) ([]model.WalletTransaction, error) {
	return f.wallets.History(ctx, customerID)
}

func (f *StorefrontFacade) LoyaltySummary(ctx context.Context, customerID int64) (*usecase.LoyaltySummary, error) {
	return f.loyalty.Summary(ctx, customerID)
}

func (f *StorefrontFacade) RedeemPoints(ctx context.Context, customerID, points int64) (*model.Wallet, error) {
	return f.loyalty.Redeem(ctx, customerID, points)
}

// Finance.

func (f *StorefrontFacade) AccountBalances(ctx context.Context) ([]model.AccountBalance, error) {
	return f.finance.Balances(ctx)
}

func (f *StorefrontFacade) FinanceTransactions(ctx context.Context, from, to time.Time) ([]model.FinanceTransaction, error) {
	return f.finance.Transactions(ctx, from, to)
}

func (f *StorefrontFacade) AddExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	return f.finance.AddExpense(ctx, expense)
}

func (f *StorefrontFacade) Expenses(ctx context.Context, from, to time.Time) ([]model.Expense, error) {
	return f.finance.ListExpenses(ctx, from, to)
}

func (f *StorefrontFacade) ProfitAndLoss(ctx context.Context, from, to time.Time) (*model.ProfitAndLoss, error) {
	return f.finance.ProfitAndLoss(ctx, from, to)
}

func (f *StorefrontFacade) CashFlow(ctx context.Context, from, to time.Time) (*model.CashFlow, error) {
	return f.finance.CashFlow(ctx, from, to)
}

func (f *StorefrontFacade) VATReport(ctx context.Context, from, to time.Time) (*model.VATReport, error) {
	return f.finance.VATReport(ctx, from, to)
}

// Chat.

func (f *StorefrontFacade) Conversation(ctx context.Context, customerID int64) (*model.Conversation, error) {
	return f.chat.Conversation(ctx, customerID)
}

func (f *StorefrontFacade) OpenConversations(ctx context.Context) ([]model.Conversation, error) {
	return f.chat.ListOpen(ctx)
}

func (f *StorefrontFacade) CloseConversation(ctx context.Context, conversationID int64) error {
	return f.chat.Close(ctx, conversationID)
}

func (f *StorefrontFacade) SendMessage(ctx context.Context, conversationID int64, sender *model.User, body string) (*model.ChatMessage, error) {
	return f.chat.SendMessage(ctx, conversationID, sender, body)
}

func (f *StorefrontFacade) Messages(ctx context.Context, conversationID int64, reader *model.User, since time.Time) ([]model.ChatMessage, error) {
	return f.chat.Messages(ctx, conversationID, reader, since)
}

func (f *StorefrontFacade) UnreadMessages(ctx context.Context, conversationID int64, reader *model.User) (int64, error) {
	return f.chat.Unread(ctx, conversationID, reader)
}

// Notifications.

func (f *StorefrontFacade) Notifications(ctx context.Context, userID int64) ([]model.Notification, error) {
	return f.notifications.List(ctx, userID)
}

func (f *StorefrontFacade) MarkNotificationRead(ctx context.Context, userID, id int64) error {
	return f.notifications.MarkRead(ctx, userID, id)
}

func (f *StorefrontFacade) NotificationsForDispatch(ctx context.Context, limit int) ([]model.Notification, error) {
	return f.notifications.ClaimForDispatch(ctx, limit)
}

func (f *StorefrontFacade) PublishNotification(n model.Notification) {
	f.notifications.Publish(n)
}
