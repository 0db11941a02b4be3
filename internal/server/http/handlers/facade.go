package handlers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
	"github.com/polkiloo/meatmarket/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, name, phone, password string, role model.Role) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ResolveToken(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
	ListDrivers(ctx context.Context) ([]model.User, error)
}

// CatalogFacade exposes catalog browsing and back-office product management.
type CatalogFacade interface {
	Products(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	ProductStock(ctx context.Context, id int64) (*model.Stock, error)
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	AdjustStock(ctx context.Context, productID int64, delta decimal.Decimal) (*model.Stock, error)
}

// BasketFacade exposes basket manipulation and quoting.
type BasketFacade interface {
	Basket(ctx context.Context, customerID int64) (*model.Basket, error)
	AddToBasket(ctx context.Context, customerID, productID int64, quantity decimal.Decimal) (*model.BasketItem, error)
	UpdateBasketItem(ctx context.Context, customerID, itemID int64, quantity decimal.Decimal) error
	RemoveBasketItem(ctx context.Context, customerID, itemID int64) error
	QuoteBasket(ctx context.Context, customerID int64, promoCode string) (*model.Basket, usecase.Quote, error)
}

// OrderFacade exposes checkout and the order lifecycle.
type OrderFacade interface {
	Checkout(ctx context.Context, customerID int64, method model.PaymentMethod, promoCode, address string) (*model.Order, error)
	CustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error)
	CustomerOrder(ctx context.Context, customerID, orderID int64) (*model.Order, error)
	CancelOrder(ctx context.Context, customerID, orderID int64) (*model.Order, error)
	Order(ctx context.Context, orderID int64) (*model.Order, error)
	OrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, to model.OrderStatus) (*model.Order, error)
}

// DeliveryFacade exposes driver assignment, progress, and customer tracking.
type DeliveryFacade interface {
	AssignDelivery(ctx context.Context, orderID, driverID int64) (*model.Delivery, error)
	DriverDeliveries(ctx context.Context, driverID int64, activeOnly bool) ([]model.Delivery, error)
	UpdateDeliveryStatus(ctx context.Context, driverID, deliveryID int64, to model.DeliveryStatus) (*model.Delivery, error)
	ReportLocation(ctx context.Context, driverID, deliveryID int64, lat, lon float64) (*model.TrackingPoint, error)
	TrackOrder(ctx context.Context, customerID, orderID int64, since time.Time) (*usecase.TrackingInfo, error)
}

// PromoFacade exposes promo code management.
type PromoFacade interface {
	CreatePromo(ctx context.Context, promo *model.PromoCode) (*model.PromoCode, error)
	UpdatePromo(ctx context.Context, promo *model.PromoCode) error
	Promos(ctx context.Context) ([]model.PromoCode, error)
}

// WalletFacade exposes the prepaid wallet and loyalty points.
type WalletFacade interface {
	WalletBalance(ctx context.Context, customerID int64) (*model.Wallet, error)
	WalletTopUp(ctx context.Context, customerID int64, amount decimal.Decimal) (*model.Wallet, error)
	WalletHistory(ctx context.Context, customerID int64) ([]model.WalletTransaction, error)
	LoyaltySummary(ctx context.Context, customerID int64) (*usecase.LoyaltySummary, error)
	RedeemPoints(ctx context.Context, customerID, points int64) (*model.Wallet, error)
}

// FinanceFacade exposes the back-office ledger and reports.
type FinanceFacade interface {
	AccountBalances(ctx context.Context) ([]model.AccountBalance, error)
	FinanceTransactions(ctx context.Context, from, to time.Time) ([]model.FinanceTransaction, error)
	AddExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error)
	Expenses(ctx context.Context, from, to time.Time) ([]model.Expense, error)
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*model.ProfitAndLoss, error)
	CashFlow(ctx context.Context, from, to time.Time) (*model.CashFlow, error)
	VATReport(ctx context.Context, from, to time.Time) (*model.VATReport, error)
}

// ChatFacade exposes support conversations and the notification feed.
type ChatFacade interface {
	Conversation(ctx context.Context, customerID int64) (*model.Conversation, error)
	OpenConversations(ctx context.Context) ([]model.Conversation, error)
	CloseConversation(ctx context.Context, conversationID int64) error
	SendMessage(ctx context.Context, conversationID int64, sender *model.User, body string) (*model.ChatMessage, error)
	Messages(ctx context.Context, conversationID int64, reader *model.User, since time.Time) ([]model.ChatMessage, error)
	UnreadMessages(ctx context.Context, conversationID int64, reader *model.User) (int64, error)
	Notifications(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id int64) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	BasketFacade
	OrderFacade
	DeliveryFacade
	PromoFacade
	WalletFacade
	FinanceFacade
	ChatFacade
}
