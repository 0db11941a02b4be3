package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
	testhelpers "github.com/polkiloo/meatmarket/internal/test"
	"github.com/polkiloo/meatmarket/internal/usecase"
)

type facadeFixture struct {
	facade        *StorefrontFacade
	users         *testhelpers.UserRepositoryStub
	sessions      *testhelpers.SessionRepositoryStub
	products      *testhelpers.ProductRepositoryStub
	baskets       *testhelpers.BasketRepositoryStub
	orders        *testhelpers.OrderRepositoryStub
	payments      *testhelpers.PaymentRepositoryStub
	promos        *testhelpers.PromoRepositoryStub
	deliveries    *testhelpers.DeliveryRepositoryStub
	wallets       *testhelpers.WalletRepositoryStub
	loyalty       *testhelpers.LoyaltyRepositoryStub
	finance       *testhelpers.FinanceRepositoryStub
	chats         *testhelpers.ChatRepositoryStub
	notifications *testhelpers.NotificationRepositoryStub
	gateway       *testhelpers.GatewayStub
	locations     *testhelpers.LocationCacheStub
	publisher     *testhelpers.PublisherRecorder
}

func newFacade() *facadeFixture {
	f := &facadeFixture{
		users:         testhelpers.NewUserRepositoryStub(),
		sessions:      testhelpers.NewSessionRepositoryStub(),
		products:      testhelpers.NewProductRepositoryStub(),
		baskets:       testhelpers.NewBasketRepositoryStub(),
		orders:        testhelpers.NewOrderRepositoryStub(),
		payments:      testhelpers.NewPaymentRepositoryStub(),
		promos:        testhelpers.NewPromoRepositoryStub(),
		deliveries:    testhelpers.NewDeliveryRepositoryStub(),
		wallets:       testhelpers.NewWalletRepositoryStub(),
		finance:       &testhelpers.FinanceRepositoryStub{},
		chats:         testhelpers.NewChatRepositoryStub(),
		notifications: testhelpers.NewNotificationRepositoryStub(),
		gateway:       &testhelpers.GatewayStub{},
		locations:     testhelpers.NewLocationCacheStub(),
		publisher:     &testhelpers.PublisherRecorder{},
	}
	f.loyalty = testhelpers.NewLoyaltyRepositoryStub(f.wallets)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	pricer := usecase.NewPricer(decimal.NewFromInt(10), decimal.NewFromInt(5))
	promosUC := usecase.NewPromoUseCase(f.promos)

	f.facade = NewStorefrontFacade(
		usecase.NewAuthUseCase(f.users, f.sessions, testhelpers.HasherStub{}, testhelpers.TokenGeneratorStub{}, time.Hour),
		usecase.NewCatalogUseCase(f.products),
		usecase.NewBasketUseCase(f.baskets, f.products, f.loyalty, promosUC, pricer),
		usecase.NewCheckoutUseCase(f.baskets, f.products, f.loyalty, f.orders, f.payments, promosUC, pricer, f.gateway, f.publisher, logger),
		usecase.NewOrderUseCase(f.orders, f.payments, f.gateway, f.publisher, logger),
		usecase.NewDeliveryUseCase(f.deliveries, f.orders, f.users, f.locations, f.publisher, logger),
		promosUC,
		usecase.NewWalletUseCase(f.wallets, f.gateway),
		usecase.NewLoyaltyUseCase(f.loyalty, f.wallets),
		usecase.NewFinanceUseCase(f.finance),
		usecase.NewChatUseCase(f.chats, f.notifications),
		usecase.NewNotificationUseCase(f.notifications, f.publisher, logger),
	)
	return f
}

func (f *facadeFixture) seedProduct(t *testing.T, name string, price string, quantity string) *model.Product {
	t.Helper()
	return f.products.Add(model.Product{
		Name:     name,
		Category: "beef",
		Unit:     model.UnitKilogram,
		Price:    decimal.RequireFromString(price),
		VATable:  true,
		Active:   true,
	}, decimal.RequireFromString(quantity))
}

func TestStorefrontFacadeAuth(t *testing.T) {
	f := newFacade()
	ctx := context.Background()

	user, token, err := f.facade.Register(ctx, "ana@example.com", "Ana", "+371200001", "supersecret", model.RoleCustomer)
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}
	if user.Role != model.RoleCustomer {
		t.Fatalf("unexpected role %q", user.Role)
	}

	resolved, err := f.facade.ResolveToken(ctx, token)
	if err != nil {
		t.Fatalf("resolve token returned error: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, resolved.ID)
	}

	if _, _, err := f.facade.Authenticate(ctx, "ana@example.com", "supersecret"); err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if _, _, err := f.facade.Authenticate(ctx, "ana@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	if err := f.facade.Logout(ctx, token); err != nil {
		t.Fatalf("logout returned error: %v", err)
	}
	if len(f.sessions.Deleted) != 1 {
		t.Fatalf("expected one deleted session, got %d", len(f.sessions.Deleted))
	}

	if _, _, err := f.facade.Register(ctx, "boris@example.com", "Boris", "", "supersecret", model.RoleDriver); err != nil {
		t.Fatalf("driver register returned error: %v", err)
	}
	drivers, err := f.facade.ListDrivers(ctx)
	if err != nil || len(drivers) != 1 {
		t.Fatalf("expected one driver, got %v err=%v", drivers, err)
	}

	if _, err := f.facade.PurgeExpiredSessions(ctx); err != nil {
		t.Fatalf("purge returned error: %v", err)
	}
}

func TestStorefrontFacadeCatalog(t *testing.T) {
	f := newFacade()
	ctx := context.Background()

	created, err := f.facade.CreateProduct(ctx, &model.Product{
		Name:     "Ribeye",
		Category: "beef",
		Unit:     model.UnitKilogram,
		Price:    decimal.RequireFromString("28.50"),
		Active:   true,
	})
	if err != nil {
		t.Fatalf("create product returned error: %v", err)
	}

	created.Price = decimal.RequireFromString("29.00")
	if err := f.facade.UpdateProduct(ctx, created); err != nil {
		t.Fatalf("update product returned error: %v", err)
	}

	got, err := f.facade.Product(ctx, created.ID)
	if err != nil {
		t.Fatalf("get product returned error: %v", err)
	}
	if !got.Price.Equal(decimal.RequireFromString("29.00")) {
		t.Fatalf("unexpected price %s", got.Price)
	}

	listed, err := f.facade.Products(ctx, repository.ProductFilter{OnlyActive: true})
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one product, got %v err=%v", listed, err)
	}

	stock, err := f.facade.AdjustStock(ctx, created.ID, decimal.NewFromInt(12))
	if err != nil {
		t.Fatalf("adjust stock returned error: %v", err)
	}
	if !stock.Quantity.Equal(decimal.NewFromInt(12)) {
		t.Fatalf("unexpected quantity %s", stock.Quantity)
	}

	stock, err = f.facade.ProductStock(ctx, created.ID)
	if err != nil {
		t.Fatalf("get stock returned error: %v", err)
	}
	if !stock.Available().Equal(decimal.NewFromInt(12)) {
		t.Fatalf("unexpected available %s", stock.Available())
	}
}

func TestStorefrontFacadeBasket(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	product := f.seedProduct(t, "Pork loin", "10.00", "50")

	item, err := f.facade.AddToBasket(ctx, 7, product.ID, decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("add to basket returned error: %v", err)
	}
	if !item.UnitPrice.Equal(product.Price) {
		t.Fatalf("expected snapshotted price %s, got %s", product.Price, item.UnitPrice)
	}

	basket, quote, err := f.facade.QuoteBasket(ctx, 7, "")
	if err != nil {
		t.Fatalf("quote returned error: %v", err)
	}
	if len(basket.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(basket.Items))
	}
	// 20 + 5 delivery + 10% VAT on 20.
	if !quote.Total.Equal(decimal.RequireFromString("27")) {
		t.Fatalf("unexpected total %s", quote.Total)
	}

	if err := f.facade.UpdateBasketItem(ctx, 7, item.ID, decimal.NewFromInt(3)); err != nil {
		t.Fatalf("update item returned error: %v", err)
	}
	if err := f.facade.RemoveBasketItem(ctx, 7, item.ID); err != nil {
		t.Fatalf("remove item returned error: %v", err)
	}

	if _, _, err := f.facade.QuoteBasket(ctx, 7, ""); !errors.Is(err, domainErrors.ErrEmptyBasket) {
		t.Fatalf("expected empty basket error, got %v", err)
	}
}

func TestStorefrontFacadeCheckoutAndOrders(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	product := f.seedProduct(t, "Lamb rack", "30.00", "20")

	if _, err := f.facade.AddToBasket(ctx, 7, product.ID, decimal.NewFromInt(1)); err != nil {
		t.Fatalf("add to basket returned error: %v", err)
	}

	order, err := f.facade.Checkout(ctx, 7, model.PaymentMethodCard, "", "Brivibas iela 1")
	if err != nil {
		t.Fatalf("checkout returned error: %v", err)
	}
	if order.Status != model.OrderStatusNew {
		t.Fatalf("unexpected status %q", order.Status)
	}
	if len(f.gateway.Charges) != 1 {
		t.Fatalf("expected one gateway charge, got %d", len(f.gateway.Charges))
	}
	if len(f.payments.Paid) != 1 {
		t.Fatalf("expected payment marked paid, got %d", len(f.payments.Paid))
	}

	listed, err := f.facade.CustomerOrders(ctx, 7)
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one order, got %v err=%v", listed, err)
	}

	got, err := f.facade.CustomerOrder(ctx, 7, order.ID)
	if err != nil {
		t.Fatalf("customer order returned error: %v", err)
	}
	if !got.Total.Equal(order.Total) {
		t.Fatalf("unexpected total %s", got.Total)
	}
	if _, err := f.facade.CustomerOrder(ctx, 8, order.ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign order, got %v", err)
	}

	updated, err := f.facade.UpdateOrderStatus(ctx, order.ID, model.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("update status returned error: %v", err)
	}
	if updated.Status != model.OrderStatusConfirmed {
		t.Fatalf("unexpected status %q", updated.Status)
	}

	ready, err := f.facade.OrdersByStatus(ctx, model.OrderStatusConfirmed)
	if err != nil || len(ready) != 1 {
		t.Fatalf("expected one confirmed order, got %v err=%v", ready, err)
	}

	// MarkPaid in the stub does not carry method or amount over.
	f.payments.Payments[order.ID].Method = model.PaymentMethodCard
	f.payments.Payments[order.ID].Amount = order.Total

	cancelled, err := f.facade.CancelOrder(ctx, 7, order.ID)
	if err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if cancelled.Status != model.OrderStatusCancelled {
		t.Fatalf("unexpected status %q", cancelled.Status)
	}
	if len(f.gateway.Refunds) != 1 {
		t.Fatalf("expected gateway refund, got %d", len(f.gateway.Refunds))
	}

	events := f.publisher.Published()
	if len(events) == 0 {
		t.Fatal("expected order events to be published")
	}
}

func TestStorefrontFacadeDelivery(t *testing.T) {
	f := newFacade()
	ctx := context.Background()

	driver, err := f.users.Create(ctx, "driver@example.com", "Boris", "", "hash", model.RoleDriver)
	if err != nil {
		t.Fatalf("seed driver: %v", err)
	}
	f.orders.Orders[50] = &model.Order{ID: 50, CustomerID: 7, Status: model.OrderStatusReady}

	delivery, err := f.facade.AssignDelivery(ctx, 50, driver.ID)
	if err != nil {
		t.Fatalf("assign returned error: %v", err)
	}
	if delivery.Status != model.DeliveryStatusAssigned {
		t.Fatalf("unexpected status %q", delivery.Status)
	}

	if _, err := f.facade.AssignDelivery(ctx, 50, driver.ID); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	active, err := f.facade.DriverDeliveries(ctx, driver.ID, true)
	if err != nil || len(active) != 1 {
		t.Fatalf("expected one active delivery, got %v err=%v", active, err)
	}

	updated, err := f.facade.UpdateDeliveryStatus(ctx, driver.ID, delivery.ID, model.DeliveryStatusPickedUp)
	if err != nil {
		t.Fatalf("update status returned error: %v", err)
	}
	if updated.Status != model.DeliveryStatusPickedUp {
		t.Fatalf("unexpected status %q", updated.Status)
	}
	if f.orders.Orders[50].Status != model.OrderStatusOutForDelivery {
		t.Fatalf("expected order out for delivery, got %q", f.orders.Orders[50].Status)
	}

	if _, err := f.facade.UpdateDeliveryStatus(ctx, driver.ID+1, delivery.ID, model.DeliveryStatusEnRoute); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for foreign driver, got %v", err)
	}

	point, err := f.facade.ReportLocation(ctx, driver.ID, delivery.ID, 56.95, 24.1)
	if err != nil {
		t.Fatalf("report location returned error: %v", err)
	}
	if point.Latitude != 56.95 {
		t.Fatalf("unexpected latitude %v", point.Latitude)
	}
	if _, ok := f.locations.Locations[delivery.ID]; !ok {
		t.Fatal("expected live location cached")
	}

	info, err := f.facade.TrackOrder(ctx, 7, 50, time.Time{})
	if err != nil {
		t.Fatalf("track returned error: %v", err)
	}
	if info.Live == nil || info.Live.Longitude != 24.1 {
		t.Fatalf("unexpected live location %+v", info.Live)
	}
	if len(info.Points) != 1 {
		t.Fatalf("expected one tracking point, got %d", len(info.Points))
	}

	if _, err := f.facade.TrackOrder(ctx, 8, 50, time.Time{}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign customer, got %v", err)
	}
}

func TestStorefrontFacadePromos(t *testing.T) {
	f := newFacade()
	ctx := context.Background()

	promo, err := f.facade.CreatePromo(ctx, &model.PromoCode{
		Code:   "grill10",
		Kind:   model.PromoKindPercent,
		Value:  decimal.NewFromInt(10),
		Active: true,
	})
	if err != nil {
		t.Fatalf("create promo returned error: %v", err)
	}
	if promo.Code != "GRILL10" {
		t.Fatalf("expected normalized code, got %q", promo.Code)
	}

	promo.Active = false
	if err := f.facade.UpdatePromo(ctx, promo); err != nil {
		t.Fatalf("update promo returned error: %v", err)
	}

	listed, err := f.facade.Promos(ctx)
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one promo, got %v err=%v", listed, err)
	}

	if _, err := f.facade.CreatePromo(ctx, &model.PromoCode{Code: "", Kind: model.PromoKindFixed, Value: decimal.NewFromInt(5)}); !errors.Is(err, domainErrors.ErrPromoInvalid) {
		t.Fatalf("expected promo invalid, got %v", err)
	}
}

func TestStorefrontFacadeWalletAndLoyalty(t *testing.T) {
	f := newFacade()
	ctx := context.Background()

	wallet, err := f.facade.WalletTopUp(ctx, 7, decimal.RequireFromString("25.50"))
	if err != nil {
		t.Fatalf("top up returned error: %v", err)
	}
	if !wallet.Balance.Equal(decimal.RequireFromString("25.50")) {
		t.Fatalf("unexpected balance %s", wallet.Balance)
	}
	if len(f.gateway.Charges) != 1 {
		t.Fatalf("expected one gateway charge, got %d", len(f.gateway.Charges))
	}

	if _, err := f.facade.WalletTopUp(ctx, 7, decimal.Zero); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}

	history, err := f.facade.WalletHistory(ctx, 7)
	if err != nil || len(history) != 1 {
		t.Fatalf("expected one movement, got %v err=%v", history, err)
	}

	f.loyalty.Accounts[7] = &model.LoyaltyAccount{CustomerID: 7, Points: 300, LifetimePoints: 300}
	summary, err := f.facade.LoyaltySummary(ctx, 7)
	if err != nil {
		t.Fatalf("summary returned error: %v", err)
	}
	if summary.Points != 300 {
		t.Fatalf("unexpected points %d", summary.Points)
	}

	wallet, err = f.facade.RedeemPoints(ctx, 7, 200)
	if err != nil {
		t.Fatalf("redeem returned error: %v", err)
	}
	if !wallet.Balance.Equal(decimal.RequireFromString("27.50")) {
		t.Fatalf("unexpected balance after redeem %s", wallet.Balance)
	}

	if _, err := f.facade.RedeemPoints(ctx, 7, 150); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for odd block, got %v", err)
	}
	if _, err := f.facade.RedeemPoints(ctx, 7, 1000); !errors.Is(err, domainErrors.ErrInsufficientPoints) {
		t.Fatalf("expected insufficient points, got %v", err)
	}

	balance, err := f.facade.WalletBalance(ctx, 7)
	if err != nil {
		t.Fatalf("balance returned error: %v", err)
	}
	if !balance.Balance.Equal(wallet.Balance) {
		t.Fatalf("unexpected balance %s", balance.Balance)
	}
}

func TestStorefrontFacadeFinance(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	f.finance.BalancesVal = []model.AccountBalance{{Account: model.AccountCash, Balance: decimal.NewFromInt(100)}}
	f.finance.Txs = []model.FinanceTransaction{{Account: model.AccountBank, Direction: model.DirectionIn, Amount: decimal.NewFromInt(40)}}
	f.finance.PNL = &model.ProfitAndLoss{Revenue: decimal.NewFromInt(500)}
	f.finance.Flow = &model.CashFlow{Net: decimal.NewFromInt(60)}
	f.finance.VAT = &model.VATReport{Orders: 4}

	balances, err := f.facade.AccountBalances(ctx)
	if err != nil || len(balances) != 1 {
		t.Fatalf("expected one balance, got %v err=%v", balances, err)
	}

	txs, err := f.facade.FinanceTransactions(ctx, from, to)
	if err != nil || len(txs) != 1 {
		t.Fatalf("expected one transaction, got %v err=%v", txs, err)
	}

	expense, err := f.facade.AddExpense(ctx, &model.Expense{Category: "rent", Amount: decimal.NewFromInt(300), Account: model.AccountBank})
	if err != nil {
		t.Fatalf("add expense returned error: %v", err)
	}
	if expense.ID == 0 {
		t.Fatal("expected expense to get an id")
	}
	if expense.SpentAt.IsZero() {
		t.Fatal("expected spent at to default")
	}

	expenses, err := f.facade.Expenses(ctx, from, to)
	if err != nil || len(expenses) != 1 {
		t.Fatalf("expected one expense, got %v err=%v", expenses, err)
	}

	pnl, err := f.facade.ProfitAndLoss(ctx, from, to)
	if err != nil || !pnl.Revenue.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected pnl %+v err=%v", pnl, err)
	}
	flow, err := f.facade.CashFlow(ctx, from, to)
	if err != nil || !flow.Net.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("unexpected cash flow %+v err=%v", flow, err)
	}
	vat, err := f.facade.VATReport(ctx, from, to)
	if err != nil || vat.Orders != 4 {
		t.Fatalf("unexpected vat report %+v err=%v", vat, err)
	}

	if _, err := f.facade.ProfitAndLoss(ctx, to, from); !errors.Is(err, domainErrors.ErrInvalidPeriod) {
		t.Fatalf("expected invalid period, got %v", err)
	}
}

func TestStorefrontFacadeChat(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	customer := &model.User{ID: 7, Role: model.RoleCustomer}
	admin := &model.User{ID: 1, Role: model.RoleAdmin}

	conversation, err := f.facade.Conversation(ctx, customer.ID)
	if err != nil {
		t.Fatalf("conversation returned error: %v", err)
	}

	if _, err := f.facade.SendMessage(ctx, conversation.ID, customer, "where is my order?"); err != nil {
		t.Fatalf("customer message returned error: %v", err)
	}
	if _, err := f.facade.SendMessage(ctx, conversation.ID, admin, "driver is en route"); err != nil {
		t.Fatalf("staff message returned error: %v", err)
	}
	if len(f.notifications.Notifications) != 1 {
		t.Fatalf("expected staff reply notification, got %d", len(f.notifications.Notifications))
	}

	unread, err := f.facade.UnreadMessages(ctx, conversation.ID, customer)
	if err != nil || unread != 1 {
		t.Fatalf("expected one unread staff message, got %d err=%v", unread, err)
	}
	stranger := &model.User{ID: 8, Role: model.RoleCustomer}
	if _, err := f.facade.UnreadMessages(ctx, conversation.ID, stranger); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden for foreign thread, got %v", err)
	}

	messages, err := f.facade.Messages(ctx, conversation.ID, customer, time.Time{})
	if err != nil || len(messages) != 2 {
		t.Fatalf("expected two messages, got %v err=%v", messages, err)
	}

	unread, err = f.facade.UnreadMessages(ctx, conversation.ID, customer)
	if err != nil || unread != 0 {
		t.Fatalf("expected unread to reset after reading, got %d err=%v", unread, err)
	}

	open, err := f.facade.OpenConversations(ctx)
	if err != nil || len(open) != 1 {
		t.Fatalf("expected one open conversation, got %v err=%v", open, err)
	}

	if err := f.facade.CloseConversation(ctx, conversation.ID); err != nil {
		t.Fatalf("close returned error: %v", err)
	}
	if _, err := f.facade.SendMessage(ctx, conversation.ID, customer, "hello?"); !errors.Is(err, domainErrors.ErrConversationClosed) {
		t.Fatalf("expected conversation closed, got %v", err)
	}
}

func TestStorefrontFacadeNotifications(t *testing.T) {
	f := newFacade()
	ctx := context.Background()

	if _, err := f.notifications.Create(ctx, &model.Notification{UserID: 7, Kind: model.NotificationOrderStatus, Title: "Order confirmed"}); err != nil {
		t.Fatalf("seed notification: %v", err)
	}

	listed, err := f.facade.Notifications(ctx, 7)
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected one notification, got %v err=%v", listed, err)
	}

	if err := f.facade.MarkNotificationRead(ctx, 7, listed[0].ID); err != nil {
		t.Fatalf("mark read returned error: %v", err)
	}
	if err := f.facade.MarkNotificationRead(ctx, 8, listed[0].ID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for foreign user, got %v", err)
	}

	batch, err := f.facade.NotificationsForDispatch(ctx, 10)
	if err != nil || len(batch) != 1 {
		t.Fatalf("expected one claimed notification, got %v err=%v", batch, err)
	}

	f.facade.PublishNotification(batch[0])
	events := f.publisher.Published()
	if len(events) != 1 {
		t.Fatalf("expected one published event, got %d", len(events))
	}
}
