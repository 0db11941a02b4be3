package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/meatmarket/internal/app"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/meatmarket/internal/test"
	"github.com/polkiloo/meatmarket/internal/usecase"
)

var _ handlers.StorefrontFacade = (*app.StorefrontFacade)(nil)

type routerFixture struct {
	engine   *gin.Engine
	users    *testhelpers.UserRepositoryStub
	sessions *testhelpers.SessionRepositoryStub
	products *testhelpers.ProductRepositoryStub
	orders   *testhelpers.OrderRepositoryStub
	payments *testhelpers.PaymentRepositoryStub
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	users := testhelpers.NewUserRepositoryStub()
	sessions := testhelpers.NewSessionRepositoryStub()
	products := testhelpers.NewProductRepositoryStub()
	baskets := testhelpers.NewBasketRepositoryStub()
	orders := testhelpers.NewOrderRepositoryStub()
	payments := testhelpers.NewPaymentRepositoryStub()
	promos := testhelpers.NewPromoRepositoryStub()
	deliveries := testhelpers.NewDeliveryRepositoryStub()
	wallets := testhelpers.NewWalletRepositoryStub()
	loyalty := testhelpers.NewLoyaltyRepositoryStub(wallets)
	finance := &testhelpers.FinanceRepositoryStub{}
	chats := testhelpers.NewChatRepositoryStub()
	notifications := testhelpers.NewNotificationRepositoryStub()
	gateway := &testhelpers.GatewayStub{}
	publisher := &testhelpers.PublisherRecorder{}
	locations := testhelpers.NewLocationCacheStub()

	var tokenSeq int
	tokens := testhelpers.TokenGeneratorStub{GenerateFn: func() (string, error) {
		tokenSeq++
		return "token-" + string(rune('a'+tokenSeq)), nil
	}}

	pricer := usecase.NewPricer(decimal.NewFromInt(10), decimal.NewFromInt(5))
	promoUC := usecase.NewPromoUseCase(promos)
	facade := app.NewStorefrontFacade(
		usecase.NewAuthUseCase(users, sessions, testhelpers.HasherStub{}, tokens, time.Hour),
		usecase.NewCatalogUseCase(products),
		usecase.NewBasketUseCase(baskets, products, loyalty, promoUC, pricer),
		usecase.NewCheckoutUseCase(baskets, products, loyalty, orders, payments, promoUC, pricer, gateway, publisher, logger),
		usecase.NewOrderUseCase(orders, payments, gateway, publisher, logger),
		usecase.NewDeliveryUseCase(deliveries, orders, users, locations, publisher, logger),
		promoUC,
		usecase.NewWalletUseCase(wallets, gateway),
		usecase.NewLoyaltyUseCase(loyalty, wallets),
		usecase.NewFinanceUseCase(finance),
		usecase.NewChatUseCase(chats, notifications),
		usecase.NewNotificationUseCase(notifications, publisher, logger),
	)

	return &routerFixture{
		engine:   Setup(facade, logger),
		users:    users,
		sessions: sessions,
		products: products,
		orders:   orders,
		payments: payments,
	}
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept-Encoding", "identity")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (bool, map[string]any) {
	t.Helper()
	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
		Error   string         `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v\nbody: %s", err, w.Body.String())
	}
	return resp.Success, resp.Data
}

func (f *routerFixture) registerCustomer(t *testing.T, email string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"name":     "Ana",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}
	ok, data := decodeEnvelope(t, w)
	if !ok {
		t.Fatalf("register envelope not successful")
	}
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("register returned no token")
	}
	return token
}

// seedStaff creates a non-customer account with a live session, bypassing the
// customer-only self-service registration.
func (f *routerFixture) seedStaff(t *testing.T, email string, role model.Role) string {
	t.Helper()
	user, err := f.users.Create(context.Background(), email, "Staff", "", "hash:pw", role)
	if err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	token := "staff-" + email
	f.sessions.Sessions[token] = &model.Session{Token: token, UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	return token
}

func TestPublicAndProtectedRoutes(t *testing.T) {
	f := newRouterFixture(t)
	f.products.Add(model.Product{Name: "Ribeye", Category: "beef", Unit: model.UnitKilogram, Price: decimal.NewFromInt(20), VATable: true, Active: true}, decimal.NewFromInt(10))

	if w := f.do(t, http.MethodGet, "/api/products", "", nil); w.Code != http.StatusOK {
		t.Fatalf("public products status = %d", w.Code)
	}
	if w := f.do(t, http.MethodGet, "/api/basket", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated basket status = %d, want 401", w.Code)
	}

	token := f.registerCustomer(t, "ana@shop.test")
	if w := f.do(t, http.MethodGet, "/api/basket", token, nil); w.Code != http.StatusOK {
		t.Fatalf("basket status = %d", w.Code)
	}
	if w := f.do(t, http.MethodGet, "/api/auth/me", token, nil); w.Code != http.StatusOK {
		t.Fatalf("me status = %d", w.Code)
	}
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	f := newRouterFixture(t)
	p := f.products.Add(model.Product{Name: "Ribeye", Category: "beef", Unit: model.UnitKilogram, Price: decimal.NewFromInt(100), VATable: true, Active: true}, decimal.NewFromInt(10))
	token := f.registerCustomer(t, "ana@shop.test")

	w := f.do(t, http.MethodPost, "/api/basket/items", token, map[string]any{
		"product_id": p.ID,
		"quantity":   "2",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add item status = %d, body %s", w.Code, w.Body.String())
	}

	w = f.do(t, http.MethodGet, "/api/basket/quote", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("quote status = %d", w.Code)
	}
	_, data := decodeEnvelope(t, w)
	// 200 subtotal + 10% VAT + 5 delivery.
	if data["total"] != "225.00" {
		t.Fatalf("quote total = %v, want 225.00", data["total"])
	}

	w = f.do(t, http.MethodPost, "/api/orders", token, map[string]string{
		"method":  "cod",
		"address": "21 Butcher Row",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout status = %d, body %s", w.Code, w.Body.String())
	}
	ok, data := decodeEnvelope(t, w)
	if !ok || data["status"] != "NEW" {
		t.Fatalf("checkout envelope = %s", w.Body.String())
	}

	w = f.do(t, http.MethodGet, "/api/orders", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("orders status = %d", w.Code)
	}
}

func TestCheckoutEmptyBasketOverHTTP(t *testing.T) {
	f := newRouterFixture(t)
	token := f.registerCustomer(t, "ana@shop.test")

	w := f.do(t, http.MethodPost, "/api/orders", token, map[string]string{
		"method":  "cod",
		"address": "21 Butcher Row",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty basket checkout status = %d, want 400", w.Code)
	}
	ok, _ := decodeEnvelope(t, w)
	if ok {
		t.Fatalf("error envelope marked successful")
	}
}

func TestRoleEnforcement(t *testing.T) {
	f := newRouterFixture(t)
	customer := f.registerCustomer(t, "ana@shop.test")
	driver := f.seedStaff(t, "driver@shop.test", model.RoleDriver)
	admin := f.seedStaff(t, "admin@shop.test", model.RoleAdmin)

	if w := f.do(t, http.MethodGet, "/api/admin/orders?status=NEW", customer, nil); w.Code != http.StatusForbidden {
		t.Fatalf("customer on admin route status = %d, want 403", w.Code)
	}
	if w := f.do(t, http.MethodGet, "/api/driver/deliveries", customer, nil); w.Code != http.StatusForbidden {
		t.Fatalf("customer on driver route status = %d, want 403", w.Code)
	}
	if w := f.do(t, http.MethodGet, "/api/driver/deliveries", driver, nil); w.Code != http.StatusOK {
		t.Fatalf("driver deliveries status = %d", w.Code)
	}
	if w := f.do(t, http.MethodGet, "/api/admin/orders?status=NEW", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("admin orders status = %d", w.Code)
	}
	if w := f.do(t, http.MethodGet, "/api/basket", driver, nil); w.Code != http.StatusForbidden {
		t.Fatalf("driver on customer route status = %d, want 403", w.Code)
	}
}

func TestAdminOrderStatusOverHTTP(t *testing.T) {
	f := newRouterFixture(t)
	admin := f.seedStaff(t, "admin@shop.test", model.RoleAdmin)

	order := &model.Order{ID: 1, Number: "ord-1", CustomerID: 7, Status: model.OrderStatusNew}
	f.orders.Orders[order.ID] = order
	f.orders.Next = 2
	f.payments.Payments[order.ID] = &model.Payment{OrderID: order.ID, Method: model.PaymentMethodCOD, Status: model.PaymentStatusPending}

	w := f.do(t, http.MethodPatch, "/api/admin/orders/1/status", admin, map[string]string{"status": "CONFIRMED"})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm status = %d, body %s", w.Code, w.Body.String())
	}

	w = f.do(t, http.MethodPatch, "/api/admin/orders/1/status", admin, map[string]string{"status": "DELIVERED"})
	if w.Code != http.StatusConflict {
		t.Fatalf("invalid transition status = %d, want 409", w.Code)
	}
}

func TestChatUnreadOverHTTP(t *testing.T) {
	f := newRouterFixture(t)
	customer := f.registerCustomer(t, "ana@shop.test")
	admin := f.seedStaff(t, "admin@shop.test", model.RoleAdmin)

	w := f.do(t, http.MethodGet, "/api/chat", customer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("conversation status = %d, body %s", w.Code, w.Body.String())
	}
	_, data := decodeEnvelope(t, w)
	id, _ := data["id"].(float64)
	if id == 0 {
		t.Fatalf("conversation id missing: %v", data)
	}
	thread := "/api/chat/" + strconv.FormatInt(int64(id), 10)

	w = f.do(t, http.MethodPost, thread+"/messages", admin, map[string]string{"body": "your order is packed"})
	if w.Code != http.StatusCreated {
		t.Fatalf("staff message status = %d, body %s", w.Code, w.Body.String())
	}

	w = f.do(t, http.MethodGet, thread+"/unread", customer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unread status = %d, body %s", w.Code, w.Body.String())
	}
	_, data = decodeEnvelope(t, w)
	if data["unread"] != float64(1) {
		t.Fatalf("unread = %v, want 1", data["unread"])
	}

	if w := f.do(t, http.MethodGet, thread+"/messages", customer, nil); w.Code != http.StatusOK {
		t.Fatalf("messages status = %d", w.Code)
	}
	w = f.do(t, http.MethodGet, thread+"/unread", customer, nil)
	_, data = decodeEnvelope(t, w)
	if data["unread"] != float64(0) {
		t.Fatalf("unread after reading = %v, want 0", data["unread"])
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	f := newRouterFixture(t)
	token := f.registerCustomer(t, "ana@shop.test")

	if w := f.do(t, http.MethodPost, "/api/auth/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	if w := f.do(t, http.MethodGet, "/api/basket", token, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("post-logout basket status = %d, want 401", w.Code)
	}
}
