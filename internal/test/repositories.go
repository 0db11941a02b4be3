package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, name, phone, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, Name: name, Phone: phone, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByRole returns stored users with the given role.
func (s *UserRepositoryStub) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var users []model.User
	for _, u := range s.ByID {
		if u.Role == role {
			users = append(users, *u)
		}
	}
	return users, nil
}

// SessionRepositoryStub stores sessions in-memory for tests.
type SessionRepositoryStub struct {
	Sessions map[string]*model.Session
	Err      error
	Deleted  []string
}

// NewSessionRepositoryStub constructs stub repository with initialized map.
func NewSessionRepositoryStub() *SessionRepositoryStub {
	return &SessionRepositoryStub{Sessions: make(map[string]*model.Session)}
}

// Create stores a session under its token.
func (s *SessionRepositoryStub) Create(ctx context.Context, token string, userID int64, expiresAt time.Time) (*model.Session, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	session := &model.Session{Token: token, UserID: userID, ExpiresAt: expiresAt}
	s.Sessions[token] = session
	return session, nil
}

// Get fetches a session by token.
func (s *SessionRepositoryStub) Get(ctx context.Context, token string) (*model.Session, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if session, ok := s.Sessions[token]; ok {
		return session, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Delete removes a session and records the token.
func (s *SessionRepositoryStub) Delete(ctx context.Context, token string) error {
	if s.Err != nil {
		return s.Err
	}
	delete(s.Sessions, token)
	s.Deleted = append(s.Deleted, token)
	return nil
}

// DeleteExpired removes sessions past their expiry.
func (s *SessionRepositoryStub) DeleteExpired(ctx context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	var removed int64
	now := time.Now()
	for token, session := range s.Sessions {
		if session.Expired(now) {
			delete(s.Sessions, token)
			removed++
		}
	}
	return removed, nil
}

// ProductRepositoryStub stores products in-memory for tests.
type ProductRepositoryStub struct {
	Products map[int64]*model.Product
	Stocks   map[int64]*model.Stock
	Next     int64
	Err      error
}

// NewProductRepositoryStub constructs stub repository with initialized maps.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{
		Products: make(map[int64]*model.Product),
		Stocks:   make(map[int64]*model.Stock),
		Next:     1,
	}
}

// Add seeds a product with stock for tests.
func (s *ProductRepositoryStub) Add(p model.Product, quantity decimal.Decimal) *model.Product {
	if p.ID == 0 {
		p.ID = s.Next
		s.Next++
	}
	stored := p
	s.Products[stored.ID] = &stored
	s.Stocks[stored.ID] = &model.Stock{ProductID: stored.ID, Quantity: quantity}
	return &stored
}

// Create stores a new product with zero stock.
func (s *ProductRepositoryStub) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Add(*p, decimal.Zero), nil
}

// Update replaces an existing product.
func (s *ProductRepositoryStub) Update(ctx context.Context, p *model.Product) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[p.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := *p
	s.Products[p.ID] = &stored
	return nil
}

// GetByID fetches a product or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Products[id]; ok {
		return p, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List filters stored products.
func (s *ProductRepositoryStub) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var products []model.Product
	for _, p := range s.Products {
		if filter.OnlyActive && !p.Active {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.InStock {
			stock := s.Stocks[p.ID]
			if stock == nil || !stock.Available().IsPositive() {
				continue
			}
		}
		products = append(products, *p)
	}
	return products, nil
}

// GetStock fetches stock for a product.
func (s *ProductRepositoryStub) GetStock(ctx context.Context, productID int64) (*model.Stock, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if stock, ok := s.Stocks[productID]; ok {
		return stock, nil
	}
	return nil, domainErrors.ErrNotFound
}

// AdjustStock applies a delta to on-hand quantity.
func (s *ProductRepositoryStub) AdjustStock(ctx context.Context, productID int64, delta decimal.Decimal) (*model.Stock, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stock, ok := s.Stocks[productID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	next := stock.Quantity.Add(delta)
	if next.LessThan(stock.Reserved) {
		return nil, domainErrors.ErrInsufficientStock
	}
	stock.Quantity = next
	return stock, nil
}

// BasketRepositoryStub stores a single basket per customer for tests.
type BasketRepositoryStub struct {
	Baskets  map[int64]*model.Basket
	NextItem int64
	Err      error
	Cleared  []int64
}

// NewBasketRepositoryStub constructs stub repository with initialized map.
func NewBasketRepositoryStub() *BasketRepositoryStub {
	return &BasketRepositoryStub{Baskets: make(map[int64]*model.Basket), NextItem: 1}
}

// GetOrCreate returns the customer's basket, creating one when absent.
func (s *BasketRepositoryStub) GetOrCreate(ctx context.Context, customerID int64) (*model.Basket, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if basket, ok := s.Baskets[customerID]; ok {
		return basket, nil
	}
	basket := &model.Basket{ID: customerID, CustomerID: customerID}
	s.Baskets[customerID] = basket
	return basket, nil
}

// AddItem appends or merges a line into the basket.
func (s *BasketRepositoryStub) AddItem(ctx context.Context, basketID, productID int64, name string, unitPrice, quantity decimal.Decimal) (*model.BasketItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	basket := s.findBasket(basketID)
	if basket == nil {
		return nil, domainErrors.ErrNotFound
	}
	for i := range basket.Items {
		if basket.Items[i].ProductID == productID {
			basket.Items[i].Quantity = basket.Items[i].Quantity.Add(quantity)
			return &basket.Items[i], nil
		}
	}
	item := model.BasketItem{ID: s.NextItem, BasketID: basketID, ProductID: productID, Name: name, UnitPrice: unitPrice, Quantity: quantity}
	s.NextItem++
	basket.Items = append(basket.Items, item)
	return &basket.Items[len(basket.Items)-1], nil
}

// UpdateItem changes a line's quantity.
func (s *BasketRepositoryStub) UpdateItem(ctx context.Context, basketID, itemID int64, quantity decimal.Decimal) error {
	if s.Err != nil {
		return s.Err
	}
	basket := s.findBasket(basketID)
	if basket == nil {
		return domainErrors.ErrNotFound
	}
	for i := range basket.Items {
		if basket.Items[i].ID == itemID {
			basket.Items[i].Quantity = quantity
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// RemoveItem deletes a line.
func (s *BasketRepositoryStub) RemoveItem(ctx context.Context, basketID, itemID int64) error {
	if s.Err != nil {
		return s.Err
	}
	basket := s.findBasket(basketID)
	if basket == nil {
		return domainErrors.ErrNotFound
	}
	for i := range basket.Items {
		if basket.Items[i].ID == itemID {
			basket.Items = append(basket.Items[:i], basket.Items[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// Clear drops all lines from the basket.
func (s *BasketRepositoryStub) Clear(ctx context.Context, basketID int64) error {
	if s.Err != nil {
		return s.Err
	}
	if basket := s.findBasket(basketID); basket != nil {
		basket.Items = nil
	}
	s.Cleared = append(s.Cleared, basketID)
	return nil
}

func (s *BasketRepositoryStub) findBasket(basketID int64) *model.Basket {
	for _, basket := range s.Baskets {
		if basket.ID == basketID {
			return basket
		}
	}
	return nil
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn     func(context.Context, *model.Order, model.PaymentMethod, *int64) (*model.Order, *model.Payment, error)
	TransitionFn func(context.Context, int64, model.OrderStatus) (*model.Order, error)

	Orders      map[int64]*model.Order
	Next        int64
	Transitions []OrderTransitionCall
	Err         error
}

// OrderTransitionCall records one Transition invocation.
type OrderTransitionCall struct {
	OrderID int64
	To      model.OrderStatus
}

// NewOrderRepositoryStub constructs stub repository with initialized map.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

// Create stores the order with status NEW unless overridden.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order, method model.PaymentMethod, promoID *int64) (*model.Order, *model.Payment, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order, method, promoID)
	}
	if s.Err != nil {
		return nil, nil, s.Err
	}
	stored := *order
	stored.ID = s.Next
	s.Next++
	stored.Status = model.OrderStatusNew
	s.Orders[stored.ID] = &stored
	payment := &model.Payment{ID: stored.ID, OrderID: stored.ID, Method: method, Status: model.PaymentStatusPending, Amount: stored.Total}
	return &stored, payment, nil
}

// GetByID fetches an order or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if order, ok := s.Orders[id]; ok {
		return order, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByNumber fetches an order by its public number.
func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, order := range s.Orders {
		if order.Number == number {
			return order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByCustomer returns the customer's orders.
func (s *OrderRepositoryStub) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var orders []model.Order
	for _, order := range s.Orders {
		if order.CustomerID == customerID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

// ListByStatus returns orders currently in the given status.
func (s *OrderRepositoryStub) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var orders []model.Order
	for _, order := range s.Orders {
		if order.Status == status {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

// Transition applies the status machine to a stored order.
func (s *OrderRepositoryStub) Transition(ctx context.Context, orderID int64, to model.OrderStatus) (*model.Order, error) {
	s.Transitions = append(s.Transitions, OrderTransitionCall{OrderID: orderID, To: to})
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, orderID, to)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if !model.CanTransition(order.Status, to) {
		return nil, domainErrors.ErrInvalidTransition
	}
	order.Status = to
	return order, nil
}

// PaymentRepositoryStub stores payments keyed by order.
type PaymentRepositoryStub struct {
	Payments map[int64]*model.Payment
	Paid     []string
	Err      error
}

// NewPaymentRepositoryStub constructs stub repository with initialized map.
func NewPaymentRepositoryStub() *PaymentRepositoryStub {
	return &PaymentRepositoryStub{Payments: make(map[int64]*model.Payment)}
}

// GetByOrder fetches the payment of an order.
func (s *PaymentRepositoryStub) GetByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if payment, ok := s.Payments[orderID]; ok {
		return payment, nil
	}
	return nil, domainErrors.ErrNotFound
}

// MarkPaid settles a pending payment.
func (s *PaymentRepositoryStub) MarkPaid(ctx context.Context, orderID int64, gatewayRef string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Paid = append(s.Paid, gatewayRef)
	if payment, ok := s.Payments[orderID]; ok {
		payment.Status = model.PaymentStatusPaid
		payment.GatewayRef = gatewayRef
		return nil
	}
	s.Payments[orderID] = &model.Payment{OrderID: orderID, Status: model.PaymentStatusPaid, GatewayRef: gatewayRef}
	return nil
}

// PromoRepositoryStub stores promo codes in-memory.
type PromoRepositoryStub struct {
	Promos map[string]*model.PromoCode
	Next   int64
	Err    error
}

// NewPromoRepositoryStub constructs stub repository with initialized map.
func NewPromoRepositoryStub() *PromoRepositoryStub {
	return &PromoRepositoryStub{Promos: make(map[string]*model.PromoCode), Next: 1}
}

// Create stores a promo code.
func (s *PromoRepositoryStub) Create(ctx context.Context, promo *model.PromoCode) (*model.PromoCode, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Promos[promo.Code]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *promo
	stored.ID = s.Next
	s.Next++
	s.Promos[stored.Code] = &stored
	return &stored, nil
}

// Update replaces a stored promo code.
func (s *PromoRepositoryStub) Update(ctx context.Context, promo *model.PromoCode) error {
	if s.Err != nil {
		return s.Err
	}
	for code, stored := range s.Promos {
		if stored.ID == promo.ID {
			delete(s.Promos, code)
			copied := *promo
			s.Promos[copied.Code] = &copied
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// GetByCode fetches a promo code.
func (s *PromoRepositoryStub) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if promo, ok := s.Promos[code]; ok {
		return promo, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored promo codes.
func (s *PromoRepositoryStub) List(ctx context.Context) ([]model.PromoCode, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var promos []model.PromoCode
	for _, promo := range s.Promos {
		promos = append(promos, *promo)
	}
	return promos, nil
}
