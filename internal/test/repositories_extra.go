package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
)

// DeliveryRepositoryStub stores deliveries in-memory for tests.
type DeliveryRepositoryStub struct {
	Deliveries map[int64]*model.Delivery
	Points     map[int64][]model.TrackingPoint
	Next       int64
	Err        error
}

// NewDeliveryRepositoryStub constructs stub repository with initialized maps.
func NewDeliveryRepositoryStub() *DeliveryRepositoryStub {
	return &DeliveryRepositoryStub{
		Deliveries: make(map[int64]*model.Delivery),
		Points:     make(map[int64][]model.TrackingPoint),
		Next:       1,
	}
}

// Assign creates a delivery in ASSIGNED state.
func (s *DeliveryRepositoryStub) Assign(ctx context.Context, orderID, driverID int64) (*model.Delivery, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, d := range s.Deliveries {
		if d.OrderID == orderID {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	delivery := &model.Delivery{ID: s.Next, OrderID: orderID, DriverID: driverID, Status: model.DeliveryStatusAssigned}
	s.Next++
	s.Deliveries[delivery.ID] = delivery
	return delivery, nil
}

// GetByID fetches a delivery or returns not found.
func (s *DeliveryRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Delivery, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if delivery, ok := s.Deliveries[id]; ok {
		return delivery, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByOrder fetches the delivery of an order.
func (s *DeliveryRepositoryStub) GetByOrder(ctx context.Context, orderID int64) (*model.Delivery, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, delivery := range s.Deliveries {
		if delivery.OrderID == orderID {
			return delivery, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByDriver returns a driver's deliveries.
func (s *DeliveryRepositoryStub) ListByDriver(ctx context.Context, driverID int64, activeOnly bool) ([]model.Delivery, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var deliveries []model.Delivery
	for _, delivery := range s.Deliveries {
		if delivery.DriverID != driverID {
			continue
		}
		if activeOnly && (delivery.Status == model.DeliveryStatusDelivered || delivery.Status == model.DeliveryStatusFailed) {
			continue
		}
		deliveries = append(deliveries, *delivery)
	}
	return deliveries, nil
}

// Transition applies the delivery status machine.
func (s *DeliveryRepositoryStub) Transition(ctx context.Context, deliveryID int64, to model.DeliveryStatus) (*model.Delivery, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	delivery, ok := s.Deliveries[deliveryID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if !model.CanTransitionDelivery(delivery.Status, to) {
		return nil, domainErrors.ErrInvalidTransition
	}
	delivery.Status = to
	return delivery, nil
}

// AddTrackingPoint appends a position to the delivery trail.
func (s *DeliveryRepositoryStub) AddTrackingPoint(ctx context.Context, deliveryID int64, lat, lon float64) (*model.TrackingPoint, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	point := model.TrackingPoint{
		ID:         int64(len(s.Points[deliveryID]) + 1),
		DeliveryID: deliveryID,
		Latitude:   lat,
		Longitude:  lon,
		RecordedAt: time.Now(),
	}
	s.Points[deliveryID] = append(s.Points[deliveryID], point)
	return &point, nil
}

// ListTrackingPoints returns trail entries after since.
func (s *DeliveryRepositoryStub) ListTrackingPoints(ctx context.Context, deliveryID int64, since time.Time) ([]model.TrackingPoint, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var points []model.TrackingPoint
	for _, point := range s.Points[deliveryID] {
		if point.RecordedAt.After(since) {
			points = append(points, point)
		}
	}
	return points, nil
}

// WalletRepositoryStub stores wallets in-memory for tests.
type WalletRepositoryStub struct {
	Balances map[int64]decimal.Decimal
	History  []model.WalletTransaction
	Err      error
}

// NewWalletRepositoryStub constructs stub repository with initialized map.
func NewWalletRepositoryStub() *WalletRepositoryStub {
	return &WalletRepositoryStub{Balances: make(map[int64]decimal.Decimal)}
}

// Get returns the wallet, zero balance when never touched.
func (s *WalletRepositoryStub) Get(ctx context.Context, customerID int64) (*model.Wallet, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return &model.Wallet{CustomerID: customerID, Balance: s.Balances[customerID]}, nil
}

// TopUp credits the balance.
func (s *WalletRepositoryStub) TopUp(ctx context.Context, customerID int64, amount decimal.Decimal) error {
	if s.Err != nil {
		return s.Err
	}
	s.Balances[customerID] = s.Balances[customerID].Add(amount)
	s.History = append(s.History, model.WalletTransaction{CustomerID: customerID, Kind: model.WalletTxTopUp, Amount: amount})
	return nil
}

// Credit refunds an order amount to the balance.
func (s *WalletRepositoryStub) Credit(ctx context.Context, customerID int64, amount decimal.Decimal, orderID *int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.Balances[customerID] = s.Balances[customerID].Add(amount)
	s.History = append(s.History, model.WalletTransaction{CustomerID: customerID, Kind: model.WalletTxRefund, Amount: amount, OrderID: orderID})
	return nil
}

// Transactions returns the recorded history for the customer.
func (s *WalletRepositoryStub) Transactions(ctx context.Context, customerID int64) ([]model.WalletTransaction, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var txs []model.WalletTransaction
	for _, tx := range s.History {
		if tx.CustomerID == customerID {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

// LoyaltyRepositoryStub stores points accounts in-memory for tests.
type LoyaltyRepositoryStub struct {
	Accounts map[int64]*model.LoyaltyAccount
	Wallets  *WalletRepositoryStub
	Err      error
}

// NewLoyaltyRepositoryStub constructs stub repository with initialized map.
func NewLoyaltyRepositoryStub(wallets *WalletRepositoryStub) *LoyaltyRepositoryStub {
	return &LoyaltyRepositoryStub{Accounts: make(map[int64]*model.LoyaltyAccount), Wallets: wallets}
}

// Get returns the account, zero when never touched.
func (s *LoyaltyRepositoryStub) Get(ctx context.Context, customerID int64) (*model.LoyaltyAccount, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if account, ok := s.Accounts[customerID]; ok {
		return account, nil
	}
	return &model.LoyaltyAccount{CustomerID: customerID}, nil
}

// Redeem converts points into wallet credit.
func (s *LoyaltyRepositoryStub) Redeem(ctx context.Context, customerID int64, points int64, credit decimal.Decimal) error {
	if s.Err != nil {
		return s.Err
	}
	account, ok := s.Accounts[customerID]
	if !ok || account.Points < points {
		return domainErrors.ErrInsufficientPoints
	}
	account.Points -= points
	if s.Wallets != nil {
		return s.Wallets.TopUp(ctx, customerID, credit)
	}
	return nil
}

// ChatRepositoryStub stores conversations in-memory for tests.
type ChatRepositoryStub struct {
	Conversations map[int64]*model.Conversation
	Messages      map[int64][]model.ChatMessage
	Next          int64
	Err           error
}

// NewChatRepositoryStub constructs stub repository with initialized maps.
func NewChatRepositoryStub() *ChatRepositoryStub {
	return &ChatRepositoryStub{
		Conversations: make(map[int64]*model.Conversation),
		Messages:      make(map[int64][]model.ChatMessage),
		Next:          1,
	}
}

// GetOrCreateConversation returns the customer's open thread.
func (s *ChatRepositoryStub) GetOrCreateConversation(ctx context.Context, customerID int64) (*model.Conversation, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, conversation := range s.Conversations {
		if conversation.CustomerID == customerID && conversation.Status == model.ConversationOpen {
			return conversation, nil
		}
	}
	conversation := &model.Conversation{ID: s.Next, CustomerID: customerID, Status: model.ConversationOpen}
	s.Next++
	s.Conversations[conversation.ID] = conversation
	return conversation, nil
}

// GetConversation fetches one thread.
func (s *ChatRepositoryStub) GetConversation(ctx context.Context, id int64) (*model.Conversation, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if conversation, ok := s.Conversations[id]; ok {
		return conversation, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListOpen returns open threads.
func (s *ChatRepositoryStub) ListOpen(ctx context.Context) ([]model.Conversation, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var open []model.Conversation
	for _, conversation := range s.Conversations {
		if conversation.Status == model.ConversationOpen {
			open = append(open, *conversation)
		}
	}
	return open, nil
}

// Close marks a thread closed.
func (s *ChatRepositoryStub) Close(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	conversation, ok := s.Conversations[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	conversation.Status = model.ConversationClosed
	return nil
}

// AddMessage appends a message to a thread.
func (s *ChatRepositoryStub) AddMessage(ctx context.Context, conversationID, senderID int64, role model.Role, body string) (*model.ChatMessage, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	message := model.ChatMessage{
		ID:             int64(len(s.Messages[conversationID]) + 1),
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderRole:     role,
		Body:           body,
		SentAt:         time.Now(),
	}
	s.Messages[conversationID] = append(s.Messages[conversationID], message)
	return &message, nil
}

// ListMessages returns messages after since.
func (s *ChatRepositoryStub) ListMessages(ctx context.Context, conversationID int64, since time.Time) ([]model.ChatMessage, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var messages []model.ChatMessage
	for _, message := range s.Messages[conversationID] {
		if message.SentAt.After(since) {
			messages = append(messages, message)
		}
	}
	return messages, nil
}

// MarkRead marks the other side's messages read.
func (s *ChatRepositoryStub) MarkRead(ctx context.Context, conversationID int64, reader model.Role) error {
	if s.Err != nil {
		return s.Err
	}
	messages := s.Messages[conversationID]
	for i := range messages {
		if messages[i].SenderRole != reader {
			messages[i].Read = true
		}
	}
	return nil
}

// UnreadCount counts unread messages from the other side.
func (s *ChatRepositoryStub) UnreadCount(ctx context.Context, conversationID int64, reader model.Role) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	var count int64
	for _, message := range s.Messages[conversationID] {
		if message.SenderRole != reader && !message.Read {
			count++
		}
	}
	return count, nil
}

// NotificationRepositoryStub stores notifications in-memory for tests.
type NotificationRepositoryStub struct {
	Notifications []model.Notification
	Next          int64
	Err           error
}

// NewNotificationRepositoryStub constructs an empty stub.
func NewNotificationRepositoryStub() *NotificationRepositoryStub {
	return &NotificationRepositoryStub{Next: 1}
}

// Create stores a notification.
func (s *NotificationRepositoryStub) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *n
	stored.ID = s.Next
	s.Next++
	s.Notifications = append(s.Notifications, stored)
	return &stored, nil
}

// ListByUser returns the user's notifications.
func (s *NotificationRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var items []model.Notification
	for _, n := range s.Notifications {
		if n.UserID == userID {
			items = append(items, n)
		}
	}
	return items, nil
}

// MarkRead marks one of the user's notifications read.
func (s *NotificationRepositoryStub) MarkRead(ctx context.Context, userID, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Notifications {
		if s.Notifications[i].ID == id && s.Notifications[i].UserID == userID {
			s.Notifications[i].Read = true
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// ClaimUnsent claims a batch of unsent notifications and marks them sent.
func (s *NotificationRepositoryStub) ClaimUnsent(ctx context.Context, limit int) ([]model.Notification, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var batch []model.Notification
	for i := range s.Notifications {
		if len(batch) >= limit {
			break
		}
		if !s.Notifications[i].Sent {
			s.Notifications[i].Sent = true
			batch = append(batch, s.Notifications[i])
		}
	}
	return batch, nil
}
