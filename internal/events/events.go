package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TypeOrderCreated       = "OrderCreated"
	TypeOrderStatusChanged = "OrderStatusChanged"
	TypeDeliveryUpdated    = "DeliveryUpdated"
	TypeNotification       = "NotificationDispatched"
)

const (
	TopicOrders        = "shop.orders"
	TopicDeliveries    = "shop.deliveries"
	TopicNotifications = "shop.notifications"
)

// Envelope wraps every published event.
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Wrap builds an envelope around a payload.
func Wrap(eventType string, payload any) (*Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}, nil
}

// OrderEventPayload describes order lifecycle events.
type OrderEventPayload struct {
	OrderID    int64  `json:"order_id"`
	Number     string `json:"number"`
	CustomerID int64  `json:"customer_id"`
	Status     string `json:"status"`
	Total      string `json:"total,omitempty"`
}

// DeliveryEventPayload describes delivery progress events.
type DeliveryEventPayload struct {
	DeliveryID int64  `json:"delivery_id"`
	OrderID    int64  `json:"order_id"`
	DriverID   int64  `json:"driver_id"`
	Status     string `json:"status"`
}

// NotificationEventPayload mirrors a dispatched notification.
type NotificationEventPayload struct {
	NotificationID int64  `json:"notification_id"`
	UserID         int64  `json:"user_id"`
	Kind           string `json:"kind"`
	Title          string `json:"title"`
}
