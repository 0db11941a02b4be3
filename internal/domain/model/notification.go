package model

import "time"

// NotificationKind classifies what triggered a notification.
type NotificationKind string

const (
	NotificationOrderStatus NotificationKind = "ORDER_STATUS"
	NotificationDelivery    NotificationKind = "DELIVERY"
	NotificationChat        NotificationKind = "CHAT"
)

// Notification is a per-user message created by the system and delivered by
// the background dispatcher.
type Notification struct {
	ID        int64
	UserID    int64
	Kind      NotificationKind
	Title     string
	Body      string
	OrderID   *int64
	Read      bool
	Sent      bool
	CreatedAt time.Time
}
