package dto

import (
	"time"

	"github.com/polkiloo/meatmarket/internal/domain/model"
)

// MessageRequest posts a chat message.
type MessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// ConversationResponse is one support thread.
type ConversationResponse struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MessageResponse is one chat message.
type MessageResponse struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	SenderRole string    `json:"sender_role"`
	Body       string    `json:"body"`
	Read       bool      `json:"read"`
	SentAt     time.Time `json:"sent_at"`
}

// UnreadResponse reports pending messages from the other side of a thread.
type UnreadResponse struct {
	Unread int64 `json:"unread"`
}

// NotificationResponse is one feed entry.
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	OrderID   *int64    `json:"order_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NewConversationResponse converts a conversation model.
func NewConversationResponse(c *model.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		Status:     string(c.Status),
		UpdatedAt:  c.UpdatedAt,
	}
}

// NewMessageResponse converts a chat message model.
func NewMessageResponse(m *model.ChatMessage) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		SenderRole: string(m.SenderRole),
		Body:       m.Body,
		Read:       m.Read,
		SentAt:     m.SentAt,
	}
}

// NewNotificationResponses converts a notification feed.
func NewNotificationResponses(items []model.Notification) []NotificationResponse {
	resp := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		resp = append(resp, NotificationResponse{
			ID:        n.ID,
			Kind:      string(n.Kind),
			Title:     n.Title,
			Body:      n.Body,
			OrderID:   n.OrderID,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return resp
}
