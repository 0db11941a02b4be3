package repository

import (
	"context"
	"time"

	"github.com/polkiloo/meatmarket/internal/domain/model"
)

// ChatRepository stores support conversations and messages.
type ChatRepository interface {
	GetOrCreateConversation(ctx context.Context, customerID int64) (*model.Conversation, error)
	GetConversation(ctx context.Context, id int64) (*model.Conversation, error)
	ListOpen(ctx context.Context) ([]model.Conversation, error)
	Close(ctx context.Context, id int64) error
	AddMessage(ctx context.Context, conversationID, senderID int64, role model.Role, body string) (*model.ChatMessage, error)
	ListMessages(ctx context.Context, conversationID int64, since time.Time) ([]model.ChatMessage, error)
	MarkRead(ctx context.Context, conversationID int64, reader model.Role) error
	UnreadCount(ctx context.Context, conversationID int64, reader model.Role) (int64, error)
}

// NotificationRepository stores user notifications. ClaimUnsent picks a batch
// with FOR UPDATE SKIP LOCKED and marks it sent so concurrent dispatchers
// never deliver twice.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID, id int64) error
	ClaimUnsent(ctx context.Context, limit int) ([]model.Notification, error)
}
