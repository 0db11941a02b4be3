package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
)

const maxMessageLength = 4000

// ChatUseCase runs support conversations between customers and staff.
type ChatUseCase struct {
	chats         repository.ChatRepository
	notifications repository.NotificationRepository
}

// NewChatUseCase constructs ChatUseCase.
func NewChatUseCase(chats repository.ChatRepository, notifications repository.NotificationRepository) *ChatUseCase {
	return &ChatUseCase{chats: chats, notifications: notifications}
}

// Conversation returns the customer's open conversation, creating one when
// none exists.
func (u *ChatUseCase) Conversation(ctx context.Context, customerID int64) (*model.Conversation, error) {
	return u.chats.GetOrCreateConversation(ctx, customerID)
}

// ListOpen returns open conversations for the support view.
func (u *ChatUseCase) ListOpen(ctx context.Context) ([]model.Conversation, error) {
	return u.chats.ListOpen(ctx)
}

// Close ends a conversation; further messages are rejected.
func (u *ChatUseCase) Close(ctx context.Context, conversationID int64) error {
	return u.chats.Close(ctx, conversationID)
}

// SendMessage appends a message to a conversation. Customers may only write
// into their own thread; staff replies raise a notification for the customer.
func (u *ChatUseCase) SendMessage(ctx context.Context, conversationID int64, sender *model.User, body string) (*model.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" || len(body) > maxMessageLength {
		return nil, domainErrors.ErrInvalidAmount
	}

	conversation, err := u.chats.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation.Status == model.ConversationClosed {
		return nil, domainErrors.ErrConversationClosed
	}
	if sender.Role == model.RoleCustomer && conversation.CustomerID != sender.ID {
		return nil, domainErrors.ErrForbidden
	}

	message, err := u.chats.AddMessage(ctx, conversationID, sender.ID, sender.Role, body)
	if err != nil {
		return nil, err
	}

	if sender.Role != model.RoleCustomer {
		_, _ = u.notifications.Create(ctx, &model.Notification{
			UserID: conversation.CustomerID,
			Kind:   model.NotificationChat,
			Title:  "Support replied",
			Body:   body,
		})
	}

	return message, nil
}

// Messages lists a conversation's messages after since and marks the other
// side's messages read for the caller.
func (u *ChatUseCase) Messages(ctx context.Context, conversationID int64, reader *model.User, since time.Time) ([]model.ChatMessage, error) {
	conversation, err := u.chats.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if reader.Role == model.RoleCustomer && conversation.CustomerID != reader.ID {
		return nil, domainErrors.ErrForbidden
	}

	messages, err := u.chats.ListMessages(ctx, conversationID, since)
	if err != nil {
		return nil, err
	}
	if err := u.chats.MarkRead(ctx, conversationID, reader.Role); err != nil {
		return nil, err
	}
	return messages, nil
}

// Unread returns how many messages from the other side the caller has not
// read yet. Customers may only ask about their own thread.
func (u *ChatUseCase) Unread(ctx context.Context, conversationID int64, reader *model.User) (int64, error) {
	conversation, err := u.chats.GetConversation(ctx, conversationID)
	if err != nil {
		return 0, err
	}
	if reader.Role == model.RoleCustomer && conversation.CustomerID != reader.ID {
		return 0, domainErrors.ErrForbidden
	}
	return u.chats.UnreadCount(ctx, conversationID, reader.Role)
}
