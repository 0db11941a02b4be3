package model

import "time"

// ConversationStatus marks whether support still has the thread open.
type ConversationStatus string

const (
	ConversationOpen   ConversationStatus = "OPEN"
	ConversationClosed ConversationStatus = "CLOSED"
)

// Conversation is a support thread between a customer and the shop.
type Conversation struct {
	ID         int64
	CustomerID int64
	Status     ConversationStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ChatMessage is one message inside a conversation.
type ChatMessage struct {
	ID             int64
	ConversationID int64
	SenderID       int64
	SenderRole     Role
	Body           string
	Read           bool
	SentAt         time.Time
}
