package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/meatmarket/internal/server/http/dto"
	"github.com/polkiloo/meatmarket/internal/server/http/middleware"
)

// ChatHandler serves support conversations and the notification feed.
type ChatHandler struct {
	facade ChatFacade
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(facade ChatFacade) *ChatHandler {
	return &ChatHandler{facade: facade}
}

// Conversation handles GET /api/chat: the customer's open thread, created on
// first use.
func (h *ChatHandler) Conversation(c *gin.Context) {
	user := middleware.CurrentUser(c)
	conversation, err := h.facade.Conversation(c.Request.Context(), user.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewConversationResponse(conversation))
}

// OpenConversations handles GET /api/admin/chats.
func (h *ChatHandler) OpenConversations(c *gin.Context) {
	conversations, err := h.facade.OpenConversations(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	resp := make([]dto.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		resp = append(resp, dto.NewConversationResponse(&conversations[i]))
	}
	respondData(c, http.StatusOK, resp)
}

// Close handles POST /api/admin/chats/:id/close.
func (h *ChatHandler) Close(c *gin.Context) {
	conversationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.CloseConversation(c.Request.Context(), conversationID); err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, nil)
}

// SendMessage handles POST /api/chat/:id/messages.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	user := middleware.CurrentUser(c)
	conversationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	message, err := h.facade.SendMessage(c.Request.Context(), conversationID, user, req.Body)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusCreated, dto.NewMessageResponse(message))
}

// Messages handles GET /api/chat/:id/messages?since=.
func (h *ChatHandler) Messages(c *gin.Context) {
	user := middleware.CurrentUser(c)
	conversationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	since, ok := parseSince(c)
	if !ok {
		return
	}
	messages, err := h.facade.Messages(c.Request.Context(), conversationID, user, since)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	resp := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		resp = append(resp, dto.NewMessageResponse(&messages[i]))
	}
	respondData(c, http.StatusOK, resp)
}

// Unread handles GET /api/chat/:id/unread.
func (h *ChatHandler) Unread(c *gin.Context) {
	user := middleware.CurrentUser(c)
	conversationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	unread, err := h.facade.UnreadMessages(c.Request.Context(), conversationID, user)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.UnreadResponse{Unread: unread})
}

// Notifications handles GET /api/notifications.
func (h *ChatHandler) Notifications(c *gin.Context) {
	user := middleware.CurrentUser(c)
	items, err := h.facade.Notifications(c.Request.Context(), user.ID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, dto.NewNotificationResponses(items))
}

// MarkNotificationRead handles POST /api/notifications/:id/read.
func (h *ChatHandler) MarkNotificationRead(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.MarkNotificationRead(c.Request.Context(), user.ID, id); err != nil {
		respondDomainError(c, err)
		return
	}
	respondData(c, http.StatusOK, nil)
}
