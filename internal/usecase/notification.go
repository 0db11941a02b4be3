package usecase

import (
	"context"
	"log/slog"

	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
	"github.com/polkiloo/meatmarket/internal/events"
)

// NotificationUseCase serves the in-app notification feed and the background
// dispatch batches.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
	publisher     events.Publisher
	logger        *slog.Logger
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(notifications repository.NotificationRepository, publisher events.Publisher, logger *slog.Logger) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications, publisher: publisher, logger: logger}
}

// List returns the user's notifications, newest first.
func (u *NotificationUseCase) List(ctx context.Context, userID int64) ([]model.Notification, error) {
	return u.notifications.ListByUser(ctx, userID)
}

// MarkRead marks one of the user's notifications read.
func (u *NotificationUseCase) MarkRead(ctx context.Context, userID, id int64) error {
	return u.notifications.MarkRead(ctx, userID, id)
}

// ClaimForDispatch claims up to limit unsent notifications for the background
// dispatcher. Claimed rows are marked sent, so every claim must be published.
func (u *NotificationUseCase) ClaimForDispatch(ctx context.Context, limit int) ([]model.Notification, error) {
	return u.notifications.ClaimUnsent(ctx, limit)
}

// Publish pushes one claimed notification onto the outbound topic.
func (u *NotificationUseCase) Publish(n model.Notification) {
	envelope, err := events.Wrap(events.TypeNotification, events.NotificationEventPayload{
		NotificationID: n.ID,
		UserID:         n.UserID,
		Kind:           string(n.Kind),
		Title:          n.Title,
	})
	if err != nil {
		u.logger.Error("wrap notification event failed", slog.String("error", err.Error()))
		return
	}
	u.publisher.Publish(events.TopicNotifications, string(n.Kind), envelope)
}
