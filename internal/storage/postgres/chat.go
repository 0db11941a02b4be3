package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
)

type chatRepository struct {
	storage *Storage
}

type notificationRepository struct {
	storage *Storage
}

func (r *chatRepository) GetOrCreateConversation(ctx context.Context, customerID int64) (*model.Conversation, error) {
	const existing = `SELECT id, customer_id, status, created_at, updated_at
                      FROM conversations
                      WHERE customer_id=$1 AND status='OPEN'
                      ORDER BY created_at DESC LIMIT 1`
	var c model.Conversation
	err := r.storage.pool.QueryRow(ctx, existing, customerID).
		Scan(&c.ID, &c.CustomerID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	const insert = `INSERT INTO conversations (customer_id) VALUES ($1)
                    RETURNING id, customer_id, status, created_at, updated_at`
	if err := r.storage.pool.QueryRow(ctx, insert, customerID).
		Scan(&c.ID, &c.CustomerID, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *chatRepository) GetConversation(ctx context.Context, id int64) (*model.Conversation, error) {
	const query = `SELECT id, customer_id, status, created_at, updated_at FROM conversations WHERE id=$1`
	var c model.Conversation
	err := r.storage.pool.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.CustomerID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *chatRepository) ListOpen(ctx context.Context) ([]model.Conversation, error) {
	const query = `SELECT id, customer_id, status, created_at, updated_at
                   FROM conversations WHERE status='OPEN' ORDER BY updated_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Conversation
	for rows.Next() {
		var c model.Conversation
		if err := rows.Scan(&c.ID, &c.CustomerID, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *chatRepository) Close(ctx context.Context, id int64) error {
	const query = `UPDATE conversations SET status='CLOSED', updated_at=NOW() WHERE id=$1 AND status='OPEN'`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *chatRepository) AddMessage(ctx context.Context, conversationID, senderID int64, role model.Role, body string) (*model.ChatMessage, error) {
	msg := model.ChatMessage{ConversationID: conversationID, SenderID: senderID, SenderRole: role, Body: body}
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO chat_messages (conversation_id, sender_id, sender_role, body)
                        VALUES ($1, $2, $3, $4) RETURNING id, sent_at`
		if err := tx.QueryRow(ctx, insert, conversationID, senderID, role, body).Scan(&msg.ID, &msg.SentAt); err != nil {
			return err
		}
		const touch = `UPDATE conversations SET updated_at=NOW() WHERE id=$1`
		_, err := tx.Exec(ctx, touch, conversationID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *chatRepository) ListMessages(ctx context.Context, conversationID int64, since time.Time) ([]model.ChatMessage, error) {
	const query = `SELECT id, conversation_id, sender_id, sender_role, body, read, sent_at
                   FROM chat_messages
                   WHERE conversation_id=$1 AND sent_at > $2
                   ORDER BY sent_at`
	rows, err := r.storage.pool.Query(ctx, query, conversationID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.SenderRole, &m.Body, &m.Read, &m.SentAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkRead marks messages sent by the other side as read.
func (r *chatRepository) MarkRead(ctx context.Context, conversationID int64, reader model.Role) error {
	const query = `UPDATE chat_messages SET read=TRUE
                   WHERE conversation_id=$1 AND sender_role <> $2 AND NOT read`
	_, err := r.storage.pool.Exec(ctx, query, conversationID, reader)
	return err
}

func (r *chatRepository) UnreadCount(ctx context.Context, conversationID int64, reader model.Role) (int64, error) {
	const query = `SELECT COUNT(*) FROM chat_messages
                   WHERE conversation_id=$1 AND sender_role <> $2 AND NOT read`
	var count int64
	if err := r.storage.pool.QueryRow(ctx, query, conversationID, reader).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// --- NotificationRepository implementation ---

// notifyTx inserts a notification inside an ongoing transaction so status
// changes and their notifications commit together.
func (s *Storage) notifyTx(ctx context.Context, tx pgx.Tx, userID int64, kind model.NotificationKind, title, body string, orderID *int64) error {
	const query = `INSERT INTO notifications (user_id, kind, title, body, order_id) VALUES ($1, $2, $3, $4, $5)`
	_, err := tx.Exec(ctx, query, userID, kind, title, body, orderID)
	return err
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	const query = `INSERT INTO notifications (user_id, kind, title, body, order_id)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	if err := r.storage.pool.QueryRow(ctx, query, n.UserID, n.Kind, n.Title, n.Body, n.OrderID).
		Scan(&n.ID, &n.CreatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	const query = `SELECT id, user_id, kind, title, body, order_id, read, sent, created_at
                   FROM notifications WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Body, &n.OrderID, &n.Read, &n.Sent, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, id int64) error {
	const query = `UPDATE notifications SET read=TRUE WHERE id=$1 AND user_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// ClaimUnsent picks a batch of unsent notifications with FOR UPDATE SKIP
// LOCKED and marks them sent, so concurrent dispatchers never claim the same
// rows.
func (r *notificationRepository) ClaimUnsent(ctx context.Context, limit int) ([]model.Notification, error) {
	const selectQuery = `SELECT id, user_id, kind, title, body, order_id, read, sent, created_at
                         FROM notifications
                         WHERE NOT sent
                         ORDER BY created_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var claimed []model.Notification
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var n model.Notification
			if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Body, &n.OrderID, &n.Read, &n.Sent, &n.CreatedAt); err != nil {
				return err
			}
			claimed = append(claimed, n)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range claimed {
			if _, err := tx.Exec(ctx, `UPDATE notifications SET sent=TRUE WHERE id=$1`, claimed[i].ID); err != nil {
				return err
			}
			claimed[i].Sent = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}
