package repository

import (
	"context"
	"time"

	"github.com/polkiloo/meatmarket/internal/domain/model"
)

// UserRepository describes persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, email, name, phone, passwordHash string, role model.Role) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
}

// SessionRepository stores bearer tokens with expiry.
type SessionRepository interface {
	Create(ctx context.Context, token string, userID int64, expiresAt time.Time) (*model.Session, error)
	Get(ctx context.Context, token string) (*model.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
