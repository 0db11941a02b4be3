package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/domain/repository"
	pkgAuth "github.com/polkiloo/meatmarket/internal/pkg/auth"
)

// AuthUseCase handles account lifecycle and session management.
type AuthUseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.TokenGenerator
	ttl      time.Duration
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, sessions repository.SessionRepository, hasher pkgAuth.PasswordHasher, tokens pkgAuth.TokenGenerator, ttl time.Duration) *AuthUseCase {
	return &AuthUseCase{users: users, sessions: sessions, hasher: hasher, tokens: tokens, ttl: ttl}
}

// Register creates a new account and opens a session.
func (u *AuthUseCase) Register(ctx context.Context, email, name, phone, password string, role model.Role) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !ValidateEmail(email) || !ValidatePassword(password) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, email, strings.TrimSpace(name), strings.TrimSpace(phone), hash, role)
	if err != nil {
		return nil, "", err
	}

	token, err := u.openSession(ctx, usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and opens a session.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.openSession(ctx, usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

func (u *AuthUseCase) openSession(ctx context.Context, userID int64) (string, error) {
	token, err := u.tokens.Generate()
	if err != nil {
		return "", err
	}
	if _, err := u.sessions.Create(ctx, token, userID, time.Now().Add(u.ttl)); err != nil {
		return "", err
	}
	return token, nil
}

// ResolveToken maps a bearer token onto its user. Expired sessions are
// deleted on sight.
func (u *AuthUseCase) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidToken
	}

	session, err := u.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, pkgAuth.ErrInvalidToken
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		_ = u.sessions.Delete(ctx, token)
		return nil, domainErrors.ErrSessionExpired
	}

	return u.users.GetByID(ctx, session.UserID)
}

// Logout deletes the session behind a token.
func (u *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return pkgAuth.ErrInvalidToken
	}
	return u.sessions.Delete(ctx, token)
}

// PurgeExpiredSessions removes sessions past their expiry.
func (u *AuthUseCase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx)
}

// GetByID fetches a user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// ListDrivers returns all driver accounts for assignment pickers.
func (u *AuthUseCase) ListDrivers(ctx context.Context) ([]model.User, error) {
	return u.users.ListByRole(ctx, model.RoleDriver)
}
