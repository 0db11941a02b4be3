package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

type sessionRepository struct {
	storage *Storage
}

func (r *userRepository) Create(ctx context.Context, email, name, phone, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (email, name, phone, password_hash, role)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, name, phone, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = email
	u.Name = name
	u.Phone = phone
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, name, phone, password_hash, role, created_at FROM users WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, name, phone, password_hash, role, created_at FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	const query = `SELECT id, email, name, phone, password_hash, role, created_at
                   FROM users WHERE role=$1 ORDER BY name, id`
	rows, err := r.storage.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *sessionRepository) Create(ctx context.Context, token string, userID int64, expiresAt time.Time) (*model.Session, error) {
	const query = `INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3) RETURNING created_at`
	var s model.Session
	if err := r.storage.pool.QueryRow(ctx, query, token, userID, expiresAt).Scan(&s.CreatedAt); err != nil {
		return nil, err
	}
	s.Token = token
	s.UserID = userID
	s.ExpiresAt = expiresAt
	return &s, nil
}

func (r *sessionRepository) Get(ctx context.Context, token string) (*model.Session, error) {
	const query = `SELECT token, user_id, expires_at, created_at FROM sessions WHERE token=$1`
	var s model.Session
	err := r.storage.pool.QueryRow(ctx, query, token).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE token=$1`
	_, err := r.storage.pool.Exec(ctx, query, token)
	return err
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at <= NOW()`
	tag, err := r.storage.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
