package test

import (
	"context"
	"errors"

	"github.com/polkiloo/meatmarket/internal/domain/model"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// TokenGeneratorStub issues deterministic session tokens.
type TokenGeneratorStub struct {
	GenerateFn func() (string, error)
	Token      string
}

// Generate returns the configured token.
func (s TokenGeneratorStub) Generate() (string, error) {
	if s.GenerateFn != nil {
		return s.GenerateFn()
	}
	if s.Token != "" {
		return s.Token, nil
	}
	return "token", nil
}

// TokenResolverStub implements the middleware token resolution contract.
type TokenResolverStub struct {
	User      *model.User
	Err       error
	ResolveFn func(context.Context, string) (*model.User, error)
}

// ResolveToken either delegates to the override or returns the stored user.
func (s TokenResolverStub) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.User != nil {
		return s.User, nil
	}
	return &model.User{ID: 1, Role: model.RoleCustomer}, nil
}
