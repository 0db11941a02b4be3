package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordHasher(t *testing.T) {
	hasher := newPasswordHasher()
	bcryptHasher, ok := hasher.(*BcryptHasher)
	if !ok {
		t.Fatalf("expected *BcryptHasher, got %T", hasher)
	}
	if bcryptHasher.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", bcryptHasher.cost)
	}
}

func TestNewTokenGenerator(t *testing.T) {
	gen := newTokenGenerator()
	if _, ok := gen.(*RandomTokenGenerator); !ok {
		t.Fatalf("expected *RandomTokenGenerator, got %T", gen)
	}
}
