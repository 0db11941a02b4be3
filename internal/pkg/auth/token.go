package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrInvalidToken signals a malformed or unknown bearer token.
var ErrInvalidToken = errors.New("invalid auth token")

const tokenBytes = 32

// TokenGenerator produces opaque session tokens. Tokens carry no claims; the
// sessions table is the source of truth for ownership and expiry.
type TokenGenerator interface {
	Generate() (string, error)
}

// RandomTokenGenerator reads tokens from crypto/rand.
type RandomTokenGenerator struct{}

// NewRandomTokenGenerator constructs RandomTokenGenerator.
func NewRandomTokenGenerator() *RandomTokenGenerator {
	return &RandomTokenGenerator{}
}

// Generate returns a URL-safe random token.
func (g *RandomTokenGenerator) Generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
