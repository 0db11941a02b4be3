package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes customer and staff passwords for storage and checks
// login attempts against the stored hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// BcryptHasher is the bcrypt-backed PasswordHasher used in production.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher builds a hasher with the given cost; zero falls back to
// bcrypt's default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
