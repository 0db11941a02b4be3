package usecase

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValidateEmail performs a light sanity check; real verification happens when
// the customer receives mail.
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}

const minPasswordLength = 6

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) bool {
	return len(password) >= minPasswordLength
}

// PositiveAmount reports whether a money or quantity value is usable.
func PositiveAmount(v decimal.Decimal) bool {
	return v.IsPositive()
}
