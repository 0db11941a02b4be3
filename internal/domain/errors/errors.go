package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSessionExpired      = errors.New("session expired")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyBasket         = errors.New("basket is empty")
	ErrProductInactive     = errors.New("product is not available")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientPoints  = errors.New("insufficient points")
	ErrPromoInvalid        = errors.New("promo code is not applicable")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrConversationClosed  = errors.New("conversation is closed")
	ErrInvalidPeriod       = errors.New("invalid reporting period")
)
