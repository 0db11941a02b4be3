package model

import "time"

// Role distinguishes storefront customers from delivery drivers and back-office staff.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleAdmin    Role = "admin"
)

// User represents a registered account.
type User struct {
	ID           int64
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
