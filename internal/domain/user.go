package domain

import "time"

// User is the domain model for point-of-sale operators.
type User struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	Phone        string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}
