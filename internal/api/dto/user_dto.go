package dto

import (
	"time"

	"github.com/spec-kit/pos-service/internal/domain"
)

// UserDTO is the public view of a user. It never carries the password hash.
type UserDTO struct {
	ID          int64           `json:"id"`
	FullName    string          `json:"fullName"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Role        domain.UserRole `json:"role"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	LastLoginAt *time.Time      `json:"lastLoginAt,omitempty"`
}

// NewUserDTO maps a domain user.
func NewUserDTO(user *domain.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}

// NewUserDTOs maps a list of users.
func NewUserDTOs(users []domain.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, NewUserDTO(&users[i]))
	}
	return out
}
