package dto

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/spec-kit/pos-service/internal/domain"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// SignUpRequest payload for new users.
type SignUpRequest struct {
	FullName string          `json:"fullName"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Phone    string          `json:"phone"`
	Role     domain.UserRole `json:"role"`
}

// Validate runs the payload rules.
func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.Phone, validation.Length(0, 32)),
		validation.Field(&r.Role, validation.Required, validation.By(knownRole)),
	)
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs the payload rules.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Message   string    `json:"message"`
	User      UserDTO   `json:"user"`
}

// ValidationError converts ozzo validation errors into a VALIDATION_FAILED error.
func ValidationError(err error) error {
	details := map[string]any{}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, fieldErr := range fieldErrs {
			details[field] = fieldErr.Error()
		}
	} else {
		details["payload"] = err.Error()
	}
	return apperrors.NewValidationError("invalid payload", details)
}

func knownRole(value interface{}) error {
	role, _ := value.(domain.UserRole)
	if role == "" {
		return nil
	}
	_, err := domain.ParseUserRole(string(role))
	return err
}
