package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pos-service/internal/domain"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

func validSignUp() SignUpRequest {
	return SignUpRequest{
		FullName: "Ada Cashier",
		Email:    "ada@pos.test",
		Password: "correct horse",
		Phone:    "5551234567",
		Role:     domain.RoleCashier,
	}
}

func TestSignUpRequest_Validate(t *testing.T) {
	assert.NoError(t, validSignUp().Validate())

	cases := map[string]func(*SignUpRequest){
		"email":    func(r *SignUpRequest) { r.Email = "not-an-email" },
		"password": func(r *SignUpRequest) { r.Password = "short" },
		"fullName": func(r *SignUpRequest) { r.FullName = "" },
		"role":     func(r *SignUpRequest) { r.Role = "ROLE_ROOT" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			req := validSignUp()
			mutate(&req)

			err := req.Validate()
			require.Error(t, err)

			de := apperrors.ToDomainError(ValidationError(err))
			assert.Equal(t, apperrors.CodeValidationFailed, de.Code)
			assert.Contains(t, de.Details, field)
		})
	}
}

func TestSignUpRequest_AdminRolePassesPayloadRules(t *testing.T) {
	req := validSignUp()
	req.Role = domain.RoleAdmin
	assert.NoError(t, req.Validate())
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, LoginRequest{Email: "ada@pos.test", Password: "x"}.Validate())
	assert.Error(t, LoginRequest{Email: "ada@pos.test"}.Validate())
	assert.Error(t, LoginRequest{Password: "x"}.Validate())
}

func TestUserDTO_OmitsPasswordHash(t *testing.T) {
	user := &domain.User{
		ID:           1,
		Email:        "ada@pos.test",
		PasswordHash: "$2a$10$abcdef",
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
	}
	raw, err := json.Marshal(NewUserDTO(user))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "$2a$")
	assert.Contains(t, string(raw), `"fullName"`)
	assert.NotContains(t, string(raw), "lastLoginAt")
}
