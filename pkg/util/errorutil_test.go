package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	wrapped := fmt.Errorf("lookup: %w", NewForbidden("insufficient role"))
	de := ToDomainError(wrapped)
	assert.Equal(t, CodeForbidden, de.Code)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)

	assert.Equal(t, CodeNotFound, ToDomainError(sql.ErrNoRows).Code)
	assert.Equal(t, CodeNotFound, ToDomainError(pgx.ErrNoRows).Code)

	boom := errors.New("boom")
	internal := ToDomainError(boom)
	assert.Equal(t, CodeInternal, internal.Code)
	assert.Equal(t, "internal server error", internal.Message)
	assert.ErrorIs(t, internal, boom)
}

func TestConstructorsCarryStatus(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad", nil), CodeValidationFailed, http.StatusBadRequest},
		{NewCredentialFailure(), CodeInvalidCredentials, http.StatusUnauthorized},
		{NewTokenFailure("invalid token", nil), CodeInvalidToken, http.StatusUnauthorized},
		{NewUnauthorized("authentication required"), CodeUnauthorized, http.StatusUnauthorized},
		{NewForbidden("insufficient role"), CodeForbidden, http.StatusForbidden},
		{NewNotFound("user", nil), CodeNotFound, http.StatusNotFound},
		{NewInternalError(nil), CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		de := ToDomainError(tc.err)
		require.NotNil(t, de)
		assert.Equal(t, tc.code, de.Code)
		assert.Equal(t, tc.status, de.HTTPStatus)
	}
}

func TestCredentialFailureIsFixed(t *testing.T) {
	assert.Equal(t, NewCredentialFailure().Error(), NewCredentialFailure().Error())
	assert.Equal(t, "invalid credentials", NewCredentialFailure().Error())
}

func TestTokenFailureWrapsCause(t *testing.T) {
	cause := errors.New("signature is invalid")
	err := NewTokenFailure("invalid token", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid token: signature is invalid", err.Error())
}

func TestFromStatus(t *testing.T) {
	assert.Equal(t, CodeNotFound, FromStatus(http.StatusNotFound, "Cannot GET /nope").Code)
	assert.Equal(t, CodeUnauthorized, FromStatus(http.StatusUnauthorized, "").Code)
	assert.Equal(t, CodeForbidden, FromStatus(http.StatusForbidden, "").Code)
	assert.Equal(t, CodeValidationFailed, FromStatus(http.StatusUnprocessableEntity, "").Code)
	assert.Equal(t, CodeInternal, FromStatus(http.StatusBadGateway, "").Code)

	de := FromStatus(http.StatusMethodNotAllowed, "")
	assert.Equal(t, http.StatusText(http.StatusMethodNotAllowed), de.Message)
}
