package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pos-service/internal/api/dto"
	"github.com/spec-kit/pos-service/internal/auth"
	"github.com/spec-kit/pos-service/internal/service"
	apperrors "github.com/spec-kit/pos-service/pkg/util"
)

// UsersHandler exposes user lookups for authenticated callers.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Profile handles GET /api/users/profile.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromCtx(c.UserContext())
	user, err := h.users.CurrentUser(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserDTO(user))
}

// GetByID handles GET /api/users/:id.
func (h *UsersHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid user id", map[string]any{"id": c.Params("id")})
	}
	user, err := h.users.GetByID(c.UserContext(), int64(id))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserDTO(user))
}

// GetByEmail handles GET /api/super-admin/users/by-email?email=.
func (h *UsersHandler) GetByEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return apperrors.NewValidationError("email query parameter is required", nil)
	}
	user, err := h.users.GetByEmail(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserDTO(user))
}

// List handles GET /api/super-admin/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserDTOs(users))
}
