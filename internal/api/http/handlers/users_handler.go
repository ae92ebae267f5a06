package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/updoc-health/updoc/internal/api/dto"
	"github.com/updoc-health/updoc/internal/service"
	apperrors "github.com/updoc-health/updoc/pkg/util"
)

// UsersHandler exposes the identity boundary.
type UsersHandler struct {
	identity *service.IdentityService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(identity *service.IdentityService) *UsersHandler {
	return &UsersHandler{identity: identity}
}

// SignupOrLogin handles POST /api/signup_or_login. First use of a
// username creates the account; later calls verify the password.
func (h *UsersHandler) SignupOrLogin(c *fiber.Ctx) error {
	var req dto.SignupOrLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.identity.SignupOrLogin(req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(dto.FromUser(user))
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users := h.identity.List()
	items := make([]dto.User, 0, len(users))
	for _, user := range users {
		items = append(items, dto.FromUser(user))
	}
	return c.JSON(items)
}
