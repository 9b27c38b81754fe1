package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fintrack/fintrack/internal/credential"
	"github.com/fintrack/fintrack/internal/identity"
	"github.com/fintrack/fintrack/internal/middleware"
)

// RegisterUserRoutes wires the authenticated profile endpoints.
func RegisterUserRoutes(r fiber.Router, ids *identity.Service) {
	r.Get("/users/me", func(c *fiber.Ctx) error {
		user, ok := middleware.SessionUser(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "authentication required")
		}
		return c.JSON(fiber.Map{
			"id":           user.ID.String(),
			"email":        user.Email,
			"username":     user.Username,
			"first_name":   user.FirstName,
			"last_name":    user.LastName,
			"phone_number": user.PhoneNumber,
			"currency":     user.Currency,
			"is_active":    user.IsActive,
			"created_at":   user.CreatedAt.UTC().Format(time.RFC3339),
		})
	})

	r.Post("/users/me/password", func(c *fiber.Ctx) error {
		user, ok := middleware.SessionUser(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "authentication required")
		}
		var req struct {
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid request body")
		}
		err := ids.ChangePassword(c.UserContext(), user.ID, req.CurrentPassword, req.NewPassword)
		switch {
		case err == nil:
			return c.JSON(fiber.Map{"status": "password updated"})
		case errors.Is(err, identity.ErrInvalidCredentials):
			return fiber.NewError(http.StatusUnauthorized, "current password is incorrect")
		case errors.Is(err, credential.ErrWeakPassword):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "password change failed")
		}
	})
}
