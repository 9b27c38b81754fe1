package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fintrack/fintrack/internal/auth"
	"github.com/fintrack/fintrack/internal/identity"
)

const sessionUserKey = "session_user"

// Session returns a middleware that resolves the bearer token into the
// authenticated user and stores it in request locals. Store outages map
// to 503 so clients can retry; everything else is an auth failure.
func Session(resolver *auth.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		bearer := strings.TrimSpace(authz[len("Bearer "):])

		user, err := resolver.Resolve(c.UserContext(), bearer)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrLookupFailed):
				return fiber.NewError(http.StatusServiceUnavailable, "identity store unavailable")
			case errors.Is(err, auth.ErrInactive):
				return fiber.NewError(http.StatusForbidden, "account is inactive")
			default:
				return fiber.NewError(http.StatusUnauthorized, "invalid session token")
			}
		}

		c.Locals(sessionUserKey, user)
		c.Locals("user_id", user.ID.String())
		return c.Next()
	}
}

// SessionUser returns the user resolved by the Session middleware.
func SessionUser(c *fiber.Ctx) (identity.User, bool) {
	user, ok := c.Locals(sessionUserKey).(identity.User)
	return user, ok
}
