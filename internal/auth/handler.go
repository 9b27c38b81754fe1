package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fintrack/fintrack/internal/credential"
	"github.com/fintrack/fintrack/internal/identity"
	"github.com/fintrack/fintrack/internal/notification"
)

// Handler exposes auth endpoints for register/login/refresh.
type Handler struct {
	ids      *identity.Service
	svc      *Service
	notifier notification.Notifier
}

// NewHandler constructs an auth HTTP handler.
func NewHandler(ids *identity.Service, svc *Service, notifier notification.Notifier) *Handler {
	return &Handler{ids: ids, svc: svc, notifier: notifier}
}

type registerRequest struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Currency    string `json:"currency"`
	Password    string `json:"password"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Currency    string `json:"currency"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
}

func toUserResponse(user identity.User) userResponse {
	return userResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		Currency:    user.Currency,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Register handles account creation.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.ids.Register(c.UserContext(), identity.RegisterInput{
		Email:       req.Email,
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Currency:    req.Currency,
		Password:    req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrDuplicate):
			return fiber.NewError(http.StatusConflict, identity.ErrDuplicate.Error())
		case errors.Is(err, credential.ErrWeakPassword), errors.Is(err, identity.ErrMissingFields):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "registration failed")
		}
	}

	if h.notifier != nil {
		_ = h.notifier.Send(c.UserContext(), notification.Message{
			Kind:        notification.KindWelcome,
			Destination: user.Email,
			Body:        "Welcome to FinTrack, " + user.Username,
		})
	}

	return c.Status(http.StatusCreated).JSON(toUserResponse(user))
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresAt    string       `json:"expires_at"`
	User         userResponse `json:"user"`
}

// Login validates credentials and returns a token pair.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	user, pair, err := h.svc.Login(c.UserContext(), req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrAccountLocked):
			return fiber.NewError(http.StatusForbidden, identity.ErrAccountLocked.Error())
		case errors.Is(err, identity.ErrInvalidCredentials):
			return fiber.NewError(http.StatusUnauthorized, identity.ErrInvalidCredentials.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "login failed")
		}
	}

	return c.Status(http.StatusOK).JSON(loginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresAt:    pair.AccessExpiresAt.UTC().Format(time.RFC3339),
		User:         toUserResponse(user),
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh issues a new access token using a valid refresh token.
func (h *Handler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	access, expiresAt, err := h.svc.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInactive):
			return fiber.NewError(http.StatusForbidden, ErrInactive.Error())
		case errors.Is(err, ErrLookupFailed):
			return fiber.NewError(http.StatusServiceUnavailable, ErrLookupFailed.Error())
		default:
			return fiber.NewError(http.StatusUnauthorized, "invalid refresh token")
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"access_token": access,
		"token_type":   "bearer",
		"expires_at":   expiresAt.UTC().Format(time.RFC3339),
	})
}
