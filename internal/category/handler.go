package category

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fintrack/fintrack/internal/middleware"
	"github.com/fintrack/fintrack/internal/uid"
)

// Handler exposes category endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a category HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type categoryRequest struct {
	Name        string `json:"name"`
	BudgetLimit int64  `json:"budget_limit"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BudgetLimit int64  `json:"budget_limit"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toResponse(cat Category) categoryResponse {
	return categoryResponse{
		ID:          cat.ID.String(),
		Name:        cat.Name,
		BudgetLimit: cat.BudgetLimit,
		Kind:        string(cat.Kind),
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   cat.UpdatedAt.Format(time.RFC3339),
	}
}

// Create handles POST /categories.
func (h *Handler) Create(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	cat, err := h.service.Create(c.UserContext(), user.ID, CreateInput{
		Name:        req.Name,
		BudgetLimit: req.BudgetLimit,
		Kind:        Kind(req.Kind),
		Description: req.Description,
	})
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(cat))
}

// List handles GET /categories.
func (h *Handler) List(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	cats, err := h.service.List(c.UserContext(), user.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "list categories failed")
	}

	out := make([]categoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toResponse(cat))
	}
	return c.JSON(out)
}

// Get handles GET /categories/:id.
func (h *Handler) Get(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid category id")
	}

	cat, err := h.service.Get(c.UserContext(), user.ID, id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(cat))
}

// Update handles PUT /categories/:id.
func (h *Handler) Update(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid category id")
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	cat, err := h.service.Update(c.UserContext(), user.ID, id, CreateInput{
		Name:        req.Name,
		BudgetLimit: req.BudgetLimit,
		Kind:        Kind(req.Kind),
		Description: req.Description,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(cat))
}

// Delete handles DELETE /categories/:id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid category id")
	}

	if err := h.service.Delete(c.UserContext(), user.ID, id); err != nil {
		return mapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, ErrNotFound.Error())
	case errors.Is(err, ErrInvalidKind), errors.Is(err, ErrEmptyName):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, "category operation failed")
	}
}
