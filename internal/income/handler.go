package income

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fintrack/fintrack/internal/middleware"
	"github.com/fintrack/fintrack/internal/uid"
)

// Handler exposes income endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an income HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type incomeRequest struct {
	CategoryID  string `json:"category_id"`
	Source      string `json:"source"`
	AmountCents int64  `json:"amount_cents"`
	Frequency   string `json:"frequency"`
	ReceivedAt  string `json:"received_at"`
}

type incomeResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"category_id"`
	Source      string `json:"source"`
	AmountCents int64  `json:"amount_cents"`
	Frequency   string `json:"frequency"`
	ReceivedAt  string `json:"received_at"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toResponse(inc Income) incomeResponse {
	return incomeResponse{
		ID:          inc.ID.String(),
		CategoryID:  inc.CategoryID.String(),
		Source:      string(inc.Source),
		AmountCents: inc.AmountCents,
		Frequency:   string(inc.Frequency),
		ReceivedAt:  inc.ReceivedAt.Format(time.RFC3339),
		CreatedAt:   inc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   inc.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) parseInput(c *fiber.Ctx) (Input, error) {
	var req incomeRequest
	if err := c.BodyParser(&req); err != nil {
		return Input{}, fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	categoryID, err := uid.Parse(req.CategoryID)
	if err != nil {
		return Input{}, fiber.NewError(http.StatusBadRequest, "invalid category id")
	}
	input := Input{
		CategoryID:  categoryID,
		Source:      Source(req.Source),
		AmountCents: req.AmountCents,
		Frequency:   Frequency(req.Frequency),
	}
	if req.ReceivedAt != "" {
		receivedAt, err := time.Parse(time.RFC3339, req.ReceivedAt)
		if err != nil {
			return Input{}, fiber.NewError(http.StatusBadRequest, "received_at must be RFC3339")
		}
		input.ReceivedAt = receivedAt
	}
	return input, nil
}

// Create handles POST /incomes.
func (h *Handler) Create(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	input, err := h.parseInput(c)
	if err != nil {
		return err
	}

	inc, err := h.service.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(inc))
}

// List handles GET /incomes.
func (h *Handler) List(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	incs, err := h.service.List(c.UserContext(), user.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "list incomes failed")
	}

	out := make([]incomeResponse, 0, len(incs))
	for _, inc := range incs {
		out = append(out, toResponse(inc))
	}
	return c.JSON(out)
}

// Get handles GET /incomes/:id.
func (h *Handler) Get(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid income id")
	}

	inc, err := h.service.Get(c.UserContext(), user.ID, id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(inc))
}

// Update handles PUT /incomes/:id.
func (h *Handler) Update(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid income id")
	}

	input, err := h.parseInput(c)
	if err != nil {
		return err
	}

	inc, err := h.service.Update(c.UserContext(), user.ID, id, input)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(inc))
}

// Delete handles DELETE /incomes/:id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid income id")
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
	case errors.Is(err, ErrInvalidSource), errors.Is(err, ErrInvalidFrequency),
		errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrUnknownCategory):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, "income operation failed")
	}
}
