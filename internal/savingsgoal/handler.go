package savingsgoal

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fintrack/fintrack/internal/middleware"
	"github.com/fintrack/fintrack/internal/uid"
)

// Handler exposes savings goal endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a savings goal HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type goalRequest struct {
	Name        string `json:"name"`
	TargetCents int64  `json:"target_cents"`
	Deadline    string `json:"deadline"`
}

type goalResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TargetCents int64  `json:"target_cents"`
	SavedCents  int64  `json:"saved_cents"`
	Achieved    bool   `json:"achieved"`
	Deadline    string `json:"deadline"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toResponse(goal Goal) goalResponse {
	return goalResponse{
		ID:          goal.ID.String(),
		Name:        goal.Name,
		TargetCents: goal.TargetCents,
		SavedCents:  goal.SavedCents,
		Achieved:    goal.Achieved(),
		Deadline:    goal.Deadline.Format(time.RFC3339),
		CreatedAt:   goal.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   goal.UpdatedAt.Format(time.RFC3339),
	}
}

func parseGoalRequest(c *fiber.Ctx) (Input, error) {
	var req goalRequest
	if err := c.BodyParser(&req); err != nil {
		return Input{}, fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	input := Input{Name: req.Name, TargetCents: req.TargetCents}
	if req.Deadline != "" {
		deadline, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			return Input{}, fiber.NewError(http.StatusBadRequest, "deadline must be RFC3339")
		}
		input.Deadline = deadline
	}
	return input, nil
}

// Create handles POST /goals.
func (h *Handler) Create(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	input, err := parseGoalRequest(c)
	if err != nil {
		return err
	}

	goal, err := h.service.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(goal))
}

// List handles GET /goals.
func (h *Handler) List(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	goals, err := h.service.List(c.UserContext(), user.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "list goals failed")
	}

	out := make([]goalResponse, 0, len(goals))
	for _, goal := range goals {
		out = append(out, toResponse(goal))
	}
	return c.JSON(out)
}

// Get handles GET /goals/:id.
func (h *Handler) Get(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid goal id")
	}

	goal, err := h.service.Get(c.UserContext(), user.ID, id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(goal))
}

// Update handles PUT /goals/:id.
func (h *Handler) Update(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid goal id")
	}

	input, err := parseGoalRequest(c)
	if err != nil {
		return err
	}

	goal, err := h.service.Update(c.UserContext(), user.ID, id, input)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(goal))
}

type depositRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

// Deposit handles POST /goals/:id/deposit.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid goal id")
	}

	var req depositRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}

	goal, err := h.service.Deposit(c.UserContext(), user.ID, id, req.AmountCents)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(goal))
}

// Delete handles DELETE /goals/:id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid goal id")
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
	case errors.Is(err, ErrEmptyName), errors.Is(err, ErrInvalidTarget), errors.Is(err, ErrInvalidDeposit):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, "goal operation failed")
	}
}
