package expense

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fintrack/fintrack/internal/middleware"
	"github.com/fintrack/fintrack/internal/uid"
)

// Handler exposes expense endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an expense HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type expenseRequest struct {
	CategoryID    string `json:"category_id"`
	Name          string `json:"name"`
	AmountCents   int64  `json:"amount_cents"`
	Remark        string `json:"remark"`
	IsEssential   bool   `json:"is_essential"`
	PaymentMethod string `json:"payment_method"`
}

type expenseResponse struct {
	ID            string `json:"id"`
	CategoryID    string `json:"category_id"`
	Name          string `json:"name"`
	AmountCents   int64  `json:"amount_cents"`
	Remark        string `json:"remark,omitempty"`
	IsEssential   bool   `json:"is_essential"`
	PaymentMethod string `json:"payment_method"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func toResponse(exp Expense) expenseResponse {
	return expenseResponse{
		ID:            exp.ID.String(),
		CategoryID:    exp.CategoryID.String(),
		Name:          exp.Name,
		AmountCents:   exp.AmountCents,
		Remark:        exp.Remark,
		IsEssential:   exp.IsEssential,
		PaymentMethod: string(exp.PaymentMethod),
		CreatedAt:     exp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     exp.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) parseInput(c *fiber.Ctx) (Input, error) {
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return Input{}, fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	categoryID, err := uid.Parse(req.CategoryID)
	if err != nil {
		return Input{}, fiber.NewError(http.StatusBadRequest, "invalid category id")
	}
	return Input{
		CategoryID:    categoryID,
		Name:          req.Name,
		AmountCents:   req.AmountCents,
		Remark:        req.Remark,
		IsEssential:   req.IsEssential,
		PaymentMethod: PaymentMethod(req.PaymentMethod),
	}, nil
}

// Create handles POST /expenses.
func (h *Handler) Create(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	input, err := h.parseInput(c)
	if err != nil {
		return err
	}

	exp, err := h.service.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(toResponse(exp))
}

// List handles GET /expenses.
func (h *Handler) List(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	exps, err := h.service.List(c.UserContext(), user.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "list expenses failed")
	}

	out := make([]expenseResponse, 0, len(exps))
	for _, exp := range exps {
		out = append(out, toResponse(exp))
	}
	return c.JSON(out)
}

// Get handles GET /expenses/:id.
func (h *Handler) Get(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid expense id")
	}

	exp, err := h.service.Get(c.UserContext(), user.ID, id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(exp))
}

// Update handles PUT /expenses/:id.
func (h *Handler) Update(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid expense id")
	}

	input, err := h.parseInput(c)
	if err != nil {
		return err
	}

	exp, err := h.service.Update(c.UserContext(), user.ID, id, input)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(exp))
}

// Delete handles DELETE /expenses/:id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	user, ok := middleware.SessionUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid expense id")
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
	case errors.Is(err, ErrEmptyName), errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidPaymentMethod), errors.Is(err, ErrUnknownCategory):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, "expense operation failed")
	}
}
