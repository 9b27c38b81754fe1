package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fintrack/fintrack/internal/expense"
)

// RegisterExpenseRoutes wires expense tracking endpoints.
func RegisterExpenseRoutes(r fiber.Router, h *expense.Handler) {
	r.Post("/expenses", h.Create)
	r.Get("/expenses", h.List)
	r.Get("/expenses/:id", h.Get)
	r.Put("/expenses/:id", h.Update)
	r.Delete("/expenses/:id", h.Delete)
}
