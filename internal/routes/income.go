package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fintrack/fintrack/internal/income"
)

// RegisterIncomeRoutes wires income tracking endpoints.
func RegisterIncomeRoutes(r fiber.Router, h *income.Handler) {
	r.Post("/incomes", h.Create)
	r.Get("/incomes", h.List)
	r.Get("/incomes/:id", h.Get)
	r.Put("/incomes/:id", h.Update)
	r.Delete("/incomes/:id", h.Delete)
}
