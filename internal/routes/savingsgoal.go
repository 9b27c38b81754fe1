package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fintrack/fintrack/internal/savingsgoal"
)

// RegisterGoalRoutes wires savings goal endpoints.
func RegisterGoalRoutes(r fiber.Router, h *savingsgoal.Handler) {
	r.Post("/goals", h.Create)
	r.Get("/goals", h.List)
	r.Get("/goals/:id", h.Get)
	r.Put("/goals/:id", h.Update)
	r.Post("/goals/:id/deposit", h.Deposit)
	r.Delete("/goals/:id", h.Delete)
}
