package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fintrack/fintrack/internal/category"
)

// RegisterCategoryRoutes wires budget category endpoints.
func RegisterCategoryRoutes(r fiber.Router, h *category.Handler) {
	r.Post("/categories", h.Create)
	r.Get("/categories", h.List)
	r.Get("/categories/:id", h.Get)
	r.Put("/categories/:id", h.Update)
	r.Delete("/categories/:id", h.Delete)
}
