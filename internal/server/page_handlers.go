package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// About renders the static about page.
func (s *Server) About(c *fiber.Ctx) error {
	return s.renderer.Render(c, "about.html", s.pageData(c, "About"))
}

// Contact renders the static contact page.
func (s *Server) Contact(c *fiber.Ctx) error {
	return s.renderer.Render(c, "contact.html", s.pageData(c, "Contact"))
}

// NotFoundPage is the fallback for unmatched routes.
func (s *Server) NotFoundPage(c *fiber.Ctx) error {
	return s.renderError(c, &models.AppError{
		Code:    models.CodeNotFound,
		Message: "The page you were looking for does not exist",
	})
}
