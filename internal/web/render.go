// Package web renders the application's HTML pages. Templates are embedded in
// the binary; the rendering engine itself is the standard library's
// html/template and is treated as a black box.
package web

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"inkwell/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageData is the payload handed to every template.
type PageData struct {
	Title         string
	LoggedIn      bool
	CurrentUserID uint
	Flash         *Flash
	Posts         []*models.Post
	Post          *models.Post
	Form          map[string]string
	IsEdit        bool
}

// Renderer executes embedded HTML templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render executes the named template and writes the result as the response
// body. A pending flash message, if any, is consumed into the page data.
func (r *Renderer) Render(c *fiber.Ctx, name string, data PageData) error {
	if data.Flash == nil {
		data.Flash = PopFlash(c)
	}
	if data.Form == nil {
		data.Form = map[string]string{}
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// RenderStatus renders the named template with an explicit HTTP status.
func (r *Renderer) RenderStatus(c *fiber.Ctx, status int, name string, data PageData) error {
	c.Status(status)
	return r.Render(c, name, data)
}
