package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRenderIndex(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return r.Render(c, "index.html", PageData{
			Title:    "All Posts",
			LoggedIn: true,
			Posts: []*models.Post{
				{ID: 1, Title: "Hello World", Subtitle: "greetings", Date: "April 05, 2024",
					User: models.User{Username: "alice"}},
			},
		})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body := readBody(t, resp)
	assert.Contains(t, body, "Hello World")
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "April 05, 2024")
}

func TestRenderEscapesPostContent(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return r.Render(c, "post.html", PageData{
			Title: "x",
			Post: &models.Post{
				ID: 1, Title: "<script>alert(1)</script>", Subtitle: "s",
				Date: "April 05, 2024", Body: "b", User: models.User{Username: "alice"},
			},
		})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	body := readBody(t, resp)
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRenderStatusSetsCode(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return r.RenderStatus(c, http.StatusNotFound, "error.html", PageData{
			Title: "Not Found",
			Flash: &Flash{Message: "missing", Category: "danger"},
		})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "missing")
}
