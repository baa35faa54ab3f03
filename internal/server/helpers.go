package server

import (
	"errors"
	"strconv"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/web"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user ID, or 0 for anonymous
// requests.
func currentUserID(c *fiber.Ctx) uint {
	uid, _ := c.Locals("userID").(uint)
	return uid
}

// pageData returns a PageData with the identity fields filled in. Handlers
// add their own payload on top.
func (s *Server) pageData(c *fiber.Ctx, title string) web.PageData {
	uid := currentUserID(c)
	return web.PageData{
		Title:         title,
		LoggedIn:      uid != 0,
		CurrentUserID: uid,
	}
}

// errResponseWritten signals that parseID already rendered the error page.
var errResponseWritten = errors.New("response already written")

// parseID parses a numeric route parameter. A non-numeric value renders the
// 404 page, same as an ID that matches no row.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = s.renderError(c, models.NewNotFoundError("Post", raw))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// renderError maps an error onto the HTML error page with the right status.
// Unclassified errors become 500s without leaking their message.
func (s *Server) renderError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		appErr = models.NewInternalError(err)
	}

	data := s.pageData(c, errorTitle(appErr.Code))
	data.Flash = &web.Flash{Message: appErr.Message, Category: "danger"}
	return s.renderer.RenderStatus(c, appErr.HTTPStatus(), "error.html", data)
}

func errorTitle(code string) string {
	switch code {
	case models.CodeNotFound:
		return "Not Found"
	case models.CodeForbidden:
		return "Forbidden"
	default:
		return "Something Went Wrong"
	}
}

// PostGate admits only the post's author or an administrator. The post must
// exist before any access decision is made, so probing IDs cannot distinguish
// "missing" from "not yours". The resolved post is stored in locals for the
// handler.
func (s *Server) PostGate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}

		uid := currentUserID(c)
		post, err := s.postService.Authorize(c.UserContext(), id, uid)
		if err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeForbidden {
				reason := "not_owner"
				if uid == 0 {
					reason = "unauthenticated"
				}
				observability.AccessDenials.WithLabelValues(reason).Inc()
			}
			return s.renderError(c, err)
		}

		c.Locals("post", post)
		return c.Next()
	}
}
