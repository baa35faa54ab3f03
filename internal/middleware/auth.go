// Package middleware provides request middleware: session loading,
// authentication enforcement, logging, tracing, and rate limiting.
package middleware

import (
	"context"

	"inkwell/internal/session"
	"inkwell/internal/web"

	"github.com/gofiber/fiber/v2"
)

// LoadSession resolves the authenticated identity from the session cookie, if
// present. It never rejects a request: an absent or invalid session simply
// leaves the request anonymous. Runs on every route so handlers can read the
// current identity from c.Locals("userID").
func LoadSession(mgr *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token == "" {
			return c.Next()
		}

		userID, err := mgr.Verify(token)
		if err != nil {
			// Tampered or expired cookie: drop it and continue as guest.
			c.Cookie(mgr.ClearCookie())
			return c.Next()
		}

		c.Locals("userID", userID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
		return c.Next()
	}
}

// RequireAuth rejects anonymous requests by redirecting to the login page.
// It must run after LoadSession.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userID").(uint); !ok {
			web.SetFlash(c, "warning", "Please log in first.")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
