package server

import (
	"errors"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/service"
	"inkwell/internal/validation"
	"inkwell/internal/web"

	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type registerRequest struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// LoginForm renders the login page. A logged-in visitor is sent home.
func (s *Server) LoginForm(c *fiber.Ctx) error {
	if currentUserID(c) != 0 {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return s.renderer.Render(c, "login.html", s.pageData(c, "Log In"))
}

// Login verifies credentials and establishes a session. An unknown email
// redirects to registration; a wrong password re-renders the form.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		web.SetFlash(c, "danger", "Invalid form submission.")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	req.Email = strings.TrimSpace(req.Email)

	user, err := s.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case models.CodeUnknownEmail:
				web.SetFlash(c, "danger", "That email does not exist, please register instead.")
				return c.Redirect("/register", fiber.StatusSeeOther)
			case models.CodeWrongPassword:
				data := s.pageData(c, "Log In")
				data.Flash = &web.Flash{Message: "Password incorrect, please try again.", Category: "danger"}
				data.Form = map[string]string{"email": req.Email}
				return s.renderer.RenderStatus(c, fiber.StatusUnauthorized, "login.html", data)
			}
		}
		return s.renderError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user logged in", "user_id", user.ID)
	observability.SessionsIssued.WithLabelValues("login").Inc()
	return s.establishSession(c, user.ID)
}

// RegisterForm renders the registration page.
func (s *Server) RegisterForm(c *fiber.Ctx) error {
	if currentUserID(c) != 0 {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return s.renderer.Render(c, "register.html", s.pageData(c, "Register"))
}

// Register creates an account and logs the new user straight in. A duplicate
// email redirects to the login page instead of creating a second account.
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		web.SetFlash(c, "danger", "Invalid form submission.")
		return c.Redirect("/register", fiber.StatusSeeOther)
	}
	// Normalize before the values reach validation or storage, so a padded
	// email can never register as a second identity.
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := firstError(
		validation.ValidateUsername(req.Username),
		validation.ValidateEmail(req.Email),
		validation.ValidatePassword(req.Password),
	); err != nil {
		data := s.pageData(c, "Register")
		data.Flash = &web.Flash{Message: err.Error(), Category: "danger"}
		data.Form = map[string]string{"username": req.Username, "email": req.Email}
		return s.renderer.RenderStatus(c, fiber.StatusBadRequest, "register.html", data)
	}

	user, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeDuplicateEmail {
			web.SetFlash(c, "danger", "You've already signed up with that email, log in instead.")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return s.renderError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered", "user_id", user.ID)
	observability.SessionsIssued.WithLabelValues("register").Inc()
	return s.establishSession(c, user.ID)
}

// Logout drops the session cookie. Logging out while logged out is a no-op.
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(s.sessions.ClearCookie())
	return c.Redirect("/", fiber.StatusSeeOther)
}

// establishSession issues a session token, sets the cookie, and sends the
// user home.
func (s *Server) establishSession(c *fiber.Ctx, userID uint) error {
	token, err := s.sessions.Issue(userID)
	if err != nil {
		return s.renderError(c, models.NewInternalError(err))
	}
	c.Cookie(s.sessions.Cookie(token))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
