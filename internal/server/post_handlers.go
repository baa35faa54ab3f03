package server

import (
	"errors"
	"fmt"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/web"

	"github.com/gofiber/fiber/v2"
)

type postForm struct {
	Title    string `form:"title"`
	Subtitle string `form:"subtitle"`
	Body     string `form:"body"`
	ImageURL string `form:"img_url"`
}

func (f postForm) asMap() map[string]string {
	return map[string]string{
		"title":    f.Title,
		"subtitle": f.Subtitle,
		"body":     f.Body,
		"img_url":  f.ImageURL,
	}
}

// Index lists every post, newest first.
func (s *Server) Index(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return s.renderError(c, err)
	}

	data := s.pageData(c, "All Posts")
	data.Posts = posts
	return s.renderer.Render(c, "index.html", data)
}

// ShowPost renders a single post. Reading never requires a session.
func (s *Server) ShowPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return s.renderError(c, err)
	}

	data := s.pageData(c, post.Title)
	data.Post = post
	return s.renderer.Render(c, "post.html", data)
}

// NewPostForm renders the empty composer.
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	data := s.pageData(c, "New Post")
	return s.renderer.Render(c, "make_post.html", data)
}

// CreatePost publishes a new post owned by the current user.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var form postForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderError(c, models.NewValidationError("Invalid form submission"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:   currentUserID(c),
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImageURL: form.ImageURL,
	})
	if err != nil {
		if handled, rerr := s.rerenderPostForm(c, form, false, err); handled {
			return rerr
		}
		return s.renderError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post created",
		"post_id", post.ID, "user_id", post.UserID)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// EditPostForm renders the composer prefilled with the post's current
// content. The access gate has already resolved the post.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	post := c.Locals("post").(*models.Post)

	data := s.pageData(c, "Edit Post")
	data.IsEdit = true
	data.Post = post
	data.Form = map[string]string{
		"title":    post.Title,
		"subtitle": post.Subtitle,
		"body":     post.Body,
		"img_url":  post.ImageURL,
	}
	return s.renderer.Render(c, "make_post.html", data)
}

// UpdatePost overwrites the post's content fields. Ownership and the
// publication date are untouched.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	post := c.Locals("post").(*models.Post)

	var form postForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderError(c, models.NewValidationError("Invalid form submission"))
	}

	updated, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:   currentUserID(c),
		PostID:   post.ID,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImageURL: form.ImageURL,
	})
	if err != nil {
		if handled, rerr := s.rerenderPostForm(c, form, true, err); handled {
			return rerr
		}
		return s.renderError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post updated",
		"post_id", updated.ID, "user_id", currentUserID(c))
	return c.Redirect(fmt.Sprintf("/post/%d", updated.ID), fiber.StatusSeeOther)
}

// DeletePost removes the post permanently, along with nothing else: other
// users' posts and the author's account are unaffected.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	post := c.Locals("post").(*models.Post)

	err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		UserID: currentUserID(c),
		PostID: post.ID,
	})
	if err != nil {
		return s.renderError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "post deleted",
		"post_id", post.ID, "user_id", currentUserID(c))
	web.SetFlash(c, "success", "Post deleted.")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// rerenderPostForm re-renders the composer for recoverable form errors
// (validation failures and duplicate titles). Reports false for errors that
// should fall through to the error page.
func (s *Server) rerenderPostForm(c *fiber.Ctx, form postForm, isEdit bool, err error) (bool, error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return false, nil
	}

	var status int
	switch appErr.Code {
	case models.CodeValidation:
		status = fiber.StatusBadRequest
	case models.CodeDuplicateTitle:
		status = fiber.StatusConflict
	default:
		return false, nil
	}

	title := "New Post"
	if isEdit {
		title = "Edit Post"
	}
	data := s.pageData(c, title)
	data.IsEdit = isEdit
	data.Flash = &web.Flash{Message: appErr.Message, Category: "danger"}
	data.Form = form.asMap()
	return true, s.renderer.RenderStatus(c, status, "make_post.html", data)
}
