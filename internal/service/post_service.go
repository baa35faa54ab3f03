package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// dateLayout is the long-form publication date, e.g. "April 05, 2024".
const dateLayout = "January 02, 2006"

// PostService implements post reads and the access-gated mutations.
type PostService struct {
	postRepo repository.PostRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
	now      func() time.Time
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

// NewPostService returns a new PostService. isAdmin resolves whether the
// given identity carries the privileged flag; a nil func disables the admin
// bypass entirely.
func NewPostService(
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo: postRepo,
		isAdmin:  isAdmin,
		now:      time.Now,
	}
}

func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// CreatePost persists a new post owned by the caller. The publication date is
// stamped once here and never recomputed.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.UserID == 0 {
		return nil, models.NewForbiddenError("You must be logged in to publish a post")
	}
	if err := validation.ValidatePostFields(in.Title, in.Subtitle, in.Body); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		UserID:   in.UserID,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImageURL: in.ImageURL,
		Date:     s.now().Format(dateLayout),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Authorize applies the access gate for mutating operations on a post:
// resolve the post (NOT_FOUND if missing), reject anonymous callers, admit
// the owner or a privileged identity, reject everyone else.
func (s *PostService) Authorize(ctx context.Context, postID, userID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if userID == 0 {
		return nil, models.NewForbiddenError("You must be logged in to modify posts")
	}

	if post.UserID == userID {
		return post, nil
	}

	if s.isAdmin != nil {
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return nil, err
		}
		if admin {
			return post, nil
		}
	}

	return nil, models.NewForbiddenError("Only the author or an administrator may modify this post")
}

// UpdatePost overwrites the content fields of a post after passing the access
// gate. Ownership, ID, and the publication date never change on edit.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.Authorize(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidatePostFields(in.Title, in.Subtitle, in.Body); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Body = in.Body
	post.ImageURL = in.ImageURL

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post permanently after passing the access gate.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	if _, err := s.Authorize(ctx, in.PostID, in.UserID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, in.PostID)
}
