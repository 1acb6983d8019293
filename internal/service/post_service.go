package service

import (
	"context"
	"strings"

	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/repository"
)

// PostService enforces the feed's ownership and consistency rules. Every
// mutation takes the authenticated caller's id explicitly; nothing is read
// from ambient request state.
type PostService struct {
	posts repository.PostRepository
}

// NewPostService returns a new PostService.
func NewPostService(posts repository.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// CreatePost inserts a post authored by the caller and returns it re-read
// from the store, so the response carries the joined author username and the
// row is guaranteed visible to subsequent feed reads.
func (s *PostService) CreatePost(ctx context.Context, userID uint, content string) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	post := &models.Post{
		UserID:  userID,
		Content: content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.posts.GetByID(ctx, post.ID)
}

// GetPost returns a single post with its author and like-set.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// ListPosts returns the feed, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.posts.List(ctx)
}

// ListPostsByAuthor returns one author's posts, newest first.
func (s *PostService) ListPostsByAuthor(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.posts.ListByAuthor(ctx, userID)
}

// DeletePost removes a post if and only if the caller authored it. The
// ownership check always runs against the fetched row; a valid id alone
// never authorizes the delete.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return models.NewForbiddenError("User not authorized")
	}

	return s.posts.Delete(ctx, postID)
}

// ToggleLike flips the caller's membership in the post's like-set and
// returns the post's new state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	// Existence check first so a missing post is a 404, not a dangling like.
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.posts.ToggleLike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		middleware.LikeToggles.WithLabelValues("like").Inc()
	} else {
		middleware.LikeToggles.WithLabelValues("unlike").Inc()
	}

	return s.posts.GetByID(ctx, postID)
}
