package server

import (
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if errs := validation.Collect(
		validation.Required("content", req.Content, "Content is required"),
	); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(validation.ErrorsResponse{Errors: errs})
	}

	post, err := s.postService.CreatePost(c.Context(), userID, req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(post)
}

// GetPosts handles GET /api/posts.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(post)
}

// ToggleLike handles PUT /api/posts/:id/like.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	id, err := s.parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	post, err := s.postService.ToggleLike(c.Context(), userID, id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	id, err := s.parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), userID, id); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(models.MessageResponse{Message: "Post removed"})
}
