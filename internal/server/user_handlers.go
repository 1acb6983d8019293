package server

import (
	"ripple/internal/middleware"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(user.Profile())
}

// GetUserProfile handles GET /api/users/:id.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "User")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(user.PublicProfile())
}

// GetUserPosts handles GET /api/users/:id/posts.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "User")
	if err != nil {
		return nil
	}

	posts, err := s.postService.ListPostsByAuthor(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(posts)
}
