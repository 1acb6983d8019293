package server

import (
	"ripple/internal/models"
	"ripple/internal/service"
	"ripple/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type tokenResponse struct {
	Token string `json:"token"`
}

// Register handles POST /api/auth/register.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if errs := validation.Collect(
		validation.Required("username", req.Username, "Username is required"),
		validation.Email("email", req.Email),
		validation.MinLength("password", req.Password, validation.MinPasswordLength, "password"),
	); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(validation.ErrorsResponse{Errors: errs})
	}

	token, err := s.authService.Register(c.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(tokenResponse{Token: token})
}

// Login handles POST /api/auth/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if errs := validation.Collect(
		validation.Email("email", req.Email),
		validation.Required("password", req.Password, "Password is required"),
	); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(validation.ErrorsResponse{Errors: errs})
	}

	token, err := s.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(tokenResponse{Token: token})
}
