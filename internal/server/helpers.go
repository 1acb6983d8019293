package server

import (
	"errors"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter as a positive uint. On failure it writes
// a 404 JSON response and returns errResponseWritten; an unparseable id can
// never name an existing resource, so it is treated the same as a missing
// one. Callers should check: if err != nil { return nil }.
func (s *Server) parseID(c *fiber.Ctx, param, resource string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewNotFoundError(resource))
		return 0, errResponseWritten
	}
	return uint(id), nil
}
