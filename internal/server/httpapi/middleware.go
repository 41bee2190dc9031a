package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/fingervault/internal/common"
)

// requestLogger tags each request with an ID and logs its outcome. Errors
// from the chain are rendered here so the logged status is the final one.
func (s *HTTPServer) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	id := uuid.NewString()
	c.Set(common.RequestIDHeaderName, id)

	if err := c.Next(); err != nil {
		if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	s.logger.Info(c.UserContext(), "request",
		"request_id", id,
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"latency", time.Since(start).String(),
	)
	return nil
}
