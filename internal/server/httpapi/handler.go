package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/fingervault/internal/common"
)

func (s *HTTPServer) home(c *fiber.Ctx) error {
	return c.SendString("Hello, World!")
}

func (s *HTTPServer) health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "ok",
		Templates: s.templates.Count(),
		Time:      time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *HTTPServer) uploadTemplate(c *fiber.Ctx) error {
	var req UploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid JSON payload"})
	}

	if err := s.templates.Upload(c.UserContext(), req.FingerprintID, []byte(req.FingerprintData)); err != nil {
		return s.failure(c, err)
	}

	return c.JSON(MessageResponse{Message: "Fingerprint template uploaded successfully"})
}

func (s *HTTPServer) loadTemplates(c *fiber.Ctx) error {
	n, err := s.templates.Load(c.UserContext())
	if err != nil {
		if errors.Is(err, common.ErrNoTemplates) {
			return c.Status(fiber.StatusNotFound).JSON(MessageResponse{Message: "No fingerprint templates found in the bucket."})
		}
		return s.failure(c, err)
	}

	return c.JSON(LoadResponse{Message: "Templates loaded successfully.", Count: n})
}

func (s *HTTPServer) verifyTemplate(c *fiber.Ctx) error {
	id, err := s.templates.Verify(c.UserContext(), c.Body())
	if err != nil {
		if errors.Is(err, common.ErrNoMatch) {
			return c.Status(fiber.StatusNotFound).JSON(MessageResponse{Message: "No match found."})
		}
		return s.failure(c, err)
	}

	return c.JSON(VerifyResponse{Message: "Fingerprint verified.", FingerprintID: id})
}

// failure maps validation errors to 400 and everything else to 500. The
// underlying error text is returned to the caller unchanged.
func (s *HTTPServer) failure(c *fiber.Ctx, err error) error {
	if errors.Is(err, common.ErrorValidation) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}
	s.logger.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
}
