// Package httpapi exposes the template service over HTTP/JSON using fiber.
package httpapi

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dmitrijs2005/fingervault/internal/logging"
)

// templateService is implemented by *templates.Service.
type templateService interface {
	Upload(ctx context.Context, id string, data []byte) error
	Load(ctx context.Context) (int, error)
	Verify(ctx context.Context, data []byte) (string, error)
	Count() int
}

type Options struct {
	BodyLimit       int
	ShutdownTimeout time.Duration
}

type HTTPServer struct {
	address         string
	app             *fiber.App
	templates       templateService
	logger          logging.Logger
	shutdownTimeout time.Duration
}

func NewHTTPServer(a string, l logging.Logger, ts templateService, opts Options) *HTTPServer {
	s := &HTTPServer{
		address:         a,
		templates:       ts,
		logger:          l.With("module", "http_server"),
		shutdownTimeout: opts.ShutdownTimeout,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "fingervault",
		BodyLimit:             opts.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	s.app.Use(recover.New())
	s.app.Use(s.requestLogger)

	s.app.Get("/", s.home)
	s.app.Get("/health", s.health)
	s.app.Post("/upload-template", s.uploadTemplate)
	s.app.Post("/load-templates", s.loadTemplates)
	s.app.Post("/verify-template", s.verifyTemplate)

	return s
}

// errorHandler renders errors that escape the handlers, including fiber's
// own 404/405/413, as {"error": ...}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(ErrorResponse{Error: err.Error()})
}

func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(s.shutdownTimeout); err != nil {
			s.logger.Error(context.Background(), "shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	return s.app.Listener(listen)
}
