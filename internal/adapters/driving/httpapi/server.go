// Package httpapi exposes the syllabus pipeline over HTTP: document
// upload and extraction, the workspace OAuth flow, and board sync.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/courseloft/syllaboard/internal/core/domain"
	"github.com/courseloft/syllaboard/internal/core/ports/driving"
	"github.com/courseloft/syllaboard/internal/logger"
)

// MaxUploadBytes bounds syllabus uploads.
const MaxUploadBytes = 10 << 20 // 10 MiB

// Server is the HTTP API server.
type Server struct {
	echo        *echo.Echo
	documents   driving.DocumentService
	extraction  driving.ExtractionService
	credentials driving.CredentialService
	boardSync   driving.BoardSyncService
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(
	documents driving.DocumentService,
	extraction driving.ExtractionService,
	credentials driving.CredentialService,
	boardSync driving.BoardSyncService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("10M"))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("%s %s -> %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))

	s := &Server{
		echo:        e,
		documents:   documents,
		extraction:  extraction,
		credentials: credentials,
		boardSync:   boardSync,
	}

	api := e.Group("/api", s.withSession)
	api.POST("/syllabus", s.handleSyllabus)
	api.GET("/monday/oauth/start", s.handleOAuthStart)
	api.GET("/monday/oauth/callback", s.handleOAuthCallback)
	api.GET("/monday/status", s.handleStatus)
	api.POST("/monday", s.handleSync)

	return s
}

// Start begins serving on addr and blocks until Shutdown.
func (s *Server) Start(addr string) error {
	err := s.echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routing tree. Used in tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// errorBody is the uniform error response shape.
type errorBody struct {
	Error string `json:"error"`
}

// respondError maps domain errors to HTTP statuses.
func respondError(c echo.Context, err error) error {
	var apiErr *domain.ExternalAPIError

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, errorBody{Error: "not connected to monday.com"})
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		return c.JSON(http.StatusUnsupportedMediaType, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrDecode):
		return c.JSON(http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidState):
		return c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrModelCall),
		errors.Is(err, domain.ErrExchangeFailed),
		errors.As(err, &apiErr):
		logger.Error("upstream failure: %v", err)
		return c.JSON(http.StatusBadGateway, errorBody{Error: "upstream service failed"})
	default:
		logger.Error("unhandled error: %v", err)
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

// sessionCookieName carries the opaque session id linking the OAuth
// flow to later sync requests.
const sessionCookieName = "syllaboard_session"

// sessionValidity bounds how long a browser session cookie lives.
const sessionValidity = 30 * 24 * time.Hour
