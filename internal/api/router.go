package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/community-board/internal/api/docs"
	"github.com/99minutos/community-board/internal/api/handler"
	"github.com/99minutos/community-board/internal/api/middleware"
	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
)

type Options struct {
	Auth   ports.AuthService
	Posts  ports.PostService
	Events ports.EventService
	Admin  ports.AdminService
	Images ports.ImageService

	StorageBackend string
	Storage        ports.Storage

	AllowedDomains []string
	Policy         domain.AccessPolicy
	Logger         zerolog.Logger

	// Registerer and Gatherer back the HTTP metrics and /metrics. They default
	// to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	// RequestLog enables echo's access log middleware.
	RequestLog bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	if opts.RequestLog {
		e.Use(echomiddleware.Logger())
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "community",
		Registerer: opts.Registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(opts.Auth, opts.AllowedDomains, opts.Policy)
	postHandler := handler.NewPostHandler(opts.Posts, opts.Images)
	eventHandler := handler.NewEventHandler(opts.Events)
	adminHandler := handler.NewAdminHandler(opts.Admin)

	session := middleware.Session(opts.Auth)
	reader := middleware.Reader(opts.Auth, opts.Policy)
	writer := middleware.Writer(opts.Auth, opts.Policy)
	adminOnly := middleware.AdminOnly()

	// --- Auth routes ---
	e.POST("/auth/sign-in", authHandler.SignIn)
	e.POST("/auth/sign-out", authHandler.SignOut)
	e.GET("/auth/me", authHandler.Me)

	// --- Feed ---
	e.GET("/posts", postHandler.List, reader)
	e.POST("/posts", postHandler.Create, session, writer)
	e.POST("/posts/:id/like", postHandler.ToggleLike, session, writer)
	e.POST("/posts/:id/comments", postHandler.AddComment, session, writer)
	e.DELETE("/posts/:id", adminHandler.DeletePost, session, adminOnly)

	// --- Calendar ---
	e.GET("/events", eventHandler.List, reader)
	e.POST("/events", eventHandler.Create, session, writer)
	e.POST("/events/:id/rsvp", eventHandler.ToggleRSVP, session, writer)
	e.DELETE("/events/:id", adminHandler.DeleteEvent, session, adminOnly)

	// --- Admin console ---
	admin := e.Group("/admin", session, adminOnly)
	admin.GET("/pending", adminHandler.ListPending)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users/:id/approve", adminHandler.Approve)
	admin.POST("/users/:id/deny", adminHandler.Deny)
	admin.POST("/users/:id/toggle-admin", adminHandler.ToggleAdmin)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(opts.StorageBackend, opts.Storage)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is storage reachable?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
