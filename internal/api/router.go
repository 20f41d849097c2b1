package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/inkwell/posts-api/internal/api/handler"
	"github.com/inkwell/posts-api/internal/api/middleware"
	"github.com/inkwell/posts-api/internal/core/ports"
	"github.com/inkwell/posts-api/internal/infrastructure/http/handlers"
)

// Deps is everything the router needs. Metrics default to the global
// Prometheus registry when nil.
type Deps struct {
	Logger zerolog.Logger

	Auth  ports.AuthUseCase
	Users ports.UserUseCase
	Posts ports.PostUseCase
	Votes ports.VoteUseCase

	DefaultPageSize int
	LoginRateLimit  int

	ReadinessChecks []handlers.Check

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "posts_api",
		Subsystem:                 "http",
		Registerer:                d.Registerer,
		DoNotUseRequestPathFor404: true,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	postHandler := handler.NewPostHandler(d.Posts, d.DefaultPageSize)
	voteHandler := handler.NewVoteHandler(d.Votes)
	bearer := middleware.Bearer(d.Auth)

	// --- Auth ---
	e.POST("/login", authHandler.Login, middleware.RateLimitByIP(d.LoginRateLimit, time.Minute))

	// --- Users ---
	e.POST("/users", userHandler.Create)
	e.GET("/users/:id", userHandler.Get)

	// --- Posts ---
	e.GET("/posts", postHandler.List)
	e.GET("/posts/:id", postHandler.Get)
	e.POST("/posts", postHandler.Create, bearer)
	e.PATCH("/posts/:id", postHandler.Update, bearer)
	e.DELETE("/posts/:id", postHandler.Delete, bearer)

	// --- Votes ---
	e.POST("/votes", voteHandler.Vote, bearer)

	// --- Operational (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(d.ReadinessChecks...).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
