package http

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	middleware "task-tracker.com/task-tracker/internal/http/middlewares"
)

type RouteConfig struct {
	APIPrefix          string
	LoginRatePerMinute int
	// TrustProxyHeaders takes the client IP from X-Forwarded-For. Only set it
	// behind a proxy that overwrites the header.
	TrustProxyHeaders bool
	Logger            zerolog.Logger
}

// NewServer builds an echo instance with middleware, error handling and all
// routes registered.
func NewServer(h *Handler, cfg RouteConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)
	e.IPExtractor = echo.ExtractIPDirect()
	if cfg.TrustProxyHeaders {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	}

	Register(e, h, cfg)
	return e
}

func Register(e *echo.Echo, h *Handler, cfg RouteConfig) {
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(cfg.Logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.GET("/", h.Root)
	e.GET("/healthz", h.Healthz)

	api := e.Group(cfg.APIPrefix)
	api.POST("/auth/login", h.Login, middleware.RateLimiter(cfg.LoginRatePerMinute, time.Minute, nil))

	tasks := api.Group("/tasks", middleware.BearerAuth(h.authService))
	tasks.POST("", h.CreateTask)
	tasks.GET("", h.ListTasks)
	tasks.GET("/:id", h.GetTask)
	tasks.PUT("/:id", h.UpdateTask)
	tasks.PATCH("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)
}
