package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ybblog/blog/docs"
	"github.com/ybblog/blog/internal/api/cookie"
	"github.com/ybblog/blog/internal/api/handler"
	"github.com/ybblog/blog/internal/api/middleware"
	"github.com/ybblog/blog/internal/core/ports"
	"github.com/ybblog/blog/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Articles ports.ArticleService
	Limiter  ports.RateLimiter
	Sessions *cookie.SessionCodec
	Flash    *cookie.Flasher
	Checks   map[string]handlers.Check
	Log      zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
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
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "blog",
		Registerer: d.Registerer,
	}))

	// --- Dependencies ---
	pageHandler := handler.NewPageHandler(d.Flash)
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions, d.Flash, d.Log)
	articleHandler := handler.NewArticleHandler(d.Articles, d.Flash, d.Log)

	// --- Ops routes (no session) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(d.Checks, d.Log).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Public pages ---
	site := e.Group("", middleware.LoadSession(d.Auth, d.Sessions, d.Log))
	site.GET("/", pageHandler.Index)
	site.GET("/about", pageHandler.About)
	site.GET("/articles", articleHandler.List)
	site.GET("/article/:id", articleHandler.Show)
	site.GET("/search", articleHandler.SearchRedirect)
	site.POST("/search", articleHandler.Search)

	// --- Auth routes ---
	site.GET("/register", authHandler.RegisterForm)
	site.POST("/register", authHandler.Register)
	site.GET("/login", authHandler.LoginForm)
	site.POST("/login", authHandler.Login, middleware.LoginRateLimit(d.Limiter, d.Log))
	site.GET("/logout", authHandler.Logout)

	// --- Pages behind a session ---
	requireSession := middleware.RequireSession(d.Flash)
	site.GET("/dashboard", articleHandler.Dashboard, requireSession)
	site.GET("/addarticle", articleHandler.AddForm, requireSession)
	site.POST("/addarticle", articleHandler.Add, requireSession)
	site.GET("/edit/:id", articleHandler.EditForm, requireSession)
	site.POST("/edit/:id", articleHandler.Edit, requireSession)
	site.GET("/delete/:id", articleHandler.Delete, requireSession)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
