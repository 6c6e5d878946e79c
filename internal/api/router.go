package api

import (
	"fmt"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/townboard/townboard-api/internal/api/handler"
	"github.com/townboard/townboard-api/internal/api/middleware"
	"github.com/townboard/townboard-api/internal/core/domain"
	"github.com/townboard/townboard-api/internal/core/ports"
	httpinfra "github.com/townboard/townboard-api/internal/infrastructure/http"
	"github.com/townboard/townboard-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the router wires into handlers and middleware.
type Deps struct {
	Auth      ports.AuthService
	Events    ports.EventService
	Community ports.CommunityService
	Verifier  ports.TokenVerifier
	Logger    zerolog.Logger

	// Probes are checked by /health/ready, keyed by dependency name.
	Probes map[string]handlers.Pinger

	// MetricsEnabled mounts the echoprometheus middleware and /metrics.
	// It registers collectors globally, so enable it once per process.
	MetricsEnabled bool
	CORSOrigins    []string
	// RateLimitRPS is the per-client request rate; zero disables limiting.
	RateLimitRPS float64
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	if len(deps.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: deps.CORSOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}
	if deps.RateLimitRPS > 0 {
		e.Use(rateLimiter(deps.RateLimitRPS))
	}
	if deps.MetricsEnabled {
		e.Use(echoprometheus.NewMiddleware("townboard"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	eventHandler := handler.NewEventHandler(deps.Events)
	communityHandler := handler.NewCommunityHandler(deps.Community)
	auth := middleware.Auth(deps.Verifier)
	business := middleware.RequireRole(domain.RoleBusiness)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, auth)
	e.PATCH("/users/upgrade-to-business", authHandler.UpgradeToBusiness, auth)

	// --- Events: public reads, business-only writes ---
	events := e.Group("/events")
	events.GET("", eventHandler.List)
	events.GET("/mine", eventHandler.ListMine, auth)
	events.GET("/:id", eventHandler.Get)
	events.POST("", eventHandler.Create, auth, business)
	events.PUT("/:id", eventHandler.Update, auth, business)
	events.DELETE("/:id", eventHandler.Delete, auth, business)

	// --- Community boards: any authenticated identity ---
	community := e.Group("/community", auth)
	community.GET("", communityHandler.List)
	community.POST("", communityHandler.Create)
	community.GET("/:id", communityHandler.Get)
	community.PUT("/:id", communityHandler.Update)
	community.DELETE("/:id", communityHandler.Delete)
	community.POST("/:id/replies", communityHandler.Reply)
	community.POST("/:id/likes", communityHandler.Like)
	community.DELETE("/:id/likes", communityHandler.Unlike)

	// --- Health probes and docs (no auth required) ---
	httpinfra.RegisterProbes(e, deps.Probes)
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
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
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

func rateLimiter(rps float64) echo.MiddlewareFunc {
	burst := int(rps * 2)
	if burst < 1 {
		burst = 1
	}
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(rps),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return fmt.Errorf("%w: rate limit exceeded", domain.ErrTooManyRequests)
		},
	})
}
