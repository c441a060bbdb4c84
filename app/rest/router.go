package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"auth-bridge/app/port"
	"auth-bridge/app/rest/handlers"
	custommw "auth-bridge/app/rest/middleware"
	apperrors "auth-bridge/app/utils/errors"
	"auth-bridge/app/utils/security"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger      *slog.Logger
	AuthUsecase port.AuthUsecase
	Checks      map[string]handlers.DependencyCheck
	EnableDebug bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.Debug = config.EnableDebug

	// Create handlers
	authHandler := handlers.NewAuthHandler(config.AuthUsecase, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.Logger, config.Checks)

	// Create middleware
	authMiddleware := custommw.NewAuthMiddleware(config.AuthUsecase, config.Logger)
	rateLimiter := custommw.NewRateLimiter()
	ids := security.NewIDS(config.Logger)

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.DefaultCORS())
	e.Use(custommw.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())

	// IDS middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			userAgent := c.Request().Header.Get("User-Agent")
			path := c.Request().URL.Path

			if ids.IsBlocked(ip) {
				appErr := apperrors.New(apperrors.ErrCodeSecurityViolation, "access denied by security policy")
				return c.JSON(appErr.StatusCode, map[string]interface{}{
					"error": appErr.Message,
					"code":  string(appErr.Code),
				})
			}

			if !ids.AnalyzeRequest(c.Request().Context(), ip, userAgent, path, "") {
				appErr := apperrors.New(apperrors.ErrCodeSecurityViolation, "request blocked by malicious pattern detection")
				return c.JSON(appErr.StatusCode, map[string]interface{}{
					"error": appErr.Message,
					"code":  string(appErr.Code),
				})
			}

			return next(c)
		}
	})

	// Request logging
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
	}))

	// API versioning
	v1 := e.Group("/v1")

	// Health endpoints (no auth required)
	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)
	v1.GET("/live", healthHandler.LivenessCheck)

	// Authentication endpoints
	auth := v1.Group("/auth")

	// Public auth endpoints (no auth required)
	auth.POST("/login", authHandler.Login)

	// Session validation endpoint (for other services)
	auth.GET("/validate", authHandler.ValidateSession)

	// Protected auth endpoints (require authentication)
	authProtected := auth.Group("")
	authProtected.Use(authMiddleware.RequireAuth())
	authProtected.POST("/logout", authHandler.Logout)

	return e
}
