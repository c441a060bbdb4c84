package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"auth-bridge/app/port"
)

// AuthMiddleware provides authentication middleware
type AuthMiddleware struct {
	authUsecase port.AuthUsecase
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authUsecase port.AuthUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authUsecase: authUsecase,
		logger:      logger,
	}
}

// RequireAuth middleware that requires a valid session token
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			token := m.extractSessionToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			sessionCtx, err := m.authUsecase.ValidateToken(ctx, token)
			if err != nil {
				m.logger.Debug("session validation failed", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set("username", sessionCtx.Username)
			c.Set("user_email", sessionCtx.Email)
			c.Set("session_id", sessionCtx.SessionID)
			c.Set("session_token", token)

			return next(c)
		}
	}
}

// extractSessionToken extracts the session token from the Authorization or
// X-Session-Token header.
func (m *AuthMiddleware) extractSessionToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if auth != "" {
		// Support both "Bearer token" and raw token formats
		if strings.HasPrefix(auth, "Bearer ") {
			return strings.TrimPrefix(auth, "Bearer ")
		}
		return auth
	}

	return c.Request().Header.Get("X-Session-Token")
}
