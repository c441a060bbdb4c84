package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"auth-bridge/app/port"
	apperrors "auth-bridge/app/utils/errors"
	"auth-bridge/app/utils/validator"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authUsecase port.AuthUsecase
	validator   *validator.Validator
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase port.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator.New(),
		logger:      logger,
	}
}

// LoginRequest is the login request body
type LoginRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful authentication
type LoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresAt string `json:"expires_at"`
}

// ErrorResponse is the common error response body
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Login authenticates a user
// @Summary Authenticate a user
// @Description Authenticate against the directory with fallback to the local store
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apperrors.ErrBadRequest)
	}

	if err := h.validator.Validate(&req); err != nil {
		return writeError(c, apperrors.New(apperrors.ErrCodeValidationFailed, err.Error()))
	}

	session, err := h.authUsecase.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return h.authError(c, req.Username, err)
	}

	h.logger.Info("login succeeded", "username", session.Username, "ip", c.RealIP())

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     session.Token,
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// ValidateSession validates a session token
// @Summary Validate a session token
// @Description Resolve a session token into its session context
// @Tags authentication
// @Produce json
// @Success 200 {object} domain.SessionContext
// @Failure 401 {object} ErrorResponse
// @Router /v1/auth/validate [get]
func (h *AuthHandler) ValidateSession(c echo.Context) error {
	ctx := c.Request().Context()

	token := extractToken(c)
	if token == "" {
		return writeError(c, apperrors.ErrTokenRequired)
	}

	sessionCtx, err := h.authUsecase.ValidateToken(ctx, token)
	if err != nil {
		h.logger.Debug("session validation failed", "error", err)
		return writeError(c, apperrors.ErrInvalidSession)
	}

	return c.JSON(http.StatusOK, sessionCtx)
}

// Logout deactivates the current session
// @Summary Log out
// @Description Deactivate the session bound to the presented token
// @Tags authentication
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	token := extractToken(c)
	if token == "" {
		return writeError(c, apperrors.ErrTokenRequired)
	}

	if err := h.authUsecase.Logout(ctx, token); err != nil {
		appErr := apperrors.FromLogoutError(err)
		if appErr.StatusCode == http.StatusInternalServerError {
			h.logger.Error("logout failed", "error", err)
		}
		return writeError(c, appErr)
	}

	h.logger.Info("logout succeeded", "ip", c.RealIP())

	return c.JSON(http.StatusOK, map[string]string{"status": "logged_out"})
}

// authError maps authentication failures to HTTP responses. Credential
// rejections and inactive accounts are 401; anything system-level is 500
// without leaking the cause.
func (h *AuthHandler) authError(c echo.Context, username string, err error) error {
	appErr := apperrors.FromAuthError(err)

	if appErr.StatusCode == http.StatusUnauthorized {
		h.logger.Info("login rejected", "username", username, "code", appErr.Code, "ip", c.RealIP())
	} else {
		h.logger.Error("login failed", "username", username, "error", err)
	}

	return writeError(c, appErr)
}

// writeError renders a coded application error with the status its code
// maps to.
func writeError(c echo.Context, appErr *apperrors.AppError) error {
	return c.JSON(appErr.StatusCode, ErrorResponse{
		Error: appErr.Message,
		Code:  string(appErr.Code),
	})
}

// extractToken extracts the session token from the Authorization or
// X-Session-Token header.
func extractToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if auth != "" {
		const prefix = "Bearer "
		if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
			return auth[len(prefix):]
		}
		return auth
	}

	return c.Request().Header.Get("X-Session-Token")
}
