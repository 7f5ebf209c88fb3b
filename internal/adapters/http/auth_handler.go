package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasklet/core/internal/infrastructure/config"
	"github.com/tasklet/core/internal/infrastructure/logger"
	"github.com/tasklet/core/internal/ports"
)

// AuthHandler handles login, logout and session checks
type AuthHandler struct {
	authService ports.AuthService
	sessionCfg  config.SessionConfig
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, sessionCfg config.SessionConfig, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessionCfg:  sessionCfg,
		logger:      logger,
	}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email and password are required"})
	}

	user, token, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.LogSecurityEvent("login_failed", "", c.RealIP(), map[string]interface{}{
			"email": req.Email,
		})
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
	}

	SetSessionCookie(c, h.sessionCfg, token, req.RememberMe)

	return c.JSON(http.StatusOK, UserResponse{User: user})
}

// CheckSession handles GET /api/check-session. It never fails: a
// missing or unresolvable cookie simply yields a null user.
func (h *AuthHandler) CheckSession(c echo.Context) error {
	cookie, err := c.Cookie(h.sessionCfg.CookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, UserResponse{User: nil})
	}

	user, err := h.authService.CheckSession(c.Request().Context(), cookie.Value)
	if err != nil {
		ClearSessionCookie(c, h.sessionCfg)
		return c.JSON(http.StatusOK, UserResponse{User: nil})
	}

	return c.JSON(http.StatusOK, UserResponse{User: user})
}

// Logout handles POST /api/logout. Only the client-held cookie is
// cleared; there is no server-side session to revoke.
func (h *AuthHandler) Logout(c echo.Context) error {
	ClearSessionCookie(c, h.sessionCfg)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}
