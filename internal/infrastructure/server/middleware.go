package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	httpHandlers "github.com/tasklet/core/internal/adapters/http"
	"github.com/tasklet/core/internal/application/services"
	"github.com/tasklet/core/internal/domain/entities"
)

// sessionAuth resolves the session cookie to a user record and attaches
// it to the context. Missing cookie, undecodable token and unknown user
// all collapse to 401; the latter two additionally clear the stale
// cookie. There is no expiry check and no revocation: any well-formed
// token naming an existing user passes.
func (s *Server) sessionAuth(authService *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(s.config.Session.CookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, httpHandlers.ErrorResponse{Error: "Not authenticated"})
			}

			user, err := authService.CheckSession(c.Request().Context(), cookie.Value)
			if err != nil {
				httpHandlers.ClearSessionCookie(c, s.config.Session)

				switch {
				case errors.Is(err, entities.ErrInvalidSession):
					s.logger.LogSecurityEvent("invalid_session", "", c.RealIP(), map[string]interface{}{
						"endpoint": c.Request().URL.Path,
					})
				case errors.Is(err, entities.ErrUserNotFound):
					s.logger.LogSecurityEvent("session_user_not_found", "", c.RealIP(), map[string]interface{}{
						"endpoint": c.Request().URL.Path,
					})
				default:
					s.logger.Error("Session check failed", "error", err)
					return c.JSON(http.StatusInternalServerError, httpHandlers.ErrorResponse{Error: "Internal server error"})
				}

				return c.JSON(http.StatusUnauthorized, httpHandlers.ErrorResponse{Error: "Not authenticated"})
			}

			c.Set(httpHandlers.ContextKeyUser, user)

			return next(c)
		}
	}
}
