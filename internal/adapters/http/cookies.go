package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasklet/core/internal/infrastructure/config"
)

// SetSessionCookie attaches the session token to the response. With
// rememberMe the cookie gets the configured multi-day lifetime;
// otherwise it is session-scoped and dies with the browser.
func SetSessionCookie(c echo.Context, cfg config.SessionConfig, token string, rememberMe bool) {
	cookie := &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if rememberMe {
		cookie.MaxAge = int(cfg.RememberMaxAge().Seconds())
	}
	c.SetCookie(cookie)
}

// ClearSessionCookie expires the session cookie on the client. The
// token itself stays valid against the gate; only the client copy goes.
func ClearSessionCookie(c echo.Context, cfg config.SessionConfig) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
