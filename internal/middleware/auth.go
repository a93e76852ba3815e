package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"aimaster-store/internal/service"
	"aimaster-store/internal/session"
)

const sessionKey = "session"

// Session requires a valid bearer token and stores the resolved session on
// the context.
func Session(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			sess, err := auth.Resolve(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// OptionalSession resolves a bearer token when one is present so storefront
// reads run against the caller's session mode, and lets anonymous requests
// through.
func OptionalSession(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := bearerToken(c); token != "" {
				if sess, err := auth.Resolve(token); err == nil {
					c.Set(sessionKey, sess)
				}
			}
			return next(c)
		}
	}
}

// RequireAdmin gates the back office. Must run after Session.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if sess == nil || !sess.Profile.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}

func CurrentSession(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionKey).(*session.Session)
	return sess
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
