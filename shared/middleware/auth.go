package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tatertot/apartmentsapi/api/session"
	"github.com/tatertot/apartmentsapi/shared/response"
	"github.com/tatertot/apartmentsapi/shared/zaplogger"
)

// SessionMiddleware resolves the session cookie into a Principal and stashes
// it in the request context. Requests without a live session pass through
// unauthenticated; gating is left to RequireDev.
func SessionMiddleware(sessionService *session.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(session.CookieName)
			if err != nil {
				return next(c)
			}

			principal, err := sessionService.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				zaplogger.Error("session resolve failed", zaplogger.Fields{"error": err.Error()})
				return response.Error(c, http.StatusInternalServerError, "server error")
			}
			if principal != nil {
				c.Set(session.ContextKey, principal)
			}

			return next(c)
		}
	}
}

// RequireDev gates write operations on the principal's isDev flag. A missing
// or non-dev principal gets a 403 and the handler never runs.
func RequireDev(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := session.FromContext(c)
		if p == nil || !p.IsDev {
			return response.Error(c, http.StatusForbidden, "forbidden")
		}
		return next(c)
	}
}
