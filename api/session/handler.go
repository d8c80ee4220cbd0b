package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tatertot/apartmentsapi/shared/response"
	"github.com/tatertot/apartmentsapi/shared/zaplogger"
)

// CookieName names the session cookie. It carries only the opaque token.
const CookieName = "apt_session"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid request body")
	}

	sess, err := h.service.Login(c.Request().Context(), req)
	if errors.Is(err, ErrInvalidCredentials) {
		return response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials.Error())
	}
	if err != nil {
		zaplogger.Error("login failed", zaplogger.Fields{"error": err.Error()})
		return response.Error(c, http.StatusInternalServerError, "server error")
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return response.Success(c)
}

func (h *Handler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(CookieName); err == nil {
		if err := h.service.Logout(c.Request().Context(), cookie.Value); err != nil {
			zaplogger.Warn("logout: session delete failed", zaplogger.Fields{"error": err.Error()})
		}
	}

	// Expire the cookie regardless of whether a session existed.
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return response.Success(c)
}

// WhoAmI returns the principal's public fields, or an empty object when
// unauthenticated.
func (h *Handler) WhoAmI(c echo.Context) error {
	p := FromContext(c)
	if p == nil {
		return response.OK(c, map[string]interface{}{})
	}
	return response.OK(c, map[string]interface{}{
		"username": p.Username,
		"isDev":    p.IsDev,
	})
}
