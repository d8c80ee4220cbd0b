package apartment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tatertot/apartmentsapi/api/session"
	"github.com/tatertot/apartmentsapi/shared/audit"
	"github.com/tatertot/apartmentsapi/shared/response"
	"github.com/tatertot/apartmentsapi/shared/zaplogger"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
	audit   *audit.Logger
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		service: NewService(db),
		audit:   audit.New(db),
	}
}

// recordAudit logs an admin action; failures are logged, never surfaced.
func (h *Handler) recordAudit(c echo.Context, action string, fields map[string]interface{}) {
	username := ""
	if p := session.FromContext(c); p != nil {
		username = p.Username
	}
	if err := h.audit.Record(username, action, fields); err != nil {
		zaplogger.Warn("audit record failed", zaplogger.Fields{"action": action, "error": err.Error()})
	}
}

// ListApartments returns every row plus the caller's privilege flag. The
// flag only affects the payload; the endpoint itself is open.
func (h *Handler) ListApartments(c echo.Context) error {
	rows, err := h.service.List(c.Request().Context())
	if err != nil {
		zaplogger.Error("failed to fetch apartments", zaplogger.Fields{"error": err.Error()})
		return response.Error(c, http.StatusInternalServerError, "failed to load apartments")
	}

	isDev := false
	if p := session.FromContext(c); p != nil {
		isDev = p.IsDev
	}

	return response.OK(c, ListResponse{Rows: rows, IsDev: isDev})
}

func (h *Handler) CreateApartment(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid request body")
	}

	apt, err := h.service.Create(c.Request().Context(), req)
	var ve *ValidationError
	if errors.As(err, &ve) {
		return response.Error(c, http.StatusBadRequest, ve.Message)
	}
	if err != nil {
		zaplogger.Error("failed to add apartment", zaplogger.Fields{"error": err.Error()})
		return response.Error(c, http.StatusInternalServerError, "failed to add apartment")
	}

	h.recordAudit(c, "apartment.create", map[string]interface{}{"id": apt.ID, "name": apt.Name})

	return response.OK(c, CreateResponse{Success: true, Apartment: *apt})
}

func (h *Handler) DeleteApartment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.Error(c, http.StatusBadRequest, "invalid id")
	}

	if err := h.service.Delete(c.Request().Context(), uint(id)); err != nil {
		zaplogger.Error("failed to delete apartment", zaplogger.Fields{"error": err.Error()})
		return response.Error(c, http.StatusInternalServerError, "failed to delete apartment")
	}

	h.recordAudit(c, "apartment.delete", map[string]interface{}{"id": id})

	return response.Success(c)
}
