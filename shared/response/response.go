// Package response contains response utility functions for the JSON wire contract.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the error response structure. The field names are part of the
// wire contract consumed by the front-end pages and the terminal client.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// OK sends payload as-is with HTTP 200
func OK(c echo.Context, payload interface{}) error {
	return c.JSON(http.StatusOK, payload)
}

// Success sends a bare {"success":true}
func Success(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Error sends an error JSON response
func Error(c echo.Context, httpStatus int, message string) error {
	return c.JSON(httpStatus, ErrorBody{Success: false, Error: message})
}
