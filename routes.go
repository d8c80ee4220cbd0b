// Package main is the entry point for the Apartments API
package main

import (
	"github.com/labstack/echo/v4"
	"github.com/tatertot/apartmentsapi/api/apartment"
	"github.com/tatertot/apartmentsapi/api/session"
	"github.com/tatertot/apartmentsapi/shared/middleware"
	"gorm.io/gorm"
)

// setupRoutes configures the routes for the API. Paths and payload field
// names match the front-end pages exactly.
func setupRoutes(e *echo.Echo, db *gorm.DB, sessionService *session.Service) {

	// Session routes
	sessionHandler := session.NewHandler(sessionService)
	e.POST("/login", sessionHandler.Login)
	e.POST("/logout", sessionHandler.Logout)
	e.GET("/me", sessionHandler.WhoAmI)

	// Apartment routes; writes are dev-gated
	apartmentHandler := apartment.NewHandler(db)
	e.GET("/apartments", apartmentHandler.ListApartments)
	e.POST("/apartments", apartmentHandler.CreateApartment, middleware.RequireDev)
	e.DELETE("/apartments/:id", apartmentHandler.DeleteApartment, middleware.RequireDev)
}
