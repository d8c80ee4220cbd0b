// Package main is the entry point for the Apartments API
package main

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tatertot/apartmentsapi/api/session"
	"github.com/tatertot/apartmentsapi/config"
	"github.com/tatertot/apartmentsapi/database"
	"github.com/tatertot/apartmentsapi/services"
	"github.com/tatertot/apartmentsapi/shared/middleware"
	"github.com/tatertot/apartmentsapi/shared/zaplogger"
)

func main() {
	// Setup logger
	defer zaplogger.Sync()

	// startUpMessage
	zaplogger.Info(config.SingleLine)
	zaplogger.Info("Apartments API")

	// Load configuration
	cfg, err := config.Get()
	if err != nil {
		zaplogger.Fatal("failed to load configuration", zaplogger.Fields{"error": err})
	}
	zaplogger.Info("  * configuration loaded")
	zaplogger.SetLogLevel(cfg.ServerLogLevel)

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Setup middleware
	middleware.SetupLoggerMiddleware(e)

	// Connect to Postgres
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}

	// Seed users and apartments on first boot
	if err := database.EnsureSeedData(db, cfg); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Session store: Redis when configured, Postgres otherwise
	var store session.Store
	if cfg.RedisURL != "" {
		redisClient, err := database.ConnectRedis(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store = session.NewRedisStore(redisClient)
	} else {
		store = session.NewGormStore(db)
	}

	ttlHours, err := strconv.Atoi(cfg.SessionTTLHours)
	if err != nil || ttlHours <= 0 {
		log.Fatalf("Invalid session TTL: %q", cfg.SessionTTLHours)
	}

	sessionService := session.NewService(db, store, time.Duration(ttlHours)*time.Hour)

	// Resolve the session cookie into a principal on every request
	e.Use(middleware.SessionMiddleware(sessionService))

	// Setup routes and static front-end pages
	setupRoutes(e, db, sessionService)
	e.Static("/", cfg.PublicDir)

	// Setup and start cron jobs
	cronService := services.NewCronService(cfg, sessionService)
	cronService.Start()

	// Start the server
	startServer(e, cfg)
}

// startServer starts the Echo server on the specified port
func startServer(e *echo.Echo, cfg *config.Config) {
	port := cfg.ServerPort
	if port == "" {
		port = "3000"
	}
	startupMessage := fmt.Sprintf("%s %s Server [:%s] started", cfg.APIName, cfg.APIVersion, port)

	zaplogger.Info(config.SingleLine)
	zaplogger.Info(startupMessage)
	zaplogger.Info(config.SingleLine)
	e.Logger.Fatal(e.Start(":" + port))
}
