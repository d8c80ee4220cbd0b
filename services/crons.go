// Package services holds background jobs that run beside the HTTP server.
package services

import (
	"context"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tatertot/apartmentsapi/api/session"
	"github.com/tatertot/apartmentsapi/config"
	"github.com/tatertot/apartmentsapi/shared/zaplogger"
)

type CronService struct {
	cfg            *config.Config
	c              *cron.Cron
	sessionService *session.Service
}

func NewCronService(cfg *config.Config, sessionService *session.Service) *CronService {
	return &CronService{
		cfg:            cfg,
		c:              cron.New(),
		sessionService: sessionService,
	}
}

func (cs *CronService) Start() {
	zaplogger.Info(config.SingleLine)
	zaplogger.Info("Initializing CronService")

	// Scheduled jobs
	cs.addScheduledJob("Session Cleanup Job", cs.sessionCleanupJob, "0 * * * *") // hourly

	// Startup jobs
	cs.addStartupJob("Session Cleanup Job", cs.sessionCleanupJob, 5*time.Second)

	cs.c.Start()
}

func (cs *CronService) Stop() {
	cs.c.Stop()
}

func (cs *CronService) addScheduledJob(name string, job func(), schedule string) {
	_, err := cs.c.AddFunc(schedule, func() {
		zaplogger.Info("Executing scheduled job", zaplogger.Fields{
			"job":  name,
			"time": time.Now().Format("15:04:05"),
		})
		job()
	})
	if err != nil {
		zaplogger.Error("Failed to schedule job", zaplogger.Fields{
			"job":   name,
			"error": err.Error(),
		})
		return
	}
	zaplogger.Info("  * Scheduled job added: " + name)
}

func (cs *CronService) addStartupJob(name string, job func(), delay time.Duration) {
	go func() {
		time.Sleep(delay)
		zaplogger.Info("Executing startup job", zaplogger.Fields{
			"job":  name,
			"time": time.Now().Format("15:04:05"),
		})
		job()
	}()
	zaplogger.Info("  * Startup job queued : " + name)
}

func (cs *CronService) sessionCleanupJob() {
	purged, err := cs.sessionService.PurgeExpired(context.Background())
	if err != nil {
		zaplogger.Error("Failed to purge expired sessions", zaplogger.Fields{
			"error": err.Error(),
		})
		return
	}

	zaplogger.Info("Session cleanup successful", zaplogger.Fields{
		"purged": strconv.FormatInt(purged, 10),
	})
}
