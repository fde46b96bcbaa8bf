package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// AuditCleaner deletes audit rows older than a cutoff
type AuditCleaner interface {
	CleanupOldAuditLogs(ctx context.Context, olderThan time.Duration) (int64, error)
}

// CronService manages scheduled background jobs
type CronService struct {
	cron      *cron.Cron
	audit     AuditCleaner
	schedule  string
	retention time.Duration
	logger    logrus.FieldLogger
}

// NewCronService creates a new CronService. schedule is a cron spec with a
// seconds field, e.g. "0 0 3 * * *" for 3:00 AM every day.
func NewCronService(audit AuditCleaner, schedule string, retentionDays int, logger logrus.FieldLogger) *CronService {
	return &CronService{
		cron:      cron.New(cron.WithSeconds()),
		audit:     audit,
		schedule:  schedule,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger,
	}
}

// Start schedules the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.cleanupAuditLogsJob); err != nil {
		return fmt.Errorf("failed to schedule audit cleanup job: %w", err)
	}
	s.logger.WithField("schedule", s.schedule).Info("Scheduled audit log cleanup")

	s.cron.Start()
	s.logger.Info("Cron service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

// cleanupAuditLogsJob deletes audit rows past the retention period
func (s *CronService) cleanupAuditLogsJob() {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	deleted, err := s.audit.CleanupOldAuditLogs(ctx, s.retention)
	if err != nil {
		s.logger.WithError(err).Error("[CRON] Audit log cleanup failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"deleted":     deleted,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("[CRON] Audit log cleanup completed")
}
