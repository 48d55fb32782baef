package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"ConciliacaoFornecedores/api/constants"
	"ConciliacaoFornecedores/api/reconciliation"
	"ConciliacaoFornecedores/internal/config"
	"ConciliacaoFornecedores/internal/logger"
	"ConciliacaoFornecedores/internal/serviceiface"

	"github.com/robfig/cron/v3"
)

// ScheduleConfig holds the cron settings for the reconciliation batch.
type ScheduleConfig struct {
	Schedule string
	TimeZone string
}

// NewDefaultScheduleConfig returns the stock schedule: every morning
// at eight, São Paulo time. The processing-day guard inside the job
// decides whether the batch actually runs.
func NewDefaultScheduleConfig() *ScheduleConfig {
	return &ScheduleConfig{
		Schedule: config.DefaultReconSchedule,
		TimeZone: config.DefaultTimeZone,
	}
}

// RunReconScheduler starts the cron job that fires the reconciliation
// batch. The expression wakes the job daily; the batch itself only
// runs on the 20th and on the month's last working day.
func RunReconScheduler(cfg *ScheduleConfig) (*cron.Cron, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultReconSchedule
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = config.DefaultTimeZone
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.Schedule, func() {
		runScheduledReconciliation(loc)
	})

	if err != nil {
		return nil, fmt.Errorf("unable to schedule reconciliation job: %v", err)
	}

	c.Start()
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Reconciliation scheduler started (%s, %s)", cfg.Schedule, cfg.TimeZone))
	}

	return c, nil
}

func runScheduledReconciliation(loc *time.Location) {
	now := time.Now().In(loc)
	if !reconciliation.IsProcessingDay(now) {
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(constants.MsgScheduleSkipped)
		}
		return
	}

	runner := reconciliation.DefaultRunner()
	if runner == nil {
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit("Reconciliation runner not ready; scheduled run skipped")
		}
		return
	}

	if _, err := runner.Run(context.Background()); err != nil {
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Scheduled reconciliation failed: %v", err))
		}
	}
}

// CronService wraps the scheduler for the app manager.
type CronService struct {
	config map[string]interface{}
	cron   *cron.Cron
}

func NewCronService(cfg map[string]interface{}) serviceiface.Service {
	return &CronService{config: cfg}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	scheduleConfig := NewDefaultScheduleConfig()

	if s.config != nil {
		if schedule, ok := s.config["schedule"].(string); ok && schedule != "" {
			scheduleConfig.Schedule = schedule
		}
		if tz, ok := s.config["timezone"].(string); ok && tz != "" {
			scheduleConfig.TimeZone = tz
		}
	}

	c, err := RunReconScheduler(scheduleConfig)
	if err != nil {
		return fmt.Errorf("failed to start reconciliation scheduler: %v", err)
	}
	s.cron = c

	log.Println("Cron service started, reconciliation job scheduled")
	return nil
}

func (s *CronService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}
