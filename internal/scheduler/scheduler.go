package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/foodtracker/internal/config"
	"github.com/mamadbah2/foodtracker/internal/domain/models"
	"github.com/mamadbah2/foodtracker/internal/service/reporting"
	"github.com/mamadbah2/foodtracker/pkg/clients/webhook"
)

// StateSource provides the state to report on.
type StateSource interface {
	Snapshot() models.State
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	source       StateSource
	reportingSvc *reporting.Service
	digest       webhook.Client
	cfg          config.ReportingConfig
	logger       *zap.Logger
	now          func() time.Time
}

// NewScheduler creates a new scheduler instance. digest may be nil when no
// webhook is configured.
func NewScheduler(cfg config.ReportingConfig, source StateSource, reportingSvc *reporting.Service, digest webhook.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc := cfg.Location()
	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		source:       source,
		reportingSvc: reportingSvc,
		digest:       digest,
		cfg:          cfg,
		logger:       logger,
		now:          func() time.Time { return time.Now().In(loc) },
	}
}

// Start registers the daily report job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailyReport); err != nil {
		s.logger.Error("failed to schedule daily report", zap.Error(err))
		return err
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	s.RunOnce(ctx)
}

// RunOnce builds the summary, exports it and posts the digest. Each step is
// best effort; failures are logged.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.logger.Info("generating daily report")

	summary := s.reportingSvc.Summarize(s.source.Snapshot(), s.now())
	s.reportingSvc.AttachPreviousValue(ctx, &summary)

	if s.reportingSvc.ExportEnabled() {
		if err := s.reportingSvc.ExportSnapshot(ctx, summary); err != nil {
			s.logger.Error("failed to export snapshot", zap.Error(err))
		}
	}

	if s.digest == nil {
		return
	}
	if err := s.digest.PostText(ctx, s.reportingSvc.Digest(summary)); err != nil {
		s.logger.Error("failed to send daily digest", zap.Error(err))
	} else {
		s.logger.Info("daily digest sent successfully")
	}
}
