package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Refresher reloads a cached value from its source.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// HolidayScheduler refreshes the holiday cache shortly after midnight so the
// first turn of the day does not wait on the DSNY API.
type HolidayScheduler struct {
	cronEngine *cron.Cron
	refresher  Refresher
	logger     *logrus.Entry
	cronSpec   string
	timeout    time.Duration
}

func NewHolidayScheduler(
	refresher Refresher,
	logger *logrus.Entry,
	location *time.Location, // collection calendar zone, not the server's
	cronSpec string, // e.g., "5 0 * * *" (00:05 daily)
	timeout time.Duration,
) *HolidayScheduler {
	return &HolidayScheduler{
		cronEngine: cron.New(cron.WithLocation(location)),
		refresher:  refresher,
		logger:     logger.WithField("component", "holiday_scheduler"),
		cronSpec:   cronSpec,
		timeout:    timeout,
	}
}

// Start registers the refresh job and starts the cron engine.
func (s *HolidayScheduler) Start() error {
	s.logger.Info("Starting holiday scheduler...")

	if _, err := s.cronEngine.AddFunc(s.cronSpec, s.runRefresh); err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Holiday scheduler started")
	return nil
}

func (s *HolidayScheduler) runRefresh() {
	s.logger.Info("Cron job triggered for holiday refresh.")
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.refresher.Refresh(ctx); err != nil {
		s.logger.WithError(err).Error("Holiday refresh failed")
		return
	}
	s.logger.Info("Holiday flag refreshed")
}

func (s *HolidayScheduler) Stop() {
	s.logger.Info("Stopping holiday scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Holiday scheduler gracefully stopped.")
}
