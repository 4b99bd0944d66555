package backup

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/palabras/internal/logger"
)

// Scheduler runs a Backupper on a fixed interval.
type Scheduler struct {
	cron   *gocron.Scheduler
	runner *Backupper
	log    *logger.Logger
}

// NewScheduler schedules b every interval. The first backup runs one
// interval after Start.
func NewScheduler(b *Backupper, interval time.Duration, log *logger.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   gocron.NewScheduler(time.UTC),
		runner: b,
		log:    log.WithPrefix("backup"),
	}
	s.cron.SingletonModeAll()
	if _, err := s.cron.Every(interval).WaitForSchedule().Do(s.run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) run() {
	ctx := logger.NewContext(context.Background(), s.log)
	if _, err := s.runner.Run(ctx); err != nil {
		s.log.Error("scheduled backup failed: %v", err)
	}
}

// Start begins running scheduled backups without blocking.
func (s *Scheduler) Start() {
	s.cron.StartAsync()
}

// Stop waits for a running backup to finish and stops the schedule.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
