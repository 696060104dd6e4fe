package services

import (
	"fmt"

	"github.com/NammaLakes/dashboard/internal/utils"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pruner drops expired archived alerts
type Pruner interface {
	PruneArchived() int
}

// ExpiryScheduler runs archived-alert expiry on a cron schedule so the
// archive shrinks even when no alert traffic triggers a reconciliation
type ExpiryScheduler struct {
	cron     *cron.Cron
	entryID  cron.EntryID
	schedule string
	logger   *utils.Logger
}

// NewExpiryScheduler schedules pruner. schedule accepts standard five
// field expressions and descriptors such as "@every 1m".
func NewExpiryScheduler(schedule string, pruner Pruner, logger *utils.Logger) (*ExpiryScheduler, error) {
	s := &ExpiryScheduler{
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger.Named("expiry_scheduler"),
	}

	entryID, err := s.cron.AddFunc(schedule, func() {
		if removed := pruner.PruneArchived(); removed > 0 {
			s.logger.Info("Expired archived alerts", zap.Int("count", removed))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid expiry schedule %q: %w", schedule, err)
	}
	s.entryID = entryID

	return s, nil
}

// Start begins running the schedule in the background
func (s *ExpiryScheduler) Start() {
	s.cron.Start()
	s.logger.Info("Expiry scheduler started", zap.String("schedule", s.schedule))
}

// Stop halts the schedule and waits for a running pass to finish
func (s *ExpiryScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Expiry scheduler stopped")
}
