package stream

import (
	"context"
	"time"

	"github.com/skhartaye/SMOKI/internal/logger"
)

// Scheduler drives segment generation on a fixed period, independent of
// request traffic. A failed generation is logged and retried on the next tick
// after a short backoff rather than terminating the loop.
type Scheduler struct {
	packager *Packager
	period   time.Duration
	backoff  time.Duration
	logger   *logger.Logger
}

// NewScheduler creates a Scheduler ticking at the packager's nominal segment
// duration.
func NewScheduler(packager *Packager, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		packager: packager,
		period:   time.Duration(packager.duration) * time.Second,
		backoff:  time.Second,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, generating one segment per period.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	s.logger.Info("Segment scheduler started (period %s)", s.period)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Segment scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.packager.GenerateSegment(); err != nil {
				s.logger.Error("Segment generation failed: %v", err)
				select {
				case <-ctx.Done():
					s.logger.Info("Segment scheduler stopped")
					return
				case <-time.After(s.backoff):
				}
			}
		}
	}
}
