package rate

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// runRefreshJob is the scheduled task: one Refresh per tick, tagged with an execID.
func (s *Synchronizer) runRefreshJob(jobCtx context.Context) {
	execID := uuid.NewString()
	start := s.clock.Now()

	err := s.Refresh(jobCtx)
	switch {
	case errors.Is(err, ErrSynchronizerStopped):
		logrus.Debugf("Refresh job %s skipped, synchronizer stopped", execID)
	case err != nil:
		logrus.Errorf("Refresh exchange rate job %s failed: %v", execID, err)
	default:
		logrus.Debugf("Refresh exchange rate job %s finished in %s", execID, s.clock.Since(start))
	}
}
