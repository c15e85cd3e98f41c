package rate

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs a task every interval until Shutdown.
type Scheduler interface {
	Start(interval time.Duration, task func(ctx context.Context)) error
	Shutdown() error
}

// GocronScheduler runs the task as a gocron duration job in singleton mode: a tick that
// fires while the previous run is still going is rescheduled instead of stacked.
type GocronScheduler struct {
	opts []gocron.SchedulerOption

	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *GocronScheduler) Start(interval time.Duration, task func(ctx context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched != nil {
		return nil
	}

	scheduler, err := gocron.NewScheduler(s.opts...)
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	scheduler.Start()
	s.sched = scheduler
	return nil
}

func (s *GocronScheduler) Shutdown() error {
	s.mu.Lock()
	sched := s.sched
	s.sched = nil
	s.mu.Unlock()

	if sched == nil {
		return nil
	}
	return sched.Shutdown()
}

// NewGocronScheduler passes opts to gocron.NewScheduler, e.g. gocron.WithClock for tests.
func NewGocronScheduler(opts ...gocron.SchedulerOption) *GocronScheduler {
	return &GocronScheduler{opts: opts}
}
