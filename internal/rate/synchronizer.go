package rate

import (
	"context"
	"errors"
	"fmt"
	"storefx/internal/adapters"
	"storefx/internal/domain"
	"storefx/internal/metrics"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// DefaultInterval is the polling interval used unless WithInterval overrides it.
const DefaultInterval = 30 * time.Second

// ErrSynchronizerStopped is returned by Start and Refresh once Stop has been called.
var ErrSynchronizerStopped = errors.New("exchange rate synchronizer stopped")

// Option configures a Synchronizer in NewSynchronizer.
type Option func(*Synchronizer)

// WithInterval sets the polling interval; non-positive values keep DefaultInterval.
func WithInterval(interval time.Duration) Option {
	return func(s *Synchronizer) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithMetrics records refresh outcomes, changes and the current rate on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Synchronizer) { s.metrics = m }
}

// WithClock sets the clock used to stamp detected changes; nil keeps the real clock.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Synchronizer) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Synchronizer keeps a Cache eventually consistent with a RateSource and reports every
// observed change of the rate signature exactly once.
//
// Every Refresh is tagged with a sequence number when issued. A result is applied only if
// no later-issued refresh has been applied already, so a slow response can never overwrite
// a newer one. After Stop no result is applied at all.
type Synchronizer struct {
	source   adapters.RateSource
	notifier adapters.ChangeNotifier
	cache    *Cache
	sched    Scheduler
	interval time.Duration
	metrics  *metrics.Metrics
	clock    clockwork.Clock

	mu       sync.Mutex
	issued   uint64
	applied  uint64
	hydrated bool
	running  bool
	stopped  bool
	done     chan struct{}
}

// Hydrate seeds the cache with a snapshot read before the synchronizer started, so the
// first responses agree with what was rendered server side. It never notifies and is
// ignored once the cache has been seeded or refreshed.
func (s *Synchronizer) Hydrate(snapshot *domain.ExchangeRate) {
	if snapshot == nil {
		return
	}
	if err := snapshot.Validate(); err != nil {
		logrus.WithError(err).Warn("Ignoring malformed exchange rate snapshot")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.hydrated || s.applied > 0 {
		logrus.Debug("Exchange rate cache already seeded, snapshot ignored")
		return
	}
	s.hydrated = true
	s.storeLocked(*snapshot)
}

// Refresh reads the active rate from the source and applies it to the cache.
// Failures leave the cache untouched and are returned after being logged.
// Results superseded by a later refresh, or arriving after Stop, are dropped silently.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrSynchronizerStopped
	}
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	rate, err := s.source.GetActive(ctx)
	if err == nil {
		err = rate.Validate()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		s.metrics.ObserveRefresh(metrics.OutcomeDiscarded)
		logrus.WithField("seq", seq).Debug("Exchange rate result arrived after stop, discarded")
		return nil
	}

	if err != nil && !errors.Is(err, domain.ErrNoActiveRate) {
		s.metrics.ObserveRefresh(metrics.OutcomeFailed)
		logrus.WithError(err).WithField("seq", seq).Warn("Exchange rate refresh failed, keeping last known rate")
		return fmt.Errorf("failed to refresh exchange rate: %w", err)
	}

	if seq <= s.applied {
		s.metrics.ObserveRefresh(metrics.OutcomeStale)
		logrus.WithFields(logrus.Fields{"seq": seq, "applied": s.applied}).Debug("Stale exchange rate result discarded")
		return nil
	}
	s.applied = seq

	if err != nil {
		if _, had := s.cache.Read(); had {
			logrus.Warn("Active exchange rate withdrawn, prices fall back to USD only")
		}
		s.cache.clear()
		s.metrics.SetCurrentRate(0, 0)
		s.metrics.ObserveRefresh(metrics.OutcomeNoRate)
		return nil
	}

	prev, had := s.cache.Read()
	s.storeLocked(rate)
	s.metrics.ObserveRefresh(metrics.OutcomeApplied)

	if had && prev.Signature() != rate.Signature() {
		change := domain.RateChange{Old: prev, New: rate, DetectedAt: s.clock.Now()}
		s.notifier.NotifyRateChanged(change)
		s.metrics.ObserveChange()
		logrus.WithFields(logrus.Fields{
			"old": prev.Signature(),
			"new": rate.Signature(),
		}).Info("Exchange rate changed")
	}
	return nil
}

// Start performs one immediate refresh and then refreshes every interval until Stop is
// called or ctx is cancelled. Calling Start on a running synchronizer is a no-op.
func (s *Synchronizer) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrSynchronizerStopped
	}
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	// a failed first refresh is logged inside and retried on the next tick
	_ = s.Refresh(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}
	if err := s.sched.Start(s.interval, s.runRefreshJob); err != nil {
		s.running = false
		return fmt.Errorf("failed to start exchange rate scheduler: %w", err)
	}

	done := s.done
	go func() {
		select {
		case <-ctx.Done():
			if err := s.Stop(); err != nil {
				logrus.Errorf("Exchange rate scheduler shutdown error: %v", err)
			}
		case <-done:
		}
	}()
	return nil
}

// Stop cancels the polling job. Results of fetches still in flight are discarded.
// It is safe to call Stop more than once, and before Start.
func (s *Synchronizer) Stop() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	s.running = false
	close(s.done)
	s.mu.Unlock()

	return s.sched.Shutdown()
}

func (s *Synchronizer) Cache() *Cache {
	return s.cache
}

func (s *Synchronizer) Interval() time.Duration {
	return s.interval
}

func (s *Synchronizer) storeLocked(rate domain.ExchangeRate) {
	s.cache.store(rate)
	s.metrics.SetCurrentRate(rate.BCVRate.InexactFloat64(), rate.BlackMarketRate.InexactFloat64())
}

type noopNotifier struct{}

func (noopNotifier) NotifyRateChanged(domain.RateChange) {}

// NewSynchronizer wires a synchronizer; a nil cache gets a fresh one and a nil notifier
// drops change events.
func NewSynchronizer(source adapters.RateSource, notifier adapters.ChangeNotifier, cache *Cache, sched Scheduler, opts ...Option) *Synchronizer {
	if cache == nil {
		cache = NewCache()
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	s := &Synchronizer{
		source:   source,
		notifier: notifier,
		cache:    cache,
		sched:    sched,
		interval: DefaultInterval,
		clock:    clockwork.NewRealClock(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
