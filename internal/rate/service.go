package rate

import (
	"context"
	"fmt"
	"storefx/internal/adapters"
	"storefx/internal/domain"

	"github.com/sirupsen/logrus"
)

// Refresher is the part of the Synchronizer the admin service depends on.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// ReadForgetter drops a shared source read that is still in flight.
type ReadForgetter interface {
	Forget()
}

// AdminService applies administrator writes and pulls them into the cache right away
// instead of waiting for the next tick.
type AdminService struct {
	writer    adapters.RateWriter
	refresher Refresher
	reads     ReadForgetter
	validator *RateValidator
}

func (s *AdminService) Activate(ctx context.Context, in ActivateRateInput) (domain.ExchangeRate, error) {
	bcv, blackMarket, err := s.validator.ValidateActivation(in)
	if err != nil {
		return domain.ExchangeRate{}, err
	}

	rate, err := s.writer.Activate(ctx, bcv, blackMarket)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("failed to activate exchange rate: %w", err)
	}

	// the write already succeeded; the next tick picks it up if this refresh fails
	if err = s.refreshUnshared(ctx); err != nil {
		logrus.WithError(err).Warn("Refresh after rate activation failed")
	}
	return rate, nil
}

func (s *AdminService) Deactivate(ctx context.Context) error {
	if err := s.writer.DeactivateActive(ctx); err != nil {
		return fmt.Errorf("failed to deactivate exchange rate: %w", err)
	}
	if err := s.refreshUnshared(ctx); err != nil {
		logrus.WithError(err).Warn("Refresh after rate deactivation failed")
	}
	return nil
}

func (s *AdminService) Refresh(ctx context.Context) error {
	return s.refreshUnshared(ctx)
}

// refreshUnshared never joins a read that started before the caller's write committed.
func (s *AdminService) refreshUnshared(ctx context.Context) error {
	if s.reads != nil {
		s.reads.Forget()
	}
	return s.refresher.Refresh(ctx)
}

// NewAdminService builds the admin service. reads may be nil when source reads are not shared.
func NewAdminService(writer adapters.RateWriter, refresher Refresher, validator *RateValidator, reads ReadForgetter) *AdminService {
	return &AdminService{writer: writer, refresher: refresher, reads: reads, validator: validator}
}
