package notify

import (
	"storefx/internal/adapters"
	"storefx/internal/domain"

	"github.com/sirupsen/logrus"
)

// Fanout hands every change to each notifier in order. Notifiers must not block.
type Fanout []adapters.ChangeNotifier

func (f Fanout) NotifyRateChanged(change domain.RateChange) {
	for _, n := range f {
		n.NotifyRateChanged(change)
	}
}

// Func adapts a plain function to adapters.ChangeNotifier.
type Func func(change domain.RateChange)

func (f Func) NotifyRateChanged(change domain.RateChange) { f(change) }

type LogNotifier struct{}

func (LogNotifier) NotifyRateChanged(change domain.RateChange) {
	logrus.WithFields(logrus.Fields{
		"old_bcv":          change.Old.BCVRate.String(),
		"old_black_market": change.Old.BlackMarketRate.String(),
		"new_bcv":          change.New.BCVRate.String(),
		"new_black_market": change.New.BlackMarketRate.String(),
	}).Info("Exchange rate updated, storefront prices now use the new rate")
}
