package rate

import (
	"context"
	"storefx/internal/adapters"
	"storefx/internal/domain"

	"golang.org/x/sync/singleflight"
)

const activeRateKey = "active"

// CoalescedSource joins concurrent GetActive calls into one read of the wrapped source.
// The shared call runs with the context of the caller that started it.
type CoalescedSource struct {
	source adapters.RateSource
	group  singleflight.Group
}

func (c *CoalescedSource) GetActive(ctx context.Context) (domain.ExchangeRate, error) {
	v, err, _ := c.group.Do(activeRateKey, func() (interface{}, error) {
		return c.source.GetActive(ctx)
	})
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	return v.(domain.ExchangeRate), nil
}

// Forget detaches a read already in flight, so the next GetActive queries the source again.
// Callers that have just written to the source use it to avoid joining a read that began
// before the write.
func (c *CoalescedSource) Forget() {
	c.group.Forget(activeRateKey)
}

func NewCoalescedSource(source adapters.RateSource) *CoalescedSource {
	return &CoalescedSource{source: source}
}
