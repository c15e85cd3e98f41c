package rate

import (
	"fmt"
	"storefx/internal/adapters"
	"storefx/internal/domain"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

const displayPlaces = 2

// humanize.FormatFloat patterns: thousands separator, then decimal separator with precision.
const (
	patternDotComma   = "#.###,##"
	patternCommaDot   = "#,###.##"
	patternSpaceComma = "# ###,##"
)

var patternsByBase = map[string]string{
	"es": patternDotComma,
	"pt": patternDotComma,
	"de": patternDotComma,
	"it": patternDotComma,
	"nl": patternDotComma,
	"fr": patternSpaceComma,
}

type ProjectorConfig struct {
	Locale      string
	LocalSymbol string
	USDLocale   string
	USDSymbol   string
}

func DefaultProjectorConfig() ProjectorConfig {
	return ProjectorConfig{
		Locale:      "es-VE",
		LocalSymbol: "Bs.",
		USDLocale:   "en-US",
		USDSymbol:   "$",
	}
}

// Projector turns a USD amount and the current rate into display prices.
// It holds no mutable state.
type Projector struct {
	localPattern numberFormat
	localSymbol  string
	usdPattern   numberFormat
	usdSymbol    string
}

// Project never invents a local price: with a nil rate only the USD text is filled.
func (p *Projector) Project(amountUSD decimal.Decimal, rate *domain.ExchangeRate) domain.DisplayPrice {
	price := domain.DisplayPrice{
		AmountUSD: amountUSD,
		USD:       p.usdSymbol + p.format(p.usdPattern, amountUSD),
	}
	if rate == nil {
		return price
	}

	official := amountUSD.Mul(rate.BCVRate).Round(displayPlaces)
	parallel := amountUSD.Mul(rate.BlackMarketRate).Round(displayPlaces)
	price.Local = &domain.LocalPrice{
		Official:      official,
		OfficialText:  p.localSymbol + " " + p.format(p.localPattern, official),
		Parallel:      parallel,
		ParallelText:  p.localSymbol + " " + p.format(p.localPattern, parallel),
		RateSignature: rate.Signature(),
	}
	return price
}

func (p *Projector) ProjectAll(amountsUSD []decimal.Decimal, rate *domain.ExchangeRate) []domain.DisplayPrice {
	prices := make([]domain.DisplayPrice, 0, len(amountsUSD))
	for _, amount := range amountsUSD {
		prices = append(prices, p.Project(amount, rate))
	}
	return prices
}

// format renders amount with two fixed places straight from the decimal, so any
// magnitude keeps its exact digits.
func (p *Projector) format(pattern numberFormat, amount decimal.Decimal) string {
	rounded := amount.Round(displayPlaces)
	fixed := rounded.Abs().StringFixed(displayPlaces)
	_, cents, _ := strings.Cut(fixed, ".")

	whole := humanize.BigComma(rounded.Abs().Truncate(0).BigInt())
	if pattern.thousands != "," {
		whole = strings.ReplaceAll(whole, ",", pattern.thousands)
	}

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + whole + pattern.decimal + cents
}

func NewProjector(cfg ProjectorConfig) (*Projector, error) {
	def := DefaultProjectorConfig()
	if cfg.Locale == "" {
		cfg.Locale = def.Locale
	}
	if cfg.LocalSymbol == "" {
		cfg.LocalSymbol = def.LocalSymbol
	}
	if cfg.USDLocale == "" {
		cfg.USDLocale = def.USDLocale
	}
	if cfg.USDSymbol == "" {
		cfg.USDSymbol = def.USDSymbol
	}

	localPattern, err := patternFor(cfg.Locale)
	if err != nil {
		return nil, err
	}
	usdPattern, err := patternFor(cfg.USDLocale)
	if err != nil {
		return nil, err
	}

	return &Projector{
		localPattern: localPattern,
		localSymbol:  cfg.LocalSymbol,
		usdPattern:   usdPattern,
		usdSymbol:    cfg.USDSymbol,
	}, nil
}

func patternFor(locale string) (numberFormat, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return numberFormat{}, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	base, _ := tag.Base()
	if pattern, ok := patternsByBase[base.String()]; ok {
		return pattern, nil
	}
	return patternCommaDot, nil
}

// CachedProjector memoizes projections per amount and rate signature.
// A new rate has a new signature, so stale entries are never served, only evicted.
type CachedProjector struct {
	projector *Projector
	cache     adapters.ProjectionCache
}

func (c *CachedProjector) Project(amountUSD decimal.Decimal, rate *domain.ExchangeRate) domain.DisplayPrice {
	key := projectionKey(amountUSD, rate)
	if price, ok := c.cache.Get(key); ok {
		return price
	}
	price := c.projector.Project(amountUSD, rate)
	c.cache.Set(key, price)
	return price
}

func (c *CachedProjector) ProjectAll(amountsUSD []decimal.Decimal, rate *domain.ExchangeRate) []domain.DisplayPrice {
	prices := make([]domain.DisplayPrice, 0, len(amountsUSD))
	for _, amount := range amountsUSD {
		prices = append(prices, c.Project(amount, rate))
	}
	return prices
}

func projectionKey(amountUSD decimal.Decimal, rate *domain.ExchangeRate) string {
	sig := "usd"
	if rate != nil {
		sig = rate.Signature()
	}
	return amountUSD.String() + "@" + sig
}

func NewCachedProjector(projector *Projector, cache adapters.ProjectionCache) *CachedProjector {
	return &CachedProjector{projector: projector, cache: cache}
}
