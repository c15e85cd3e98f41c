package domain

import "github.com/shopspring/decimal"

// DisplayPrice is what a storefront renders next to a product. Local is nil when no
// exchange rate is known; callers show the USD figure alone in that case.
type DisplayPrice struct {
	AmountUSD decimal.Decimal `json:"amount_usd"`
	USD       string          `json:"usd"`
	Local     *LocalPrice     `json:"local,omitempty"`
}

type LocalPrice struct {
	Official      decimal.Decimal `json:"official"`
	OfficialText  string          `json:"official_text"`
	Parallel      decimal.Decimal `json:"parallel"`
	ParallelText  string          `json:"parallel_text"`
	RateSignature string          `json:"rate_signature"`
}
