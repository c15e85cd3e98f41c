package domain

import "time"

type RateChange struct {
	Old        ExchangeRate `json:"old"`
	New        ExchangeRate `json:"new"`
	DetectedAt time.Time    `json:"detected_at"`
}
