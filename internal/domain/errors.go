package domain

import "errors"

var (
	ErrNoActiveRate  = errors.New("no active exchange rate")
	ErrMalformedRate = errors.New("malformed exchange rate")
)
