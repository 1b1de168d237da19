package domain

import "errors"

var (
	ErrCurrencyNotFound = errors.New("currency not found")
	ErrCurrencyExists   = errors.New("currency with this code already exists")
	ErrBusUnavailable   = errors.New("event bus unavailable")
)
