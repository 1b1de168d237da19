package domain

import "context"

// RateProvider fetches the current rate list from an upstream source.
// Fetch never fails: on any upstream error the provider returns its
// fixed fallback set instead.
type RateProvider interface {
	Fetch(ctx context.Context) []FetchedRate
}
