package model

import "context"

// Querier defines the common interface for executing one instant query
// against the time-series backend.
//
// Implementations never return an error: any transport or parsing failure is
// logged and degrades to an empty result, so callers treat "no rows" and
// "query failed" identically.
type Querier interface {
	// Query evaluates a single expression and returns one Sample per result row.
	Query(ctx context.Context, expr string) []Sample
}
