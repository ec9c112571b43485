// Package metrics exposes Prometheus collectors for the filter chain.
//
// FilterMetrics is attached to the chain registry as an observer and counts every
// filter invocation by outcome, so short-circuited requests (for example 401s from
// the auth filter or answered CORS preflights) are visible per filter.
package metrics
