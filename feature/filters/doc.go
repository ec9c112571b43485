// Package filters exposes GET /filters, a read-only view of the filter chain.
//
// Given ?path=/appointments/1 it returns the filters that run for that path in
// execution order; without a path it lists every registered filter. The endpoint
// is disabled unless SERVER_EXPOSE_FILTERS is set.
package filters
