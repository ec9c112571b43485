// Package chain implements an ordered, path-scoped filter chain for Fiber.
//
// A Registry holds Entries, each with a name, an order and one or more URL
// patterns. For a request path, ResolveChain selects every entry with a matching
// pattern, lowest order first and ties in registration order. This is a chain,
// not a router: all matching entries run, not just the first.
//
// # URL Patterns
//
//   - "/*" matches every path.
//   - "/appointments/*" matches "/appointments" and anything below it, compared
//     segment by segment, so "/appointmentsX" does not match.
//   - Any other pattern, such as "/ratings", matches only that exact path.
//
// # Dispatch
//
// Each Filter returns Continue or Respond. Respond means the filter has already
// written the response (a 401 or an answered preflight) and the remaining filters
// and the application handler are skipped. Errors are returned to Fiber's error
// handler unchanged.
//
// Entries are registered during startup. Handler seals the registry; from then on
// it is read-only and shared by all request goroutines without locking.
//
//	r := chain.NewRegistry(chain.WithLogger(log))
//	err := r.Register(chain.Entry{Name: "Auth Filter", Order: 3, Patterns: []string{"/ratings"}, Filter: f})
//	app.Use(r.Handler())
package chain
