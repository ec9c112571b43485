// Package middleware wires the request filter chain of the service.
//
// Filters run before the application handlers, in ascending order, and only on
// the paths their URL patterns match. NewRegistry registers the startup set:
//
//	name               order  patterns
//	Cors Filter        0      /*
//	reqContext Filter  1      /*
//	Auth Filter        3      /appointments/*, /ratings
//
// # Components
//
//   - chain: the registry, URL pattern matching and dispatch.
//   - cors: writes CORS headers and answers preflight requests.
//   - reqcontext: assigns a request id and records per-request context.
//   - auth: requires a valid bearer token on the guarded paths.
//
// The auth patterns come from configuration (AUTH_PATTERNS) and default to the
// table above. Login, registration, doctor listing, health, metrics and Swagger
// paths are deliberately left out so unauthenticated bootstrap flows keep working.
package middleware
