// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application from this Config: the listen
// port, request timeouts, and which public surfaces (Swagger UI, the /filters
// introspection endpoint) are mounted.
package server
