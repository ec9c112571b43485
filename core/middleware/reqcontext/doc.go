// Package reqcontext assigns each request an id (reusing X-Request-ID when the
// client sends one) and records a RequestContext on the Fiber user context.
package reqcontext
