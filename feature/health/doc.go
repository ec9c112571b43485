// Package health exposes GET /health. The path is public: only the CORS and
// request context filters run in front of it.
package health
