package middleware

import (
	"fmt"

	"bookmyconsultation/core/middleware/chain"
)

// Names and orders of the filters registered at startup. CORS runs first so
// even rejected requests carry CORS headers; the request context comes before
// authentication so auth failures stay traceable.
const (
	CorsFilterName       = "Cors Filter"
	ReqContextFilterName = "reqContext Filter"
	AuthFilterName       = "Auth Filter"

	CorsFilterOrder       = 0
	ReqContextFilterOrder = 1
	AuthFilterOrder       = 3
)

// Filters are the collaborators wired into the chain.
type Filters struct {
	Cors       chain.Filter
	ReqContext chain.Filter
	Auth       chain.Filter
}

// NewRegistry registers the three startup filters. authPatterns lists the
// paths that require authentication; registration, login and documentation
// endpoints must not be in it.
func NewRegistry(f Filters, authPatterns []string, opts ...chain.Option) (*chain.Registry, error) {
	r := chain.NewRegistry(opts...)

	entries := []chain.Entry{
		{Name: CorsFilterName, Order: CorsFilterOrder, Patterns: []string{chain.MatchAll}, Filter: f.Cors},
		{Name: ReqContextFilterName, Order: ReqContextFilterOrder, Patterns: []string{chain.MatchAll}, Filter: f.ReqContext},
		{Name: AuthFilterName, Order: AuthFilterOrder, Patterns: authPatterns, Filter: f.Auth},
	}
	for _, e := range entries {
		if err := r.Register(e); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", e.Name, err)
		}
	}
	return r, nil
}
