package chain

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Outcome is the result of a single filter invocation.
type Outcome int

const (
	// Continue hands the request to the next filter, or to the application handler.
	Continue Outcome = iota
	// Respond means the filter has written the response; the chain stops here.
	Respond
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Respond:
		return "respond"
	default:
		return "unknown"
	}
}

// Filter processes a request before it reaches the application handler.
type Filter interface {
	Process(c *fiber.Ctx) (Outcome, error)
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(c *fiber.Ctx) (Outcome, error)

// Process calls f(c).
func (f FilterFunc) Process(c *fiber.Ctx) (Outcome, error) {
	return f(c)
}

// Entry is a named, ordered, path-scoped filter registration.
type Entry struct {
	// Name is a human-readable label such as "Cors Filter".
	Name string
	// Order controls execution order. Lower runs earlier.
	Order int
	// Patterns lists the URL patterns the filter applies to.
	Patterns []string
	// Filter is the request-processing unit.
	Filter Filter

	compiled []pattern
}

// Matches reports whether any of the entry's patterns covers path.
func (e Entry) Matches(path string) bool {
	for _, p := range e.compiled {
		if p.match(path) {
			return true
		}
	}
	return false
}

// clone gives the caller its own Patterns slice. The compiled patterns are
// never written after Register and stay shared.
func (e Entry) clone() Entry {
	e.Patterns = append([]string(nil), e.Patterns...)
	return e
}

// Observer receives one call per filter invocation.
type Observer interface {
	ObserveFilter(name string, outcome Outcome, err error, elapsed time.Duration)
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration and short-circuit events.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithObserver attaches an Observer to Dispatch.
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		r.observer = o
	}
}

// Registry holds the filter entries of the process. It is populated during
// startup and sealed once it starts serving; after that it is read-only and
// safe for concurrent use without locking.
type Registry struct {
	entries  []Entry
	logger   *zap.Logger
	observer Observer
	sealed   atomic.Bool
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register validates and adds an entry. Entries are kept sorted by Order,
// with ties resolved by registration order.
func (r *Registry) Register(e Entry) error {
	if r.sealed.Load() {
		return configErr(e.Name, "registry is sealed, filters can only be registered at startup")
	}
	if e.Name == "" {
		return configErr("", "name must not be empty")
	}
	if e.Order < 0 {
		return configErr(e.Name, "order must not be negative, got %d", e.Order)
	}
	if len(e.Patterns) == 0 {
		return configErr(e.Name, "at least one url pattern is required")
	}
	if e.Filter == nil {
		return configErr(e.Name, "filter must not be nil")
	}

	compiled := make([]pattern, 0, len(e.Patterns))
	for _, raw := range e.Patterns {
		p, ok := compilePattern(raw)
		if !ok {
			return configErr(e.Name, "malformed url pattern %q", raw)
		}
		compiled = append(compiled, p)
	}

	e.Patterns = append([]string(nil), e.Patterns...)
	e.compiled = compiled

	r.entries = append(r.entries, e)
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Order < r.entries[j].Order
	})

	r.logger.Info("Filter registered",
		zap.String("name", e.Name),
		zap.Int("order", e.Order),
		zap.Strings("patterns", e.Patterns),
	)
	return nil
}

// Entries returns copies of all registered entries in execution order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.clone())
	}
	return out
}

// ResolveChain returns copies of the entries whose patterns match path, in
// execution order.
func (r *Registry) ResolveChain(path string) []Entry {
	var out []Entry
	for _, e := range r.entries {
		if e.Matches(path) {
			out = append(out, e.clone())
		}
	}
	return out
}

// Seal stops further registrations.
func (r *Registry) Seal() {
	r.sealed.Store(true)
}

// Dispatch runs the chain resolved for the request path. Filter errors are
// returned unchanged so the server's error handler decides the response.
// When every filter continues, the request proceeds to the next Fiber handler.
func (r *Registry) Dispatch(c *fiber.Ctx) error {
	path := c.Path()
	for _, e := range r.entries {
		if !e.Matches(path) {
			continue
		}
		start := time.Now()
		outcome, err := e.Filter.Process(c)
		if r.observer != nil {
			r.observer.ObserveFilter(e.Name, outcome, err, time.Since(start))
		}
		if err != nil {
			return err
		}
		if outcome == Respond {
			r.logger.Debug("Filter short-circuited request",
				zap.String("filter", e.Name),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
			)
			return nil
		}
	}
	return c.Next()
}

// Handler seals the registry and returns Dispatch as Fiber middleware.
func (r *Registry) Handler() fiber.Handler {
	r.Seal()
	return r.Dispatch
}
