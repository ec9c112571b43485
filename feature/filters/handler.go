package filters

import (
	"bookmyconsultation/core/middleware/chain"

	"github.com/gofiber/fiber/v2"
)

// FilterView describes one entry of a resolved chain.
type FilterView struct {
	Name     string   `json:"name"`
	Order    int      `json:"order"`
	Patterns []string `json:"patterns"`
}

// ChainReport is the resolved chain for a path.
type ChainReport struct {
	Path    string       `json:"path"`
	Filters []FilterView `json:"filters"`
}

// Feature exposes the filter chain for inspection.
type Feature struct {
	registry *chain.Registry
	enabled  bool
}

// NewFeature creates the filters feature.
func NewFeature(registry *chain.Registry, enabled bool) *Feature {
	return &Feature{registry: registry, enabled: enabled}
}

// Name implements loader.Feature.
func (f *Feature) Name() string { return "filters" }

// IsEnabled implements loader.Feature.
func (f *Feature) IsEnabled() bool { return f.enabled }

// Load implements loader.Feature.
func (f *Feature) Load(app fiber.Router) error {
	app.Get("/filters", f.HandleResolve)
	return nil
}

// HandleResolve returns the chain that applies to a path.
// @Summary Resolve Filter Chain
// @Description Lists the filters, in execution order, that run for the given request path. Without a path, lists every registered filter.
// @Tags filters
// @Produce json
// @Param path query string false "Request path to resolve, e.g. /appointments/1"
// @Success 200 {object} filters.ChainReport "Resolved chain"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /filters [get]
func (f *Feature) HandleResolve(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.JSON(Report("", f.registry.Entries()))
	}
	if path[0] != '/' {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path must start with /"})
	}
	return c.JSON(Report(path, f.registry.ResolveChain(path)))
}

// Report converts entries into a ChainReport.
func Report(path string, entries []chain.Entry) ChainReport {
	r := ChainReport{Path: path, Filters: make([]FilterView, 0, len(entries))}
	for _, e := range entries {
		r.Filters = append(r.Filters, FilterView{Name: e.Name, Order: e.Order, Patterns: e.Patterns})
	}
	return r
}
