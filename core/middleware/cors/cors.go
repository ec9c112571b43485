package cors

import (
	"strconv"
	"strings"

	"bookmyconsultation/core/middleware/chain"

	"github.com/gofiber/fiber/v2"
)

// Filter writes CORS headers before anything else runs, so rejected and
// failed requests still carry them.
type Filter struct {
	allowAll       bool
	origins        map[string]struct{}
	allowedMethods string
	allowedHeaders string
	exposedHeaders string
	maxAge         string
}

// New builds a CORS filter from cfg.
func New(cfg Config) *Filter {
	f := &Filter{
		origins:        make(map[string]struct{}),
		allowedMethods: joinList(cfg.AllowedMethods),
		allowedHeaders: joinList(cfg.AllowedHeaders),
		exposedHeaders: joinList(cfg.ExposedHeaders),
	}
	for _, o := range splitList(cfg.AllowedOrigins) {
		if o == "*" {
			f.allowAll = true
			continue
		}
		f.origins[strings.ToLower(o)] = struct{}{}
	}
	if cfg.MaxAgeSeconds > 0 {
		f.maxAge = strconv.Itoa(cfg.MaxAgeSeconds)
	}
	return f
}

// Process implements chain.Filter. Preflight requests are answered here.
func (f *Filter) Process(c *fiber.Ctx) (chain.Outcome, error) {
	origin := c.Get(fiber.HeaderOrigin)
	allowed := f.allowOrigin(c, origin)

	if allowed && f.exposedHeaders != "" {
		c.Set(fiber.HeaderAccessControlExposeHeaders, f.exposedHeaders)
	}

	if c.Method() != fiber.MethodOptions || c.Get(fiber.HeaderAccessControlRequestMethod) == "" {
		return chain.Continue, nil
	}

	if allowed {
		c.Set(fiber.HeaderAccessControlAllowMethods, f.allowedMethods)
		if f.allowedHeaders != "" {
			c.Set(fiber.HeaderAccessControlAllowHeaders, f.allowedHeaders)
		} else if h := c.Get(fiber.HeaderAccessControlRequestHeaders); h != "" {
			c.Set(fiber.HeaderAccessControlAllowHeaders, h)
		}
		if f.maxAge != "" {
			c.Set(fiber.HeaderAccessControlMaxAge, f.maxAge)
		}
	}
	return chain.Respond, c.SendStatus(fiber.StatusNoContent)
}

func (f *Filter) allowOrigin(c *fiber.Ctx, origin string) bool {
	if f.allowAll {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		return true
	}
	if origin == "" {
		return false
	}
	if _, ok := f.origins[strings.ToLower(origin)]; !ok {
		return false
	}
	c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
	c.Vary(fiber.HeaderOrigin)
	return true
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinList(s string) string {
	return strings.Join(splitList(s), ", ")
}
