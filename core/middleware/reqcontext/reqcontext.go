package reqcontext

import (
	"context"
	"time"

	"bookmyconsultation/core/middleware/chain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID is the header used to receive and echo the request id.
	HeaderRequestID = "X-Request-ID"
	// LocalsKey is the Fiber locals key holding the request id string.
	LocalsKey = "request_id"

	maxRequestIDLength = 128
)

type contextKey struct{}

// RequestContext is the per-request data established before authentication
// so that every later log line and failure can be traced.
type RequestContext struct {
	RequestID string
	ClientIP  string
	UserAgent string
	Method    string
	Path      string
	StartedAt time.Time
}

// Filter establishes the RequestContext for every request.
type Filter struct {
	now   func() time.Time
	newID func() string
}

// New creates a request context filter.
func New() *Filter {
	return &Filter{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Process implements chain.Filter. It never short-circuits.
func (f *Filter) Process(c *fiber.Ctx) (chain.Outcome, error) {
	id := utils.CopyString(c.Get(HeaderRequestID))
	if id == "" || len(id) > maxRequestIDLength {
		id = f.newID()
	}

	// Fiber strings alias the request buffer; copy what outlives the handler.
	rc := &RequestContext{
		RequestID: id,
		ClientIP:  utils.CopyString(c.IP()),
		UserAgent: utils.CopyString(c.Get(fiber.HeaderUserAgent)),
		Method:    utils.CopyString(c.Method()),
		Path:      utils.CopyString(c.Path()),
		StartedAt: f.now(),
	}

	c.Set(HeaderRequestID, id)
	c.Locals(LocalsKey, id)
	c.SetUserContext(WithContext(c.UserContext(), rc))
	return chain.Continue, nil
}

// WithContext returns a copy of ctx carrying rc.
func WithContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// FromContext returns the RequestContext stored in ctx, if any.
func FromContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(contextKey{}).(*RequestContext)
	return rc, ok
}

// RequestID returns the request id recorded on the Fiber context, or "".
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsKey).(string)
	return id
}
