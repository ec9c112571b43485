package auth

import (
	"context"
	"errors"
	"strings"

	"bookmyconsultation/core/logger"
	"bookmyconsultation/core/middleware/chain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LocalsKey is the Fiber locals key holding the authenticated user id.
const LocalsKey = "user_id"

type contextKey struct{}

// Filter rejects requests that do not carry a valid bearer token.
type Filter struct {
	validator Validator
	logger    *zap.Logger
}

// New creates an auth filter.
func New(v Validator, l *zap.Logger) *Filter {
	if l == nil {
		l = zap.NewNop()
	}
	return &Filter{validator: v, logger: l}
}

// Process implements chain.Filter.
func (f *Filter) Process(c *fiber.Ctx) (chain.Outcome, error) {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return chain.Respond, unauthorized(c, "Missing or malformed Authorization header. Expected: Bearer <token>")
	}

	id, err := f.validator.Validate(c.UserContext(), token)
	switch {
	case errors.Is(err, ErrTokenRevoked):
		logger.WithRequestID(f.logger, c).Info("Rejected revoked token", zap.String("path", c.Path()))
		return chain.Respond, unauthorized(c, "Token has been revoked")
	case errors.Is(err, ErrInvalidToken):
		logger.WithRequestID(f.logger, c).Info("Rejected invalid token", zap.String("path", c.Path()), zap.Error(err))
		return chain.Respond, unauthorized(c, "Invalid or expired token")
	case err != nil:
		return chain.Continue, err
	}

	c.Locals(LocalsKey, id.UserID)
	c.SetUserContext(WithIdentity(c.UserContext(), id))
	return chain.Continue, nil
}

func unauthorized(c *fiber.Ctx, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(*Identity)
	return id, ok
}
