package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned for tokens that fail verification.
	ErrInvalidToken = errors.New("invalid access token")
	// ErrTokenRevoked is returned for tokens that were logged out.
	ErrTokenRevoked = errors.New("access token revoked")
	// ErrMissingSecret is returned when no signing secret is configured.
	ErrMissingSecret = errors.New("jwt secret is required")
)

// Identity is the authenticated caller attached to the request.
type Identity struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// Validator verifies a bearer token and returns the caller identity.
// Failures wrapping ErrInvalidToken or ErrTokenRevoked become 401 responses;
// any other error is treated as an internal failure.
type Validator interface {
	Validate(ctx context.Context, token string) (*Identity, error)
}

// RevocationChecker reports whether a token id has been logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// JWTValidator verifies HS256 access tokens.
type JWTValidator struct {
	secret  []byte
	issuer  string
	revoked RevocationChecker
}

// NewJWTValidator creates a validator. revoked may be nil.
func NewJWTValidator(cfg Config, revoked RevocationChecker) (*JWTValidator, error) {
	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	return &JWTValidator{
		secret:  []byte(cfg.JWTSecret),
		issuer:  cfg.Issuer,
		revoked: revoked,
	}, nil
}

// Validate implements Validator.
func (v *JWTValidator) Validate(ctx context.Context, token string) (*Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	if v.revoked != nil && claims.ID != "" {
		revoked, err := v.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	id := &Identity{UserID: claims.Subject, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// IssueAccessToken signs a token for userID with the configured secret and lifetime.
func IssueAccessToken(cfg Config, userID string, now time.Time) (string, *Identity, error) {
	if cfg.JWTSecret == "" {
		return "", nil, ErrMissingSecret
	}
	if userID == "" {
		return "", nil, errors.New("user id is required")
	}
	ttl := time.Duration(cfg.TokenTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}

	id := &Identity{
		UserID:    userID,
		TokenID:   uuid.New().String(),
		ExpiresAt: now.Add(ttl),
	}
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    cfg.Issuer,
		ID:        id.TokenID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(id.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, id, nil
}
