package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"bookmyconsultation/core/middleware/chain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) Validate(ctx context.Context, token string) (*Identity, error) {
	args := m.Called(ctx, token)
	if id, ok := args.Get(0).(*Identity); ok {
		return id, args.Error(1)
	}
	return nil, args.Error(1)
}

func setupTestApp(t *testing.T, v Validator) *fiber.App {
	r := chain.NewRegistry()
	require.NoError(t, r.Register(chain.Entry{
		Name:     "Auth Filter",
		Order:    3,
		Patterns: []string{"/appointments/*", "/ratings"},
		Filter:   New(v, zap.NewNop()),
	}))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(r.Handler())
	app.All("/*", func(c *fiber.Ctx) error {
		user, _ := c.Locals(LocalsKey).(string)
		if id, ok := IdentityFromContext(c.UserContext()); ok {
			assert.Equal(t, user, id.UserID)
		}
		return c.JSON(fiber.Map{"user": user})
	})
	return app
}

func decode(t *testing.T, r io.Reader) map[string]any {
	var body map[string]any
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

func TestFilter_MissingHeader(t *testing.T) {
	v := new(mockValidator)
	app := setupTestApp(t, v)

	resp, err := app.Test(httptest.NewRequest("GET", "/appointments/1", nil))

	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
	v.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
}

func TestFilter_MalformedHeader(t *testing.T) {
	for _, h := range []string{"Token abc", "Bearer ", "Bearer    ", "abc"} {
		t.Run(h, func(t *testing.T) {
			app := setupTestApp(t, new(mockValidator))
			req := httptest.NewRequest("POST", "/ratings", nil)
			req.Header.Set("Authorization", h)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, 401, resp.StatusCode)
		})
	}
}

func TestFilter_ValidToken(t *testing.T) {
	v := new(mockValidator)
	v.On("Validate", mock.Anything, "good").Return(&Identity{UserID: "jane@example.com", TokenID: "t1"}, nil)
	app := setupTestApp(t, v)

	req := httptest.NewRequest("GET", "/appointments/1", nil)
	req.Header.Set("Authorization", "bearer good")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "jane@example.com", decode(t, resp.Body)["user"])
	v.AssertExpectations(t)
}

func TestFilter_RejectedTokens(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"Invalid", ErrInvalidToken, "Invalid or expired token"},
		{"WrappedInvalid", errors.Join(ErrInvalidToken, errors.New("token is expired")), "Invalid or expired token"},
		{"Revoked", ErrTokenRevoked, "Token has been revoked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := new(mockValidator)
			v.On("Validate", mock.Anything, "tok").Return(nil, tt.err)
			app := setupTestApp(t, v)

			req := httptest.NewRequest("POST", "/ratings", nil)
			req.Header.Set("Authorization", "Bearer tok")
			resp, err := app.Test(req)

			require.NoError(t, err)
			assert.Equal(t, 401, resp.StatusCode)
			assert.Equal(t, tt.msg, decode(t, resp.Body)["error"])
		})
	}
}

func TestFilter_InternalErrorPropagates(t *testing.T) {
	v := new(mockValidator)
	v.On("Validate", mock.Anything, "tok").Return(nil, errors.New("database is down"))
	app := setupTestApp(t, v)

	req := httptest.NewRequest("POST", "/ratings", nil)
	req.Header.Set("Authorization", "Bearer tok")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.Equal(t, "database is down", decode(t, resp.Body)["error"])
}

func TestFilter_PublicPathsUntouched(t *testing.T) {
	v := new(mockValidator)
	app := setupTestApp(t, v)

	for _, path := range []string{"/users/login", "/users/register", "/doctors", "/ratingsExtra", "/swagger/index.html"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode, path)
	}
	v.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
}

func TestJWTValidator(t *testing.T) {
	cfg := Config{JWTSecret: "s3cret", Issuer: "bookmyconsultation", TokenTTLMinutes: 5}

	t.Run("RoundTrip", func(t *testing.T) {
		v, err := NewJWTValidator(cfg, nil)
		require.NoError(t, err)

		token, issued, err := IssueAccessToken(cfg, "jane@example.com", time.Now())
		require.NoError(t, err)

		id, err := v.Validate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", id.UserID)
		assert.Equal(t, issued.TokenID, id.TokenID)
	})

	t.Run("Expired", func(t *testing.T) {
		v, _ := NewJWTValidator(cfg, nil)
		token, _, err := IssueAccessToken(cfg, "jane@example.com", time.Now().Add(-time.Hour))
		require.NoError(t, err)

		_, err = v.Validate(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := cfg
		other.JWTSecret = "other"
		v, _ := NewJWTValidator(other, nil)
		token, _, _ := IssueAccessToken(cfg, "jane@example.com", time.Now())

		_, err := v.Validate(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		other := cfg
		other.Issuer = "someone-else"
		v, _ := NewJWTValidator(cfg, nil)
		token, _, _ := IssueAccessToken(other, "jane@example.com", time.Now())

		_, err := v.Validate(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		v, _ := NewJWTValidator(cfg, nil)
		_, err := v.Validate(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("MissingSecret", func(t *testing.T) {
		_, err := NewJWTValidator(Config{}, nil)
		assert.ErrorIs(t, err, ErrMissingSecret)
		_, _, err = IssueAccessToken(Config{}, "x", time.Now())
		assert.ErrorIs(t, err, ErrMissingSecret)
	})
}

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s stubRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	return s.revoked[id], s.err
}

func TestJWTValidator_Revocation(t *testing.T) {
	cfg := Config{JWTSecret: "s3cret", TokenTTLMinutes: 5}
	token, issued, err := IssueAccessToken(cfg, "jane@example.com", time.Now())
	require.NoError(t, err)

	t.Run("Revoked", func(t *testing.T) {
		v, _ := NewJWTValidator(cfg, stubRevocations{revoked: map[string]bool{issued.TokenID: true}})
		_, err := v.Validate(context.Background(), token)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		v, _ := NewJWTValidator(cfg, stubRevocations{err: errors.New("boom")})
		_, err := v.Validate(context.Background(), token)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidToken)
	})
}

func TestConfig_PatternList(t *testing.T) {
	assert.Equal(t, []string{"/appointments/*", "/ratings"}, Config{Patterns: DefaultPatterns}.PatternList())
	assert.Empty(t, Config{}.PatternList())
	assert.Empty(t, Config{Patterns: " , "}.PatternList())
	assert.Equal(t, []string{"/a/*", "/b"}, Config{Patterns: " /a/* , /b ,"}.PatternList())
}
