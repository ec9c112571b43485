package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// UserAuthToken records an issued access token so it can be logged out.
type UserAuthToken struct {
	ID        uint       `gorm:"column:id;primaryKey"`
	TokenID   string     `gorm:"column:token_id;size:64;uniqueIndex"`
	UserID    string     `gorm:"column:user_id;size:255;index"`
	IssuedAt  time.Time  `gorm:"column:issued_at"`
	ExpiresAt time.Time  `gorm:"column:expires_at"`
	LogoutAt  *time.Time `gorm:"column:logout_at"`
}

// TableName overrides the GORM default.
func (UserAuthToken) TableName() string {
	return "user_auth_tokens"
}

// TokenStore persists access tokens. It satisfies auth.RevocationChecker.
type TokenStore struct {
	db *gorm.DB
}

// NewTokenStore creates a store on db.
func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Migrate creates or updates the token table.
func (s *TokenStore) Migrate() error {
	if err := s.db.AutoMigrate(&UserAuthToken{}); err != nil {
		return fmt.Errorf("failed to migrate user_auth_tokens: %w", err)
	}
	return nil
}

// Save records an issued token.
func (s *TokenStore) Save(ctx context.Context, t *UserAuthToken) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to save token %s: %w", t.TokenID, err)
	}
	return nil
}

// Revoke marks a token as logged out. Revoking an unknown token is not an error.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, at time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&UserAuthToken{}).
		Where("token_id = ? AND logout_at IS NULL", tokenID).
		Update("logout_at", at).Error
	if err != nil {
		return fmt.Errorf("failed to revoke token %s: %w", tokenID, err)
	}
	return nil
}

// IsRevoked reports whether the token was logged out. Tokens the store has
// never seen are not considered revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var t UserAuthToken
	err := s.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up token %s: %w", tokenID, err)
	}
	return t.LogoutAt != nil, nil
}

// Ping verifies the connection is alive.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
