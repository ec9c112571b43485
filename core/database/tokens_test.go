package database

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestTokenStore_IsRevoked(t *testing.T) {
	query := regexp.QuoteMeta("SELECT * FROM `user_auth_tokens` WHERE token_id = ?")
	columns := []string{"id", "token_id", "user_id", "issued_at", "expires_at", "logout_at"}
	now := time.Now()

	t.Run("Active", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(query).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "t1", "jane", now, now.Add(time.Hour), nil))

		revoked, err := NewTokenStore(db).IsRevoked(context.Background(), "t1")
		require.NoError(t, err)
		assert.False(t, revoked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LoggedOut", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(query).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "t1", "jane", now, now.Add(time.Hour), now))

		revoked, err := NewTokenStore(db).IsRevoked(context.Background(), "t1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("Unknown", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(columns))

		revoked, err := NewTokenStore(db).IsRevoked(context.Background(), "t2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(query).WillReturnError(assert.AnError)

		_, err := NewTokenStore(db).IsRevoked(context.Background(), "t3")
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestTokenStore_Save(t *testing.T) {
	db, mock := setupMockDB(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `user_auth_tokens`")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tok := &UserAuthToken{TokenID: "t1", UserID: "jane", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, NewTokenStore(db).Save(context.Background(), tok))
	assert.Equal(t, uint(1), tok.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenStore_Revoke(t *testing.T) {
	db, mock := setupMockDB(t)
	at := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `user_auth_tokens` SET `logout_at`=? WHERE token_id = ? AND logout_at IS NULL")).
		WithArgs(sqlmock.AnyArg(), "t1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewTokenStore(db).Revoke(context.Background(), "t1", at))
	assert.NoError(t, mock.ExpectationsWereMet())
}
