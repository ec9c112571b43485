// Package database handles the optional MySQL connection and the access token store.
//
// It provides a wrapper around GORM to configure MySQL connections from the
// application's configuration.
//
// # Token Store
//
// TokenStore records issued access tokens in the user_auth_tokens table. The auth
// filter consults it through IsRevoked so that tokens logged out before their
// expiry are rejected. Without a database, tokens are only checked for signature,
// issuer and expiry.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database, logg)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	store := database.NewTokenStore(db)
//	revoked, err := store.IsRevoked(ctx, tokenID)
package database
