// Package auth guards protected paths with bearer access tokens.
//
// The Filter extracts the token from the Authorization header and hands it to a
// Validator. Missing, invalid, expired or revoked tokens get a 401 with
// WWW-Authenticate: Bearer and stop the chain. Other validator errors, such as an
// unreachable token store, are returned to the server's error handler.
//
// JWTValidator verifies HS256 tokens issued by IssueAccessToken and, when given a
// RevocationChecker (the database token store), rejects logged-out tokens.
// On success the caller's Identity is available through IdentityFromContext.
package auth
