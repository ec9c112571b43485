package auth

import "strings"

// DefaultPatterns are the path groups that require an access token.
// Registration, login, doctor listing and documentation stay public.
const DefaultPatterns = "/appointments/*,/ratings"

// Config holds configuration for the authentication filter.
type Config struct {
	// JWTSecret signs and verifies HS256 access tokens.
	JWTSecret string `mapstructure:"jwt_secret" default:""`
	// Issuer is written to and required in the iss claim when not empty.
	Issuer string `mapstructure:"issuer" default:"bookmyconsultation"`
	// TokenTTLMinutes is the lifetime of tokens issued by IssueAccessToken.
	TokenTTLMinutes int `mapstructure:"token_ttl_minutes" default:"480"`
	// Patterns is a comma separated list of URL patterns guarded by the filter.
	// An unset AUTH_PATTERNS takes the default; a value holding no pattern,
	// such as ",", leaves the filter without patterns and fails startup.
	Patterns string `mapstructure:"patterns" default:"/appointments/*,/ratings"`
	// CheckRevocation enables the token store lookup when a database is connected.
	CheckRevocation bool `mapstructure:"check_revocation" default:"true"`
}

// PatternList splits Patterns. It does not fall back to DefaultPatterns.
func (c Config) PatternList() []string {
	var out []string
	for _, p := range strings.Split(c.Patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
