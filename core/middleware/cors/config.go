package cors

// Config holds the CORS policy applied to every response.
type Config struct {
	// AllowedOrigins is a comma separated list of origins, or "*" for any.
	AllowedOrigins string `mapstructure:"allowed_origins" default:"*"`
	// AllowedMethods is the value of Access-Control-Allow-Methods.
	AllowedMethods string `mapstructure:"allowed_methods" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	// AllowedHeaders is the value of Access-Control-Allow-Headers.
	AllowedHeaders string `mapstructure:"allowed_headers" default:"Origin,Content-Type,Accept,Authorization,X-Request-ID"`
	// ExposedHeaders is the value of Access-Control-Expose-Headers.
	ExposedHeaders string `mapstructure:"exposed_headers" default:"X-Request-ID,WWW-Authenticate"`
	// MaxAgeSeconds is how long browsers may cache a preflight answer.
	MaxAgeSeconds int `mapstructure:"max_age_seconds" default:"3600"`
}
