// Package config provides configuration management for the service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults live in the `default` struct tags of each section and
// are registered by reflection, so every key can be overridden through the
// environment (SECTION_KEY, e.g. AUTH_PATTERNS or CORS_ALLOWED_ORIGINS).
//
// # Configuration Structure
//
//   - Server: HTTP port, timeouts and optional public surfaces
//   - Log: logging level and format
//   - Database: MySQL connection for the access token store
//   - Cors: CORS policy applied to every response
//   - Auth: JWT secret and the URL patterns guarded by the auth filter
//   - Metrics: Prometheus endpoint
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
