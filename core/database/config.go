package database

// Config holds configuration for the database connection.
type Config struct {
	// Enabled turns the optional connection on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"bookmyconsultation"`
	// TimeoutSeconds bounds connection setup, reads and writes.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// MaxOpenConns caps concurrent token lookups.
	MaxOpenConns int `mapstructure:"max_open_conns" default:"20"`
	// MaxIdleConns is the number of connections kept warm between requests.
	MaxIdleConns int `mapstructure:"max_idle_conns" default:"5"`
}
