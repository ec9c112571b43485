package chain

import "fmt"

// ConfigurationError reports a malformed entry or an illegal registration.
// It is raised at startup and is fatal.
type ConfigurationError struct {
	Entry  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("filter configuration: %s", e.Reason)
	}
	return fmt.Sprintf("filter configuration %q: %s", e.Entry, e.Reason)
}

func configErr(entry, format string, args ...any) error {
	return &ConfigurationError{Entry: entry, Reason: fmt.Sprintf(format, args...)}
}
