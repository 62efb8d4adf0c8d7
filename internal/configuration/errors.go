package configuration

import "fmt"

// ConfigError is returned for configuration values that violate an invariant.
// A ConfigError is fatal, the control loop must not be started.
type ConfigError struct {
	// Section of the configuration, f.ex. "filter"
	Section string
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Section, e.Message)
}

func newConfigError(section string, format string, a ...interface{}) ConfigError {
	return ConfigError{
		Section: section,
		Message: fmt.Sprintf(format, a...),
	}
}
