package transformer

import (
	"errors"
	"fmt"
)

// ErrTypeNotRegistered is returned when no transformer is bound to a type name.
var ErrTypeNotRegistered = errors.New("transformer: type not registered")

// ConfigurationError reports a field option whose shape the pipeline cannot
// use, such as custom schema options that are not a mapping.
type ConfigurationError struct {
	Field  string
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("transformer: field %q option %q: %s", e.Field, e.Option, e.Reason)
}
