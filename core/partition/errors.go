package partition

import (
	"errors"
	"fmt"
)

// DataError reports an order excluded because its scheduled date could not
// be parsed.
type DataError struct {
	OrderID string
	Value   string
	Err     error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("order %s: unparseable scheduled date %q: %v", e.OrderID, e.Value, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

// ConfigurationError rejects a filter configuration at the call boundary.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid filter %s: %s", e.Field, e.Reason)
}

// IsConfigurationError reports whether err wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
