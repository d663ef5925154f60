package interactive

import (
	"errors"
	"fmt"
)

// ErrLookupMiss is returned when an event matches nothing registered.
var ErrLookupMiss = errors.New("the interaction is not registered")

// ConfigurationError reports a definition set that cannot be registered or
// a permission key that cannot be resolved.
type ConfigurationError struct {
	Path   Path
	Reason string
}

func (e *ConfigurationError) Error() string {
	if len(e.Path) == 0 {
		return "invalid configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid configuration at %q: %s", e.Path.String(), e.Reason)
}

// ValidationError reports a command type over its registry cap.
type ValidationError struct {
	Type  CommandType
	Count int
	Limit int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("too many %s commands: %d exceeds the limit of %d", e.Type, e.Count, e.Limit)
}

// HandlerError wraps a failed handler invocation. Panic is set when the
// handler panicked instead of returning an error.
type HandlerError struct {
	Family string
	Path   Path
	Err    error
	Panic  any
}

func (e *HandlerError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("%s %q panicked: %v", e.Family, e.Path.String(), e.Panic)
	}
	return fmt.Sprintf("%s %q failed: %v", e.Family, e.Path.String(), e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }
