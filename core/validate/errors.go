package validate

import "fmt"

// ValidationError reports a rejected input parameter.
type ValidationError struct {
	// Param names the offending input, e.g. "from_date" or "query".
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Param == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Message)
}

// Errorf builds a ValidationError for param with a formatted message.
func Errorf(param, format string, args ...any) *ValidationError {
	return &ValidationError{Param: param, Message: fmt.Sprintf(format, args...)}
}
