package validation

import "fmt"

// ParseError reports a projection that could not be read back.
type ParseError struct {
	Projection string
	Message    string
	Cause      error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s parse error: %s: %v", e.Projection, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s parse error: %s", e.Projection, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
