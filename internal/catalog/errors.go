package catalog

import "fmt"

// UnknownTemplateError is returned when a template ID does not resolve.
type UnknownTemplateError struct {
	ID string
}

func (e *UnknownTemplateError) Error() string {
	if e.ID == "" {
		return "unknown template: no template id given"
	}
	return fmt.Sprintf("unknown template: %q", e.ID)
}
