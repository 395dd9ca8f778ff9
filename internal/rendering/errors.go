// Package rendering turns resume data into a document tree and projects it
// to an HTML preview and a fixed-page PDF.
package rendering

import "fmt"

// TemplateError represents an error parsing or executing the HTML preview template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a general rendering failure. No document is
// produced when it is returned.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// InvalidDataError is returned when the resume data handed to the renderer
// fails validation. Validation belongs upstream, so this signals a caller bug.
type InvalidDataError struct {
	Cause error
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("cannot render invalid resume data: %v", e.Cause)
}

func (e *InvalidDataError) Unwrap() error {
	return e.Cause
}

// UnknownLayoutError is returned when a catalog entry names a layout that has
// no registered variant.
type UnknownLayoutError struct {
	TemplateID string
	Layout     string
}

func (e *UnknownLayoutError) Error() string {
	return fmt.Sprintf("template %q uses unknown layout %q", e.TemplateID, e.Layout)
}

// UnsupportedCharError is returned when a field holds a character the PDF
// font has no glyph for.
type UnsupportedCharError struct {
	Char rune
	Text string
}

func (e *UnsupportedCharError) Error() string {
	return fmt.Sprintf("character %q (%U) in %q cannot be drawn in the PDF font", e.Char, e.Char, e.Text)
}
