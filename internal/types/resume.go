// Package types provides type definitions for structured data used throughout the resume-builder system.
package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PresentLabel replaces the end date of an entry that is still ongoing.
const PresentLabel = "Present"

// PersonalInfo holds the identity and contact block of a resume.
type PersonalInfo struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address,omitempty"`
	LinkedIn  string `json:"linkedIn,omitempty"`
	Website   string `json:"website,omitempty"`
}

// Experience represents a single employment entry.
type Experience struct {
	Position    string `json:"position" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education represents a single education entry.
type Education struct {
	School       string `json:"school" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty"`
	Location     string `json:"location,omitempty"`
	StartDate    string `json:"startDate" validate:"required"`
	EndDate      string `json:"endDate,omitempty"`
	Current      bool   `json:"current,omitempty"`
	Description  string `json:"description,omitempty"`
	GPA          string `json:"gpa,omitempty"`
}

// ResumeData is the canonical input to every layout.
type ResumeData struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Summary      string       `json:"summary,omitempty"`
	Experience   []Experience `json:"experience" validate:"dive"`
	Education    []Education  `json:"education" validate:"dive"`
	Skills       []string     `json:"skills"`
	TemplateID   string       `json:"templateId" validate:"required"`
}

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field string
	Rule  string
}

// ValidationError lists every field of a ResumeData that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}
	return "invalid resume data: " + strings.Join(parts, ", ")
}

// Validate checks required fields and formats. It returns *ValidationError
// when one or more fields are missing or malformed.
func (r *ResumeData) Validate() error {
	if r == nil {
		return &ValidationError{Fields: []FieldError{{Field: "ResumeData", Rule: "required"}}}
	}

	validate := validator.New()
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: strings.TrimPrefix(fe.Namespace(), "ResumeData."),
			Rule:  fe.Tag(),
		})
	}
	return out
}

// FullName joins first and last name with a single space.
func (p *PersonalInfo) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// ContactLine returns the non-empty contact fields in display order.
func (p *PersonalInfo) ContactLine() []string {
	var out []string
	for _, v := range []string{p.Email, p.Phone, p.Address, p.LinkedIn, p.Website} {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// HasSummary reports whether the summary should be rendered.
func (r *ResumeData) HasSummary() bool {
	return strings.TrimSpace(r.Summary) != ""
}

// DateRange formats an entry's period. An ongoing entry always ends with
// "Present" regardless of endDate; a finished entry without an end date
// shows only its start.
func DateRange(start, end string, current bool) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if current {
		end = PresentLabel
	}
	if end == "" {
		return start
	}
	return start + " - " + end
}

// DateRange returns the formatted period of the experience entry.
func (e *Experience) DateRange() string {
	return DateRange(e.StartDate, e.EndDate, e.Current)
}

// DateRange returns the formatted period of the education entry.
func (e *Education) DateRange() string {
	return DateRange(e.StartDate, e.EndDate, e.Current)
}

// Clone returns a deep copy so callers can hand renderers an immutable snapshot.
func (r *ResumeData) Clone() *ResumeData {
	if r == nil {
		return nil
	}
	out := *r
	out.Experience = append([]Experience(nil), r.Experience...)
	out.Education = append([]Education(nil), r.Education...)
	out.Skills = append([]string(nil), r.Skills...)
	return &out
}
