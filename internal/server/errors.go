// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
)

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrResumeNotFound indicates a stored resume was not found
type ErrResumeNotFound struct {
	ResumeID uuid.UUID
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ResumeID)
}

// ErrForbidden indicates the caller does not own the resource
type ErrForbidden struct {
	Resource string
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Resource)
}

// ErrUnauthorized indicates the route needs a bearer token
type ErrUnauthorized struct{}

func (e *ErrUnauthorized) Error() string {
	return "authentication required"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		unknownTemplate *catalog.UnknownTemplateError
		invalidData     *rendering.InvalidDataError
		schemaErr       *schemas.ValidationError
		validation      *ErrValidation
		userNotFound    *ErrUserNotFound
		resumeNotFound  *ErrResumeNotFound
		forbidden       *ErrForbidden
		unauthorized    *ErrUnauthorized
	)
	switch {
	case errors.As(err, &unknownTemplate),
		errors.As(err, &userNotFound),
		errors.As(err, &resumeNotFound),
		errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &invalidData):
		return http.StatusUnprocessableEntity
	case errors.As(err, &schemaErr), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
