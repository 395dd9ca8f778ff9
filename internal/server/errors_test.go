package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unknown template", err: &catalog.UnknownTemplateError{ID: "x"}, want: http.StatusNotFound},
		{name: "wrapped unknown template", err: fmt.Errorf("render: %w", &catalog.UnknownTemplateError{ID: "x"}), want: http.StatusNotFound},
		{name: "invalid data", err: &rendering.InvalidDataError{Cause: &types.ValidationError{}}, want: http.StatusUnprocessableEntity},
		{name: "schema", err: &schemas.ValidationError{}, want: http.StatusBadRequest},
		{name: "request validation", err: &ErrValidation{Field: "premium"}, want: http.StatusBadRequest},
		{name: "user not found", err: &ErrUserNotFound{UserID: uuid.New()}, want: http.StatusNotFound},
		{name: "resume not found", err: &ErrResumeNotFound{ResumeID: uuid.New()}, want: http.StatusNotFound},
		{name: "db not found", err: db.ErrNotFound, want: http.StatusNotFound},
		{name: "duplicate email", err: db.ErrEmailAlreadyExists, want: http.StatusConflict},
		{name: "forbidden", err: &ErrForbidden{Resource: "user"}, want: http.StatusForbidden},
		{name: "unauthorized", err: &ErrUnauthorized{}, want: http.StatusUnauthorized},
		{name: "render failure", err: &rendering.RenderError{Message: "boom"}, want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	assert.Equal(t, "user not found: "+id.String(), (&ErrUserNotFound{UserID: id}).Error())
	assert.Equal(t, "resume not found: "+id.String(), (&ErrResumeNotFound{ResumeID: id}).Error())
	assert.Equal(t, "validation error: email - is required", (&ErrValidation{Field: "email", Message: "is required"}).Error())
}
